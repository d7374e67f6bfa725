package candidates

import "github.com/5w1tchy/wordlist-api/internal/generator"

type generateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthdate string `json:"birthdate"`
	Keywords  string `json:"keywords"`

	// Omitted options enable every pass, as the form does by default.
	Options *generator.Options `json:"options"`
}

func (req generateRequest) raw() generator.RawInput {
	opts := generator.DefaultOptions()
	if req.Options != nil {
		opts = *req.Options
	}
	return generator.RawInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthdate: req.Birthdate,
		Keywords:  req.Keywords,
		Options:   opts,
	}
}

type strengthRequest struct {
	Password string `json:"password"`
}
