package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/config"
	"github.com/5w1tchy/wordlist-api/internal/generator"
	"github.com/5w1tchy/wordlist-api/internal/logging"
	"github.com/5w1tchy/wordlist-api/internal/wordlist"
)

type generateFlags struct {
	raw        generator.RawInput
	numbers    bool
	special    bool
	caps       bool
	leet       bool
	all        bool
	year       int
	max        int
	configPath string
	output     string
}

func newGenerateCmd(logLevel *string) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the candidate list for one person",
		Example: `  wordgen generate --first John --last Smith --birthdate 1990-05-17 --keywords "rex,chelsea"
  wordgen generate --first Ana --special=false --leet=false -o ana.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.NewConsole(cmd.ErrOrStderr(), *logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return runGenerate(cmd, f, log)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.raw.FirstName, "first", "", "first name")
	fl.StringVar(&f.raw.LastName, "last", "", "last name")
	fl.StringVar(&f.raw.Birthdate, "birthdate", "", "birthdate, YYYY-MM-DD")
	fl.StringVar(&f.raw.Keywords, "keywords", "", "comma-separated keywords (pets, teams, places)")
	fl.BoolVar(&f.numbers, "numbers", true, "append number suffixes and years")
	fl.BoolVar(&f.special, "special", true, "append special characters")
	fl.BoolVar(&f.caps, "caps", true, "add capitalized and upper-case variants")
	fl.BoolVar(&f.leet, "leet", true, "add leetspeak substitutions")
	fl.BoolVar(&f.all, "all", false, "enable every mutation pass")
	fl.IntVar(&f.year, "year", 0, "current year used for year suffixes (default: now)")
	fl.IntVar(&f.max, "max", 0, "abort when the list would exceed this many candidates (0 = unlimited)")
	fl.StringVar(&f.configPath, "config", "", "YAML profile with default options")
	fl.StringVarP(&f.output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

// resolve layers the profile under the flags: an explicitly set flag always
// wins, an untouched one keeps the profile value.
func resolve(cmd *cobra.Command, f generateFlags) (generator.RawInput, []generator.Option, error) {
	prof := config.DefaultProfile()
	if f.configPath != "" {
		p, err := config.LoadProfile(f.configPath)
		if err != nil {
			return f.raw, nil, err
		}
		prof = p
	}

	changed := cmd.Flags().Changed
	opts := prof.Options
	if changed("numbers") {
		opts.Numbers = f.numbers
	}
	if changed("special") {
		opts.SpecialChars = f.special
	}
	if changed("caps") {
		opts.Capitalization = f.caps
	}
	if changed("leet") {
		opts.Substitutions = f.leet
	}
	if f.all {
		opts = generator.DefaultOptions()
	}
	raw := f.raw
	raw.Options = opts

	maxCandidates := prof.MaxCandidates
	if changed("max") {
		maxCandidates = f.max
	}
	if maxCandidates < 0 {
		return raw, nil, fmt.Errorf("--max must be >= 0")
	}
	genOpts := []generator.Option{generator.WithMaxCandidates(maxCandidates)}

	year := prof.Year
	if changed("year") {
		year = f.year
	}
	if year > 0 {
		genOpts = append(genOpts, generator.WithClock(generator.FixedClock(year)))
	}
	return raw, genOpts, nil
}

func runGenerate(cmd *cobra.Command, f generateFlags, log *zap.Logger) error {
	raw, genOpts, err := resolve(cmd, f)
	if err != nil {
		return err
	}

	in := generator.Normalize(raw)
	if in.Empty() {
		log.Warn("no usable input: give at least a name, a birthdate or a keyword")
	}

	start := time.Now()
	items, st, err := generator.New(genOpts...).GenerateWithStats(in)
	if err != nil {
		log.Error("generation aborted", zap.Int("reached", st.Total), zap.Error(err))
		return err
	}

	if err := writeList(cmd.OutOrStdout(), f.output, items); err != nil {
		return err
	}

	log.Info("generated",
		zap.Int("candidates", len(items)),
		zap.Int("seeds", st.Seeds),
		zap.Int("combinations", st.Combinations),
		zap.Duration("took", time.Since(start)),
		zap.String("output", outputName(f.output)))
	return nil
}

// createFile is swapped in tests.
var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// writeList writes items to path, or to stdout with a closing newline when
// path is empty. A failed close is reported: it is where a full disk shows up.
func writeList(stdout io.Writer, path string, items []string) (err error) {
	if path == "" {
		if _, err := wordlist.Write(stdout, items); err != nil {
			return fmt.Errorf("write list: %w", err)
		}
		if len(items) > 0 {
			_, err = fmt.Fprintln(stdout)
		}
		return err
	}

	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if _, err := wordlist.Write(file, items); err != nil {
		return fmt.Errorf("write list: %w", err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
