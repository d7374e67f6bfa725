package password

import (
	"os"
	"strconv"
)

// Argon2id costs for operator passwords when the environment says nothing.
const (
	DefaultMemoryKiB   = 128 * 1024
	DefaultIterations  = 3
	DefaultParallelism = 1

	saltLen = 16
	keyLen  = 32
)

// Params are the argon2id costs. Hashes made with weaker params than the
// current ones are upgraded on the operator's next successful login.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// LoadParamsFromEnv reads ARGON2_MEMORY (KiB), ARGON2_ITER and ARGON2_PAR.
// Unset or unparsable values keep the defaults; validate.Env rejects values
// below the service minimums before the server starts.
func LoadParamsFromEnv() Params {
	return Params{
		Memory:      uint32(envUint("ARGON2_MEMORY", DefaultMemoryKiB, 32)),
		Iterations:  uint32(envUint("ARGON2_ITER", DefaultIterations, 32)),
		Parallelism: uint8(envUint("ARGON2_PAR", DefaultParallelism, 8)),
		SaltLength:  saltLen,
		KeyLength:   keyLen,
	}
}

func envUint(key string, def uint64, bits int) uint64 {
	n, err := strconv.ParseUint(os.Getenv(key), 10, bits)
	if err != nil || n == 0 {
		return def
	}
	return n
}
