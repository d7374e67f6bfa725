package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/wordlist-api/internal/security/password"
)

// cheap parameters keep the test fast
var testParams = password.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashVerify(t *testing.T) {
	h := password.NewHasher(testParams)
	phc, err := h.Hash("correct horse battery")
	require.NoError(t, err)

	ok, rehash, err := h.Verify("correct horse battery", phc)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, rehash)

	ok, _, err = h.Verify("wrong", phc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNeedsRehash(t *testing.T) {
	weak := password.NewHasher(testParams)
	phc, err := weak.Hash("correct horse battery")
	require.NoError(t, err)

	stronger := testParams
	stronger.Iterations = 2
	assert.True(t, password.NewHasher(stronger).NeedsRehash(phc))
	assert.True(t, weak.NeedsRehash("garbage"))
}

func TestValidate(t *testing.T) {
	_, _, err := password.Validate("  short  ")
	assert.ErrorIs(t, err, password.ErrTooShort)

	trimmed, warn, err := password.Validate(" Tr0ub4dor&3xyz ")
	require.NoError(t, err)
	assert.Equal(t, "Tr0ub4dor&3xyz", trimmed)
	assert.Nil(t, warn)

	_, warn, err = password.Validate("alllowercaseletters")
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.Equal(t, "weak", warn.Label)

	_, warn, err = password.Validate("Alice!2024-Secure", "alice")
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.Equal(t, "password contains personal information", warn.Message)
}

func TestLoadParamsFromEnv(t *testing.T) {
	t.Setenv("ARGON2_MEMORY", "65536")
	t.Setenv("ARGON2_ITER", "x")
	t.Setenv("ARGON2_PAR", "2")
	p := password.LoadParamsFromEnv()
	assert.Equal(t, uint32(65536), p.Memory)
	assert.Equal(t, uint32(3), p.Iterations)
	assert.Equal(t, uint8(2), p.Parallelism)
	assert.Equal(t, uint32(16), p.SaltLength)
	assert.Equal(t, uint32(32), p.KeyLength)
}

func TestLoadParamsFromEnv_Defaults(t *testing.T) {
	t.Setenv("ARGON2_MEMORY", "")
	t.Setenv("ARGON2_ITER", "0")
	t.Setenv("ARGON2_PAR", "300") // overflows uint8
	p := password.LoadParamsFromEnv()
	assert.Equal(t, uint32(password.DefaultMemoryKiB), p.Memory)
	assert.Equal(t, uint32(password.DefaultIterations), p.Iterations)
	assert.Equal(t, uint8(password.DefaultParallelism), p.Parallelism)
}
