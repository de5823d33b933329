package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGatePlainSecret(t *testing.T) {
	g := NewGate("correct horse")
	assert.True(t, g.Enabled())
	assert.True(t, g.Check("correct horse"))
	assert.False(t, g.Check("correct hors"))
	assert.False(t, g.Check("correct horse "))
	assert.False(t, g.Check(""))
}

func TestGateBcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	g := NewGate(string(hash))
	assert.True(t, g.Check("s3cret"))
	assert.False(t, g.Check("S3cret"))
	assert.False(t, g.Check(string(hash)), "the hash itself is not the password")
}

func TestGateDisabled(t *testing.T) {
	g := NewGate("")
	assert.False(t, g.Enabled())
	assert.True(t, g.Check("anything"))

	s := g.NewSession()
	assert.True(t, s.Authenticated())
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("letmein")
	require.NoError(t, err)
	assert.True(t, IsHash(hash))
	assert.True(t, NewGate(hash).Check("letmein"))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestSessionAttempts(t *testing.T) {
	s := NewGate("pw").NewSession()
	assert.False(t, s.Authenticated())
	assert.False(t, s.Failed(), "no indication before the first attempt")

	for i := 0; i < 5; i++ {
		assert.False(t, s.Attempt("wrong"))
		assert.True(t, s.Failed())
		assert.False(t, s.Authenticated())
	}

	assert.True(t, s.Attempt("pw"), "no lockout after repeated failures")
	assert.True(t, s.Authenticated())
	assert.False(t, s.Failed())

	assert.True(t, s.Attempt("wrong"), "stays authenticated for the session")
}
