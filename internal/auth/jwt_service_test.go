package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_RejectsNonHMACAlgorithms(t *testing.T) {
	for _, alg := range []string{"RS256", "none", "bogus"} {
		t.Run(alg, func(t *testing.T) {
			_, err := NewTokenService("secret", alg, 360)
			assert.Error(t, err)
		})
	}
}

func TestTokenService_IssueAndResolveSubject(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256", 360)
	require.NoError(t, err)

	token, err := svc.Issue("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256", -1)
	require.NoError(t, err)

	token, err := svc.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = svc.Subject(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer, err := NewTokenService("secret-a", "HS256", 360)
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-b", "HS256", 360)
	require.NoError(t, err)

	token, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Subject(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc, err := NewTokenService("test-secret", "HS256", 360)
	require.NoError(t, err)

	_, err = svc.Subject("not.a.token")
	assert.Error(t, err)
}
