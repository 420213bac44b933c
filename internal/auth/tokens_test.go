package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/config"
)

var testKeys = []config.JWTConfig{{Issuer: "campaign-api", Secret: []byte("secret-one")}}

func testUser() admindomain.User {
	return admindomain.User{ID: "u1", Name: "Pat", Email: "pat@example.com", Role: admindomain.RoleMIS}
}

func TestIssueAndVerify(t *testing.T) {
	issuer, err := NewIssuer(testKeys, "campaign-web", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims, err := NewVerifier(testKeys, "campaign-web").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "mis", claims.Role)
	assert.Equal(t, "pat@example.com", claims.Email)
}

func TestVerifierTriesEveryKey(t *testing.T) {
	old := config.JWTConfig{Issuer: "campaign-api", Secret: []byte("old-secret")}
	issuer, err := NewIssuer([]config.JWTConfig{old}, "", time.Hour)
	require.NoError(t, err)
	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	verifier := NewVerifier(append(append([]config.JWTConfig{}, testKeys...), old), "")
	_, err = verifier.Parse(token)
	assert.NoError(t, err)
}

func TestVerifierRejects(t *testing.T) {
	issuer, err := NewIssuer(testKeys, "", time.Hour)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := issuer.Issue(testUser())
	require.NoError(t, err)

	wrongIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "someone-else"},
		Role:             "admin",
	})
	wrongIssuerToken, err := wrongIssuer.SignedString([]byte("secret-one"))
	require.NoError(t, err)

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", Issuer: "campaign-api"},
		Role:             "root",
	})
	badRoleToken, err := badRole.SignedString([]byte("secret-one"))
	require.NoError(t, err)

	verifier := NewVerifier(testKeys, "")
	for name, token := range map[string]string{
		"expired":      expired,
		"wrong issuer": wrongIssuerToken,
		"bad role":     badRoleToken,
		"garbage":      "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewIssuerRequiresKey(t *testing.T) {
	_, err := NewIssuer(nil, "", time.Hour)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
