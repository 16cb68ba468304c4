package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("secret-dev")

func signed(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)
	return token
}

func TestVerifyIssuedToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 0)
	issuer.now = func() time.Time { return time.Unix(1600000000, 0) }

	token, err := issuer.Issue("test", false)
	assert.NoError(t, err)

	principal, ok := NewTokenVerifier(testSecret).Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "test", principal.Username)
	assert.False(t, principal.IsAdmin)
	assert.Equal(t, int64(1600000000), principal.IssuedAt.Unix())
}

func TestVerifyAdminToken(t *testing.T) {
	token, err := NewTokenIssuer(testSecret, time.Hour).Issue("adminUser", true)
	assert.NoError(t, err)

	principal, ok := NewTokenVerifier(testSecret).Verify(token)
	assert.True(t, ok)
	assert.Equal(t, "adminUser", principal.Username)
	assert.True(t, principal.IsAdmin)
}

func TestVerifyRejectsInvalidTokens(t *testing.T) {
	verifier := NewTokenVerifier(testSecret)
	expired := NewTokenIssuer(testSecret, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expiredToken, err := expired.Issue("test", false)
	assert.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"username": "test", "isAdmin": true}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"username": "test"}).SignedString(testSecret)
	assert.NoError(t, err)

	for name, token := range map[string]string{
		"wrong secret": signed(t, jwt.MapClaims{"username": "test", "isAdmin": false}, []byte("wrong")),
		"expired":      expiredToken,
		"unsigned":     none,
		"other alg":    hs512,
		"garbage":      "not.a.token",
		"empty":        "",
	} {
		principal, ok := verifier.Verify(token)
		assert.False(t, ok, name)
		assert.Nil(t, principal, name)
	}
}

func TestVerifyAdminClaimMustBeBoolean(t *testing.T) {
	verifier := NewTokenVerifier(testSecret)
	for _, value := range []interface{}{"true", "taco", 1} {
		principal, ok := verifier.Verify(signed(t, jwt.MapClaims{"username": "test", "isAdmin": value}, testSecret))
		assert.True(t, ok)
		assert.False(t, principal.IsAdmin)
	}
}

func TestVerifyTokenWithoutUsername(t *testing.T) {
	principal, ok := NewTokenVerifier(testSecret).Verify(signed(t, jwt.MapClaims{"isAdmin": true}, testSecret))
	assert.True(t, ok)
	assert.Equal(t, "", principal.Username)
	assert.True(t, principal.IsAdmin)
}
