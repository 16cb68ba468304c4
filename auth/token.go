package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	claimUsername = "username"
	claimIsAdmin  = "isAdmin"
)

var signingMethod = jwt.SigningMethodHS256

// TokenVerifier checks tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenVerifier(secret []byte) *TokenVerifier {
	return &TokenVerifier{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{signingMethod.Alg()})),
	}
}

// Verify returns the principal of a token whose signature matches the secret. It returns false for any
// malformed, expired or foreign token, and never fails otherwise. A valid token without a username yields
// a principal with an empty username. Only a boolean true isAdmin claim makes the principal an admin.
func (v *TokenVerifier) Verify(raw string) (*Principal, bool) {
	if raw == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	principal := &Principal{}
	if username, ok := claims[claimUsername].(string); ok {
		principal.Username = username
	}
	if isAdmin, ok := claims[claimIsAdmin].(bool); ok {
		principal.IsAdmin = isAdmin
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		principal.IssuedAt = iat.Time
	}
	return principal, true
}

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. Tokens carry no expiry when ttl is zero.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: secret, ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(username string, isAdmin bool) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		claimUsername: username,
		claimIsAdmin:  isAdmin,
		"iat":         jwt.NewNumericDate(now),
	}
	if i.ttl > 0 {
		claims["exp"] = jwt.NewNumericDate(now.Add(i.ttl))
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign token: %v", err)
	}
	return signed, nil
}
