// Package auth signs and verifies the HS256 access tokens issued at login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	admindomain "github.com/sand-hq/campaign-api/internal/admin/domain"
	"github.com/sand-hq/campaign-api/internal/config"
)

var (
	ErrNotConfigured = errors.New("認証設定が構成されていません")
	ErrInvalidToken  = errors.New("アクセストークンが無効です")
)

// Claims is the token payload. Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Issuer signs tokens with the first configured key.
type Issuer struct {
	key      config.JWTConfig
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewIssuer(keys []config.JWTConfig, audience string, ttl time.Duration) (*Issuer, error) {
	if len(keys) == 0 || len(keys[0].Secret) == 0 {
		return nil, ErrNotConfigured
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{key: keys[0], audience: audience, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for user.
func (i *Issuer) Issue(user admindomain.User) (string, error) {
	if user.ID == "" {
		return "", errors.New("user id is required to issue a token")
	}
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.key.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Name:  user.Name,
		Email: user.Email.String(),
		Role:  user.Role.String(),
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.key.Secret)
}

// Verifier accepts tokens signed by any configured key. Keys are tried in
// order so secrets can be rotated by prepending a new one.
type Verifier struct {
	keys     []config.JWTConfig
	audience string
}

func NewVerifier(keys []config.JWTConfig, audience string) *Verifier {
	return &Verifier{keys: append([]config.JWTConfig(nil), keys...), audience: audience}
}

// Parse は複数の JWT 設定を順番に試し、署名と Issuer/Audience/Role の整合性を確認する。
func (v *Verifier) Parse(tokenString string) (*Claims, error) {
	if len(v.keys) == 0 {
		return nil, ErrNotConfigured
	}

	for _, key := range v.keys {
		claims := &Claims{}
		opts := []jwt.ParserOption{
			jwt.WithLeeway(30 * time.Second),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		}
		if key.Issuer != "" {
			opts = append(opts, jwt.WithIssuer(key.Issuer))
		}
		if v.audience != "" {
			opts = append(opts, jwt.WithAudience(v.audience))
		}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return key.Secret, nil
		}, opts...)
		if err != nil || !token.Valid {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if _, err := admindomain.ParseRole(claims.Role); err != nil {
			continue
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}
