package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/auth"
)

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Claims: стандартные поля плюс роль пользователя; id лежит в subject.
type Claims struct {
	jwt.RegisteredClaims
	Role auth.Role `json:"role"`
}

func (g *Generator) Generate(_ context.Context, user auth.User) (string, error) {
	now := g.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Role: user.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify checks signature, expiry and issuer and returns the caller identity.
// Every failure is reported as auth.ErrUnauthorized wrapping the cause.
func (g *Generator) Verify(tokenStr string) (auth.Identity, error) {
	if tokenStr == "" {
		return auth.Identity{}, fmt.Errorf("%w: empty token", auth.ErrUnauthorized)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(g.now),
		jwt.WithExpirationRequired(),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return auth.Identity{}, fmt.Errorf("%w: invalid or expired token", auth.ErrUnauthorized)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return auth.Identity{}, fmt.Errorf("%w: invalid token claims", auth.ErrUnauthorized)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("%w: invalid token subject", auth.ErrUnauthorized)
	}
	if !claims.Role.Valid() {
		return auth.Identity{}, fmt.Errorf("%w: unknown role", auth.ErrUnauthorized)
	}
	return auth.Identity{UserID: id, Role: claims.Role}, nil
}
