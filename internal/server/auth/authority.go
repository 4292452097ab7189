// Package auth issues and verifies the HS256 access tokens handed out at
// login. An Authority is built once from configuration and is safe for
// concurrent use.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the user id. Subject carries the
// username.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id,omitempty"`
}

// Subject is what a verified token says about its bearer.
type Subject struct {
	Username string
	UserID   string
}

type Authority struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Authority)

// WithClock replaces time.Now for both issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(a *Authority) { a.now = now }
}

func NewAuthority(secret string, ttl time.Duration, opts ...Option) *Authority {
	a := &Authority{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Issue signs a token for u that expires ttl after the current clock reading.
func (a *Authority) Issue(u *models.User) (string, time.Time, error) {
	exp := jwt.NewNumericDate(a.now().Add(a.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserName,
			ExpiresAt: exp,
		},
		UserID: u.ID,
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp.Time, nil
}

// Verify checks signature, algorithm and expiry. Expired tokens yield
// common.ErrTokenExpired; every other failure is common.ErrInvalidToken.
func (a *Authority) Verify(tokenString string) (Subject, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Subject{}, common.ErrTokenExpired
		}
		return Subject{}, common.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" || claims.UserID == "" {
		return Subject{}, common.ErrInvalidToken
	}

	return Subject{Username: claims.Subject, UserID: claims.UserID}, nil
}
