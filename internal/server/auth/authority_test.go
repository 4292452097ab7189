package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = &models.User{ID: "u-1", UserName: "alice"}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := NewAuthority("super-secret", 7*24*time.Hour, WithClock(fixedClock(now)))

	tok, exp, err := a.Issue(alice)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), exp.UTC())

	sub, err := a.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, Subject{Username: "alice", UserID: "u-1"}, sub)

	again, err := a.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, sub, again)
}

func TestIssue_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := NewAuthority("k", time.Hour, WithClock(fixedClock(now)))

	t1, _, err := a.Issue(alice)
	require.NoError(t, err)
	t2, _, err := a.Issue(alice)
	require.NoError(t, err)
	assert.Equal(t, t1, t2)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tok, _, err := NewAuthority("k", time.Hour, WithClock(fixedClock(issuedAt))).Issue(alice)
	require.NoError(t, err)

	later := NewAuthority("k", time.Hour, WithClock(fixedClock(issuedAt.Add(2*time.Hour))))
	_, err = later.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerify_Invalid(t *testing.T) {
	t.Parallel()

	a := NewAuthority("right-secret", time.Hour)
	good, _, err := a.Issue(alice)
	require.NoError(t, err)

	forged, _, err := NewAuthority("wrong-secret", time.Hour).Issue(alice)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	noID := signClaims(t, "right-secret", jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	noSub := signClaims(t, "right-secret", jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u-1",
	})
	noExp := signClaims(t, "right-secret", jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		UserID:           "u-1",
	})
	hs512 := signClaims(t, "right-secret", jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u-1",
	})

	tests := map[string]string{
		"garbage":         "not-a-token",
		"empty":           "",
		"wrong secret":    forged,
		"tampered":        tampered,
		"missing id":      noID,
		"missing sub":     noSub,
		"missing exp":     noExp,
		"other algorithm": hs512,
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := a.Verify(tok)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
		})
	}
}

func signClaims(t *testing.T, secret string, m jwt.SigningMethod, c Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(m, c).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}
