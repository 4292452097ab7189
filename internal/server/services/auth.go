package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/agencydesk/internal/server/auth"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
)

// TokenTypeBearer is reported alongside every issued access token.
const TokenTypeBearer = "bearer"

// Session is the result of a successful sign-up or sign-in.
type Session struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *models.User
}

// AuthService combines the credential store with the token authority.
type AuthService struct {
	users     *UserService
	authority *auth.Authority
}

func NewAuthService(users *UserService, authority *auth.Authority) *AuthService {
	return &AuthService{users: users, authority: authority}
}

func (s *AuthService) SignUp(ctx context.Context, username, email, password, role string) (*Session, error) {
	u, err := s.users.Register(ctx, username, email, password, role)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *AuthService) SignIn(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.users.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

// Identify resolves a bearer token to the identity it was issued for.
func (s *AuthService) Identify(ctx context.Context, token string) (*models.User, error) {
	sub, err := s.authority.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, sub.UserID)
}

func (s *AuthService) session(u *models.User) (*Session, error) {
	tok, exp, err := s.authority.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: tok, TokenType: TokenTypeBearer, ExpiresAt: exp, User: u}, nil
}
