package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/agencydesk/internal/common"
	"github.com/dmitrijs2005/agencydesk/internal/dbx"
	"github.com/dmitrijs2005/agencydesk/internal/server/config"
	"github.com/dmitrijs2005/agencydesk/internal/server/models"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/agencydesk/internal/server/repositories/users"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService is the credential store. It owns password hashing and never
// returns or logs plaintext passwords.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validate    *validator.Validate
	cost        int
	// dummyHash is compared against when the username is unknown so that
	// both failure paths do the same bcrypt work.
	dummyHash []byte
}

// NewUserService fails when the bcrypt cost cannot be used for hashing.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*UserService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt cost %d: %w", cost, err)
	}

	return &UserService{
		db:          db,
		repomanager: m,
		validate:    validator.New(),
		cost:        cost,
		dummyHash:   dummy,
	}, nil
}

// Register creates a new identity. Username uniqueness is checked before
// email uniqueness; a concurrent insert that slips past both checks is
// caught by the unique indexes and reported the same way.
func (s *UserService) Register(ctx context.Context, username, email, password, role string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, common.ErrInvalidEmail
	}
	if role == "" {
		role = common.DefaultRole
	}

	repo := s.repomanager.Users(s.db)

	exists, err := repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, storageErr(err)
	}
	if exists {
		return nil, common.ErrDuplicateUsername
	}

	exists, err = repo.EmailExists(ctx, email)
	if err != nil {
		return nil, storageErr(err)
	}
	if exists {
		return nil, common.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", common.ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: hash password: %w", common.ErrorInternal, err)
	}

	u, err := repo.Create(ctx, &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok {
			switch constraint {
			case users.UsernameConstraint:
				return nil, common.ErrDuplicateUsername
			case users.EmailConstraint:
				return nil, common.ErrDuplicateEmail
			}
		}
		return nil, storageErr(err)
	}

	return u, nil
}

// VerifyCredentials returns the identity for username if password matches.
// Unknown usernames and wrong passwords both yield common.ErrInvalidCredentials.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	u, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, storageErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, storageErr(err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}
