package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"miniblog/internal/auth"
	"miniblog/internal/core"
)

const (
	maxNameLength     = 100
	maxNicknameLength = 50
	minPasswordLength = 6

	// bcrypt only looks at the first 72 bytes.
	maxPasswordBytes = 72
)

type Registration struct {
	Name     string
	Nickname string
	Password string
}

// Changes holds the fields to update, nil fields are left untouched.
type Changes struct {
	Name     *string
	Password *string
}

// Session is an issued access token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	Logger        *slog.Logger
	DB            core.DB
	Users         core.UserRepository
	Publications  core.PublicationRepository
	Ledger        core.ReactionLedger
	Blocks        core.BlockedTagRepository
	Authenticator *auth.Authenticator
}

func (s *Service) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "accounts.Service")
	return nil
}

func (s *Service) Register(ctx context.Context, registration Registration) (core.User, error) {
	registration.Nickname = strings.TrimSpace(registration.Nickname)
	registration.Name = strings.TrimSpace(registration.Name)

	if err := validateName(registration.Name); err != nil {
		return core.User{}, err
	}
	if err := validateNickname(registration.Nickname); err != nil {
		return core.User{}, err
	}
	if err := validatePassword(registration.Password); err != nil {
		return core.User{}, err
	}

	_, err := s.Users.GetByNickname(ctx, registration.Nickname)
	switch {
	case err == nil:
		return core.User{}, fmt.Errorf("%w: nickname %s is already taken", core.ErrConflict, registration.Nickname)
	case !errors.Is(err, core.ErrNotFound):
		return core.User{}, err
	}

	hash, err := auth.HashPassword(registration.Password)
	if err != nil {
		return core.User{}, err
	}

	user := core.User{
		ID:           uuid.New(),
		Name:         registration.Name,
		Nickname:     registration.Nickname,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, &user); err != nil {
		return core.User{}, err
	}

	s.Logger.Info("User registered", "user", user.ID, "nickname", user.Nickname)
	return user, nil
}

func (s *Service) Get(ctx context.Context, nickname string) (core.User, error) {
	return s.Users.GetByNickname(ctx, nickname)
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, changes Changes) (core.User, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return core.User{}, err
	}

	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if err := validateName(name); err != nil {
			return core.User{}, err
		}
		user.Name = name
	}

	if changes.Password != nil {
		if err := validatePassword(*changes.Password); err != nil {
			return core.User{}, err
		}
		user.PasswordHash, err = auth.HashPassword(*changes.Password)
		if err != nil {
			return core.User{}, err
		}
	}

	if err := s.Users.Update(ctx, &user); err != nil {
		return core.User{}, err
	}
	return user, nil
}

// Delete removes the user with everything they own. Their reactions on other
// publications are retracted so those counters stay in line with the ledger.
// The token in claims is revoked once the account is gone.
func (s *Service) Delete(ctx context.Context, claims *auth.Claims, password string) error {
	userID, err := claims.UserID()
	if err != nil {
		return err
	}

	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return fmt.Errorf("%w: incorrect password", core.ErrUnauthenticated)
	}

	err = s.DB.Transaction(ctx, func(ctx context.Context) error {
		if err := s.Ledger.Retract(ctx, userID); err != nil {
			return err
		}
		if err := s.Ledger.DeleteByPublicationCreator(ctx, userID); err != nil {
			return err
		}
		if err := s.Publications.DeleteByCreator(ctx, userID); err != nil {
			return err
		}
		if err := s.Blocks.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return s.Users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.Logger.Info("User deleted", "user", userID)

	if err := s.Authenticator.Revoke(ctx, claims); err != nil {
		s.Logger.Warn("Failed to revoke the token of a deleted user", "user", userID, "error", err)
	}
	return nil
}

func (s *Service) Login(ctx context.Context, nickname, password string) (Session, error) {
	user, err := s.Users.GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return Session{}, fmt.Errorf("%w: incorrect nickname or password", core.ErrUnauthenticated)
		}
		return Session{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return Session{}, fmt.Errorf("%w: incorrect nickname or password", core.ErrUnauthenticated)
	}

	token, claims, err := s.Authenticator.Tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.Authenticator.Revoke(ctx, claims)
}

func validateName(name string) error {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", core.ErrInvalidArgument, maxNameLength)
	}
	return nil
}

func validateNickname(nickname string) error {
	if nickname == "" || utf8.RuneCountInString(nickname) > maxNicknameLength || strings.ContainsAny(nickname, " \t\n") {
		return fmt.Errorf("%w: nickname must be 1-%d characters without spaces", core.ErrInvalidArgument, maxNicknameLength)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength || len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be %d-%d characters", core.ErrInvalidArgument, minPasswordLength, maxPasswordBytes)
	}
	return nil
}
