package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/todohub/internal/todo/domain"
	"github.com/aussiebroadwan/todohub/internal/todo/uow"
	"github.com/aussiebroadwan/todohub/pkg/idx"
)

// IdentityProvider is the slice of the IdP's API user resolution needs: the
// userinfo endpoint, queried with the caller's own access token.
type IdentityProvider interface {
	UserEmail(ctx context.Context, accessToken string) (string, error)
}

// UserService resolves authenticated subjects to local users, creating or
// rebinding accounts lazily on first contact.
type UserService struct {
	UoW    *uow.Factory
	IdP    IdentityProvider
	Logger *slog.Logger
}

// Resolve maps a verified token subject to a local user. The whole chain
// runs in one transaction scope:
//
//  1. known sub_id -> existing user
//  2. unknown sub_id -> ask the IdP for the token's email, match by email
//     and rebind sub_id (the provider re-issued the subject)
//  3. no match at all -> create a fresh enabled user
//
// Disabled users are rejected no matter which branch found them.
func (s *UserService) Resolve(ctx context.Context, subID, accessToken string) (*domain.User, error) {
	unit := s.UoW.New()

	var resolved *domain.User
	err := unit.Do(ctx, func(ctx context.Context) error {
		u, err := unit.Users().GetBySubID(ctx, subID)
		if err != nil {
			return err
		}

		if u == nil {
			email, err := s.IdP.UserEmail(ctx, accessToken)
			if err != nil {
				s.Logger.WarnContext(ctx, "userinfo lookup failed",
					slog.String("sub_id", subID),
					slog.Any("error", err))
				return fmt.Errorf("%w: userinfo: %w", domain.ErrInvalidToken, err)
			}

			u, err = unit.Users().GetByEmail(ctx, email)
			if err != nil {
				return err
			}

			switch {
			case u == nil:
				u = &domain.User{
					ID:       idx.New().String(),
					SubID:    subID,
					Email:    email,
					StatusID: domain.UserEnabled,
				}
				if err := unit.Users().Insert(ctx, u); err != nil {
					return err
				}
				s.Logger.InfoContext(ctx, "created user on first authentication",
					slog.String("user_id", u.ID))

			case u.SubID != subID:
				u.SubID = subID
				if err := unit.Users().Update(ctx, u); err != nil {
					return err
				}
				s.Logger.InfoContext(ctx, "rebound user subject",
					slog.String("user_id", u.ID))
			}
		}

		if !u.Enabled() {
			return domain.ErrDeactivatedUser
		}

		resolved = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
