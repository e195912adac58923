package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

// UseCase manages user accounts. Registration and profile updates share the
// same upsert path; username uniqueness is enforced by the store.
type UseCase struct {
	users  repository.UserRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		logger: logger,
	}
}

// RegisterInput carries the fields a new account starts with.
type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
}

// Register creates an account. The id is assigned by the store; a taken
// username surfaces as domain.ErrUsernameTaken.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.NewFieldError("username", "username is required")
	}

	user := &domain.User{
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// UpdateProfile rewrites the profile fields of an existing account.
func (uc *UseCase) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if user.Username == "" {
		return nil, domain.NewFieldError("username", "username is required")
	}
	if err := uc.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ImportUsers upserts a batch of accounts. Used by the seed loader.
func (uc *UseCase) ImportUsers(ctx context.Context, users []domain.User) (int, error) {
	stored := 0
	for i := range users {
		if users[i].Username == "" {
			return stored, domain.NewFieldError("username", "username is required")
		}
		if err := uc.users.Upsert(ctx, &users[i]); err != nil {
			return stored, err
		}
		stored++
	}
	uc.logger.Info("users imported", zap.Int("count", stored))
	return stored, nil
}
