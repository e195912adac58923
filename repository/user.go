package repository

import (
	"context"

	"github.com/feastgo/backend/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
