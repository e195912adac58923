package repository

import (
	"context"

	"github.com/feastgo/backend/domain"
)

// MembershipRepository is one generic (user, target) relation store backing
// all three relation kinds. The storage layer carries the uniqueness index
// per kind and the subscriber <> author check; Add translates a constraint
// race into domain.ErrAlreadyExists so concurrent adds stay idempotent.
type MembershipRepository interface {
	Add(ctx context.Context, kind domain.RelationKind, userID, targetID string) error
	Remove(ctx context.Context, kind domain.RelationKind, userID, targetID string) error
	Exists(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error)
	ListTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error)
}
