package membership

import (
	"context"

	"go.uber.org/zap"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

// Registry manages the three (user, target) relation kinds behind one
// contract. Favorites and cart entries target recipes; subscriptions target
// users and additionally forbid self-reference. The kind-specific rules live
// in guards checked before the storage round trip; the storage constraints
// remain the backstop against races.
type Registry struct {
	memberships repository.MembershipRepository
	recipes     repository.RecipeRepository
	users       repository.UserRepository
	logger      *zap.Logger
}

func New(
	memberships repository.MembershipRepository,
	recipes repository.RecipeRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		memberships: memberships,
		recipes:     recipes,
		users:       users,
		logger:      logger,
	}
}

// Add records the relation. It reports domain.ErrAlreadyExists for a
// duplicate pair (including the loser of a concurrent add race) and
// domain.ErrSelfSubscription when a user subscribes to themselves; the
// self-reference rule is checked before the existence path.
func (r *Registry) Add(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	if !kind.Valid() {
		return domain.ErrInvalidPayload
	}
	if kind == domain.RelationSubscription && userID == targetID {
		return domain.ErrSelfSubscription
	}
	if err := r.verifyTarget(ctx, kind, targetID); err != nil {
		return err
	}
	return r.memberships.Add(ctx, kind, userID, targetID)
}

// Remove deletes the relation, reporting domain.ErrRelationNotFound when
// there was nothing to remove.
func (r *Registry) Remove(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	if !kind.Valid() {
		return domain.ErrInvalidPayload
	}
	if err := r.verifyTarget(ctx, kind, targetID); err != nil {
		return err
	}
	return r.memberships.Remove(ctx, kind, userID, targetID)
}

// IsMember reports whether the (user, target) pair is recorded. Backed by
// the uniqueness index, so it is a point lookup.
func (r *Registry) IsMember(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error) {
	if !kind.Valid() {
		return false, domain.ErrInvalidPayload
	}
	return r.memberships.Exists(ctx, kind, userID, targetID)
}

// ListTargets returns the ids the user relates to under the given kind.
func (r *Registry) ListTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidPayload
	}
	return r.memberships.ListTargets(ctx, kind, userID)
}

// ListSubscriptions resolves the authors the user subscribes to, each
// annotated with their recipe count.
func (r *Registry) ListSubscriptions(ctx context.Context, userID string) ([]domain.SubscriptionEntry, error) {
	authorIDs, err := r.memberships.ListTargets(ctx, domain.RelationSubscription, userID)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return nil, nil
	}

	authors, err := r.users.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.SubscriptionEntry, 0, len(authors))
	for _, author := range authors {
		count, err := r.recipes.CountByAuthor(ctx, author.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, domain.SubscriptionEntry{Author: author, RecipeCount: count})
	}
	return entries, nil
}

// verifyTarget rejects relations against entities that do not exist, so the
// caller gets a not-found instead of a dangling row or an FK error.
func (r *Registry) verifyTarget(ctx context.Context, kind domain.RelationKind, targetID string) error {
	if kind.TargetsUser() {
		_, err := r.users.GetByID(ctx, targetID)
		return err
	}
	_, err := r.recipes.GetByID(ctx, targetID)
	return err
}
