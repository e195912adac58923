package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/feastgo/backend/domain"
	"github.com/feastgo/backend/repository"
)

// relationTable describes how one relation kind is stored. All three tables
// share the same shape: a (user, target) pair with a uniqueness index; the
// subscriptions table additionally carries a CHECK (user_id <> author_id).
type relationTable struct {
	name         string
	targetColumn string
}

var relationTables = map[domain.RelationKind]relationTable{
	domain.RelationFavorite:     {name: "favorites", targetColumn: "recipe_id"},
	domain.RelationCart:         {name: "cart_entries", targetColumn: "recipe_id"},
	domain.RelationSubscription: {name: "subscriptions", targetColumn: "author_id"},
}

type membershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository returns the Postgres relation store backing
// favorites, cart entries and subscriptions.
func NewMembershipRepository(pool *pgxpool.Pool) repository.MembershipRepository {
	return &membershipRepository{pool: pool}
}

func (r *membershipRepository) Add(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES ($1, $2)`, table.name, table.targetColumn)
	if _, err := r.pool.Exec(ctx, query, userID, targetID); err != nil {
		switch {
		// The unique index is the backstop for concurrent adds: the loser of
		// the race lands here instead of surfacing a raw storage error.
		case isUniqueViolation(err):
			return domain.ErrAlreadyExists
		case isCheckViolation(err):
			return domain.ErrSelfSubscription
		case isForeignKeyViolation(err):
			return targetMissing(kind)
		}
		return err
	}
	return nil
}

func (r *membershipRepository) Remove(ctx context.Context, kind domain.RelationKind, userID, targetID string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND %s = $2`, table.name, table.targetColumn)
	tag, err := r.pool.Exec(ctx, query, userID, targetID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRelationNotFound
	}
	return nil
}

func (r *membershipRepository) Exists(ctx context.Context, kind domain.RelationKind, userID, targetID string) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND %s = $2)`, table.name, table.targetColumn)
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, targetID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *membershipRepository) ListTargets(ctx context.Context, kind domain.RelationKind, userID string) ([]string, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY %s`, table.targetColumn, table.name, table.targetColumn)
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

func tableFor(kind domain.RelationKind) (relationTable, error) {
	table, ok := relationTables[kind]
	if !ok {
		return relationTable{}, domain.WrapError(domain.ErrCodeInternal, "unknown relation kind", fmt.Errorf("kind %q", kind))
	}
	return table, nil
}

func targetMissing(kind domain.RelationKind) error {
	if kind.TargetsUser() {
		return domain.ErrUserNotFound
	}
	return domain.ErrRecipeNotFound
}
