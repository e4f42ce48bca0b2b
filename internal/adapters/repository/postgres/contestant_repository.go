package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/smallie/smallie/internal/core/domain"
	"github.com/smallie/smallie/internal/core/ports"
)

type contestantRepository struct {
	db *sql.DB
}

func NewContestantRepository(db *sql.DB) ports.ContestantRepository {
	return &contestantRepository{
		db: db,
	}
}

func (r *contestantRepository) GetByID(ctx context.Context, id string) (*domain.Contestant, error) {
	query := `
		SELECT id, name, bio, photo_url, votes, eliminated, created_at
		FROM contestants
		WHERE id = $1
	`
	var c domain.Contestant
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Bio, &c.PhotoURL, &c.Votes, &c.Eliminated, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContestantNotFound
		}
		return nil, fmt.Errorf("failed to get contestant: %w", err)
	}
	return &c, nil
}

func (r *contestantRepository) List(ctx context.Context) ([]*domain.Contestant, error) {
	query := `
		SELECT id, name, bio, photo_url, votes, eliminated, created_at
		FROM contestants
		ORDER BY votes DESC, name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}
	defer rows.Close()

	var contestants []*domain.Contestant
	for rows.Next() {
		var c domain.Contestant
		if err := rows.Scan(&c.ID, &c.Name, &c.Bio, &c.PhotoURL, &c.Votes, &c.Eliminated, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contestant: %w", err)
		}
		contestants = append(contestants, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contestants: %w", err)
	}

	return contestants, nil
}

// IncrementVotes applies the tally bump as a single atomic UPDATE. The
// new total comes back from the same statement, so concurrent voters never
// race a read-modify-write.
func (r *contestantRepository) IncrementVotes(ctx context.Context, id string, delta int) (int64, error) {
	query := `
		UPDATE contestants
		SET votes = votes + $2
		WHERE id = $1
		RETURNING votes
	`
	var votes int64
	err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrContestantNotFound
		}
		return 0, fmt.Errorf("failed to increment votes: %w", err)
	}
	return votes, nil
}
