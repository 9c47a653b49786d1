package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/querydeck/querydeck/internal/cards"
)

// Repository persists cards in the query_card table. The SQL is shared between
// the postgres and sqlite dialects: both accept $N placeholders and RETURNING.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) HealthCheck(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping card store: %w", err)
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, in cards.CreateCardInput) (cards.Card, error) {
	query := `
INSERT INTO query_card (client, note, sql_text)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	card := cards.Card{
		Client:  in.Client,
		Note:    in.Note,
		SQLText: in.SQLText,
	}
	if err := r.db.QueryRowContext(ctx, query, in.Client, in.Note, in.SQLText).Scan(&card.ID, &card.CreatedAt); err != nil {
		return cards.Card{}, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]cards.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, client, note, sql_text, created_at
FROM query_card
ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]cards.Card, 0)
	for rows.Next() {
		var card cards.Card
		if err := rows.Scan(&card.ID, &card.Client, &card.Note, &card.SQLText, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		items = append(items, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate card rows: %w", err)
	}
	return items, nil
}

func (r *Repository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
DELETE FROM query_card
WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete card: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete card rows affected: %w", err)
	}
	return affected > 0, nil
}
