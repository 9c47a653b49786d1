// Package cards defines the persisted card model and the repository contract
// owned by the storage layer.
package cards

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cards: not found")

type Repository interface {
	HealthCheck(ctx context.Context) error
	Create(ctx context.Context, in CreateCardInput) (Card, error)
	ListAll(ctx context.Context) ([]Card, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

type Card struct {
	ID        int64
	Client    string
	Note      string
	SQLText   string
	CreatedAt time.Time
}

type CreateCardInput struct {
	Client  string
	Note    string
	SQLText string
}
