// internal/storage/storage.go
package storage

import (
	"context"
	"errors"

	"card-advisor/internal/domain"
)

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks

// ErrNotFound is returned by deletes and updates of rows that do not exist.
// Lookups return nil, nil instead.
var ErrNotFound = errors.New("not found")

type CardStorage interface {
	ListCards(ctx context.Context, userID int64) ([]domain.Card, error)
	GetCard(ctx context.Context, userID int64, cardID string) (*domain.Card, error)
	SaveCard(ctx context.Context, userID int64, card domain.Card) (domain.Card, error)
	DeleteCard(ctx context.Context, userID int64, cardID string) error
}

type MerchantStorage interface {
	ListMerchants(ctx context.Context) ([]domain.KnownMerchant, error)
	UpsertMerchant(ctx context.Context, m domain.KnownMerchant) error
}
