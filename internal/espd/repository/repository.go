package repository

import (
	"context"
	"errors"

	"github.com/espd/espd-web/backend/go-services/internal/espd"
)

var (
	ErrNotFound = errors.New("espd document not found")
)

// Repository persists ESPD documents.
type Repository interface {
	Create(ctx context.Context, doc *espd.Document) (string, error)
	Get(ctx context.Context, id string) (*espd.Document, error)
	List(ctx context.Context) ([]*espd.Document, error)
	Update(ctx context.Context, doc *espd.Document) error
	Delete(ctx context.Context, id string) error
}
