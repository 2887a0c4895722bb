package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

// ProductRepository is the read side of the product catalog.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// TableRepository looks up and provisions physical tables.
type TableRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error)
	// Upsert inserts the table or replaces name, hash and active flag of an existing row.
	Upsert(ctx context.Context, table *model.Table) error
}

// SessionRepository manages table ordering sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
}
