package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
)

type productRepository struct {
	storage *Storage
}

type tableRepository struct {
	storage *Storage
}

type sessionRepository struct {
	storage *Storage
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	const query = `SELECT id, name, price, available FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.conn(ctx).QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price, &p.Available)
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Table, error) {
	const query = `SELECT id, name, qr_token_hash, active FROM tables WHERE id=$1`
	var t model.Table
	err := r.storage.conn(ctx).QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.QRTokenHash, &t.Active)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *tableRepository) Upsert(ctx context.Context, table *model.Table) error {
	const query = `INSERT INTO tables (id, name, qr_token_hash, active)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (id) DO UPDATE
                   SET name = EXCLUDED.name, qr_token_hash = EXCLUDED.qr_token_hash, active = EXCLUDED.active`
	_, err := r.storage.conn(ctx).Exec(ctx, query, table.ID, table.Name, table.QRTokenHash, table.Active)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	const query = `INSERT INTO sessions (id, session_token, table_id, status, expires_at, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.storage.conn(ctx).Exec(ctx, query,
		session.ID, session.Token, session.TableID, session.Status, session.ExpiresAt, session.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	const query = `SELECT s.id, s.session_token, s.table_id, t.name, s.status, s.expires_at, s.created_at
                   FROM sessions s JOIN tables t ON t.id = s.table_id
                   WHERE s.session_token=$1`
	var s model.Session
	err := r.storage.conn(ctx).QueryRow(ctx, query, token).Scan(
		&s.ID, &s.Token, &s.TableID, &s.TableName, &s.Status, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}
