package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/domain/repository"
	pkgAuth "github.com/polkiloo/qrorder/internal/pkg/auth"
)

// SessionUseCase opens and resolves table ordering sessions.
type SessionUseCase struct {
	tables   repository.TableRepository
	sessions repository.SessionRepository
	hasher   pkgAuth.SecretHasher
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewSessionUseCase constructs SessionUseCase.
func NewSessionUseCase(tables repository.TableRepository, sessions repository.SessionRepository, hasher pkgAuth.SecretHasher, ttl time.Duration, logger *slog.Logger) *SessionUseCase {
	return &SessionUseCase{
		tables:   tables,
		sessions: sessions,
		hasher:   hasher,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Open checks the scanned QR token against the table and issues a session.
func (u *SessionUseCase) Open(ctx context.Context, tableID uuid.UUID, qrToken string) (*model.Session, error) {
	qrToken = strings.TrimSpace(qrToken)
	if tableID == uuid.Nil || qrToken == "" {
		return nil, domainErrors.Validation("table_id and qr_token are required")
	}

	table, err := u.tables.GetByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if !table.Active {
		return nil, domainErrors.ErrNotFound
	}
	if err := u.hasher.Compare(table.QRTokenHash, qrToken); err != nil {
		u.logger.Warn("qr token mismatch", slog.String("table_id", tableID.String()))
		return nil, domainErrors.ErrSessionInvalid
	}

	now := u.now()
	session := &model.Session{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		TableID:   table.ID,
		TableName: table.Name,
		Status:    model.SessionStatusActive,
		ExpiresAt: now.Add(u.ttl),
		CreatedAt: now,
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ProvisionTable hashes qrToken and stores the table as active. Re-running it
// with a new token rotates the QR code; sessions already issued stay valid.
func (u *SessionUseCase) ProvisionTable(ctx context.Context, tableID uuid.UUID, name, qrToken string) (*model.Table, error) {
	name = strings.TrimSpace(name)
	qrToken = strings.TrimSpace(qrToken)
	if tableID == uuid.Nil || name == "" || qrToken == "" {
		return nil, domainErrors.Validation("table id, name and qr_token are required")
	}

	hash, err := u.hasher.Hash(qrToken)
	if err != nil {
		return nil, fmt.Errorf("hash qr token: %w", err)
	}
	table := &model.Table{ID: tableID, Name: name, QRTokenHash: hash, Active: true}
	if err := u.tables.Upsert(ctx, table); err != nil {
		return nil, err
	}
	u.logger.Info("table provisioned", slog.String("table_id", tableID.String()), slog.String("name", name))
	return table, nil
}

// Resolve returns the active, unexpired session for token.
func (u *SessionUseCase) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, domainErrors.ErrSessionInvalid
	}
	session, err := u.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrSessionInvalid
		}
		return nil, err
	}
	if session.Status != model.SessionStatusActive || !u.now().Before(session.ExpiresAt) {
		return nil, domainErrors.ErrSessionInvalid
	}
	return session, nil
}
