package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry that can be ordered.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	Available bool
}

// Table is a physical table identified by a QR code.
type Table struct {
	ID          uuid.UUID
	Name        string
	QRTokenHash string
	Active      bool
}

// SessionStatus describes whether an ordering session can still be used.
type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusClosed SessionStatus = "closed"
)

// Session is an ordering session opened by scanning a table QR code.
type Session struct {
	ID        uuid.UUID
	Token     string
	TableID   uuid.UUID
	TableName string
	Status    SessionStatus
	ExpiresAt time.Time
	CreatedAt time.Time
}
