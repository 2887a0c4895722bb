package dto

import "time"

// CreateSessionRequest is sent after scanning a table QR code.
type CreateSessionRequest struct {
	TableID string `json:"table_id"`
	QRToken string `json:"qr_token"`
}

// SessionResponse describes an issued ordering session.
type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	SessionToken string    `json:"session_token"`
	TableID      string    `json:"table_id"`
	TableName    string    `json:"table_name"`
	ExpiresAt    time.Time `json:"expires_at"`
}
