package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/server/http/dto"
)

// SessionHandler issues table sessions.
type SessionHandler struct {
	facade SessionFacade
}

// NewSessionHandler creates SessionHandler instance.
func NewSessionHandler(facade SessionFacade) *SessionHandler {
	return &SessionHandler{facade: facade}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.TableID == "" || req.QRToken == "" {
		badRequest(c, "table_id and qr_token are required")
		return
	}
	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		badRequest(c, "table_id must be a uuid")
		return
	}

	session, err := h.facade.OpenSession(c.Request.Context(), tableID, req.QRToken)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, toSessionResponse(session))
}

func toSessionResponse(s *model.Session) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID:    s.ID.String(),
		SessionToken: s.Token,
		TableID:      s.TableID.String(),
		TableName:    s.TableName,
		ExpiresAt:    s.ExpiresAt,
	}
}
