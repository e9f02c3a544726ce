package responses

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simple-survey/backend/internal/models"
	"github.com/simple-survey/backend/internal/participants"
	"github.com/simple-survey/backend/pkg/response"
)

// Store is the response persistence the handler needs.
type Store interface {
	Upsert(ctx context.Context, token string, data []byte) error
	ListAll(ctx context.Context) ([]models.ResponseExport, error)
}

// ParticipantFinder resolves a token to its participant.
type ParticipantFinder interface {
	Get(ctx context.Context, token string) (*models.Participant, error)
}

var _ Store = (*Repository)(nil)

// Handler handles survey submission and the admin responses export.
type Handler struct {
	store        Store
	participants ParticipantFinder
	logger       *zap.Logger
}

// NewHandler creates a responses handler.
func NewHandler(store Store, finder ParticipantFinder, logger *zap.Logger) *Handler {
	return &Handler{store: store, participants: finder, logger: logger}
}

// Submit handles POST /api/submit/:token (public; the token is the
// capability). The body is stored byte-for-byte, so the participant's key
// order survives; it only has to parse as a non-empty JSON object.
func (h *Handler) Submit(c *gin.Context) {
	token := c.Param("token")
	if _, err := h.participants.Get(c.Request.Context(), token); err != nil {
		if errors.Is(err, participants.ErrNotFound) {
			response.NotFound(c, "Invalid token")
			return
		}
		h.logger.Error("resolve token", zap.Error(err))
		response.Internal(c, "failed to resolve token")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "No data provided")
		return
	}
	var answers map[string]interface{}
	if json.Unmarshal(body, &answers) != nil || len(answers) == 0 {
		response.BadRequest(c, "No data provided")
		return
	}

	if err := h.store.Upsert(c.Request.Context(), token, body); err != nil {
		h.logger.Error("store response", zap.String("token", token), zap.Error(err))
		response.Internal(c, "failed to store response")
		return
	}
	response.OK(c, gin.H{"status": "ok"})
}

// List handles GET /api/responses (admin).
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list responses", zap.Error(err))
		response.Internal(c, "failed to list responses")
		return
	}
	response.OK(c, list)
}
