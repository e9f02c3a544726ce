package participants

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simple-survey/backend/internal/models"
	"github.com/simple-survey/backend/pkg/response"
)

// Store is the participant persistence the handler needs.
type Store interface {
	List(ctx context.Context) ([]models.Participant, error)
	Create(ctx context.Context, label string) (*models.Participant, error)
	Get(ctx context.Context, token string) (*models.Participant, error)
	UpdateLabel(ctx context.Context, token, label string) (*models.Participant, error)
	Delete(ctx context.Context, token string) error
}

var _ Store = (*Repository)(nil)

// LabelRequest is the body for POST and PUT on /api/participants.
type LabelRequest struct {
	Label string `json:"label" binding:"required"`
}

// Handler handles the admin participant CRUD endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a participants handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List handles GET /api/participants/.
func (h *Handler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list participants", zap.Error(err))
		response.Internal(c, "failed to list participants")
		return
	}
	response.OK(c, list)
}

// Create handles POST /api/participants/.
func (h *Handler) Create(c *gin.Context) {
	label, ok := bindLabel(c)
	if !ok {
		return
	}
	p, err := h.store.Create(c.Request.Context(), label)
	if err != nil {
		h.logger.Error("create participant", zap.Error(err))
		response.Internal(c, "failed to create participant")
		return
	}
	response.Created(c, p)
}

// Get handles GET /api/participants/:token.
func (h *Handler) Get(c *gin.Context) {
	p, err := h.store.Get(c.Request.Context(), c.Param("token"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "Participant not found")
		return
	}
	if err != nil {
		h.logger.Error("get participant", zap.Error(err))
		response.Internal(c, "failed to get participant")
		return
	}
	response.OK(c, p)
}

// Update handles PUT /api/participants/:token.
func (h *Handler) Update(c *gin.Context) {
	label, ok := bindLabel(c)
	if !ok {
		return
	}
	p, err := h.store.UpdateLabel(c.Request.Context(), c.Param("token"), label)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "Participant not found")
		return
	}
	if err != nil {
		h.logger.Error("update participant", zap.Error(err))
		response.Internal(c, "failed to update participant")
		return
	}
	response.OK(c, p)
}

// Delete handles DELETE /api/participants/:token.
func (h *Handler) Delete(c *gin.Context) {
	err := h.store.Delete(c.Request.Context(), c.Param("token"))
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "Participant not found")
		return
	}
	if err != nil {
		h.logger.Error("delete participant", zap.Error(err))
		response.Internal(c, "failed to delete participant")
		return
	}
	response.NoContent(c)
}

// bindLabel parses the request body and rejects missing or blank labels.
func bindLabel(c *gin.Context) (string, bool) {
	var req LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "label is required")
		return "", false
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		response.BadRequest(c, "label is required")
		return "", false
	}
	return label, true
}
