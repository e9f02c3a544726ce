package survey

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simple-survey/backend/internal/models"
	"github.com/simple-survey/backend/internal/participants"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded participant-facing pages for use with
// gin's SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}

// ParticipantFinder resolves a token to its participant.
type ParticipantFinder interface {
	Get(ctx context.Context, token string) (*models.Participant, error)
}

// ResponseReader looks up a stored submission; nil means the participant
// has not submitted yet.
type ResponseReader interface {
	GetByToken(ctx context.Context, token string) (*models.Response, error)
}

// Handler serves the participant-facing HTML pages.
type Handler struct {
	participants   ParticipantFinder
	responses      ResponseReader
	definitionPath string
	logger         *zap.Logger
}

// NewHandler creates a survey page handler.
func NewHandler(finder ParticipantFinder, reader ResponseReader, definitionPath string, logger *zap.Logger) *Handler {
	return &Handler{participants: finder, responses: reader, definitionPath: definitionPath, logger: logger}
}

// pageData is the client-side payload embedded into the survey page. The
// form renders from Survey; PreviousAnswers pre-fills it on a revisit.
type pageData struct {
	Token            string          `json:"token"`
	Survey           json.RawMessage `json:"survey"`
	AlreadyCompleted bool            `json:"already_completed"`
	PreviousAnswers  json.RawMessage `json:"previous_answers"`
}

// Home handles GET /.
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

// Page handles GET /s/:token. The token is the only credential; an
// unknown one gets the generic not-found page.
func (h *Handler) Page(c *gin.Context) {
	token := c.Param("token")
	p, err := h.participants.Get(c.Request.Context(), token)
	if errors.Is(err, participants.ErrNotFound) {
		c.HTML(http.StatusNotFound, "not_found.html", nil)
		return
	}
	if err != nil {
		h.logger.Error("resolve token", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}

	def, err := LoadDefinition(h.definitionPath)
	if err != nil {
		h.logger.Error("load survey definition", zap.Error(err))
		c.String(http.StatusInternalServerError, "survey unavailable")
		return
	}

	data := pageData{Token: token, Survey: def, PreviousAnswers: json.RawMessage("null")}
	resp, err := h.responses.GetByToken(c.Request.Context(), token)
	if err != nil {
		h.logger.Error("load previous response", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	if resp != nil {
		data.AlreadyCompleted = true
		data.PreviousAnswers = json.RawMessage(resp.ResponseData)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("encode page data", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
		return
	}
	c.HTML(http.StatusOK, "survey.html", gin.H{
		"Label":    p.Label,
		"PageData": template.JS(payload),
	})
}

// ThankYou handles GET /thank-you.
func (h *Handler) ThankYou(c *gin.Context) {
	c.HTML(http.StatusOK, "thank_you.html", nil)
}
