package status

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/store"
)

// Handler serves the worker status endpoints
type Handler interface {
	// Healthz reports liveness
	// GET /healthz
	Healthz(c *gin.Context)

	// Status reports the position of the last applied event
	// GET /status
	Status(c *gin.Context)
}

// Response is the body of GET /status
type Response struct {
	Service string           `json:"service"`
	Chain   domain.Chain     `json:"chain"`
	Cursor  *domain.Position `json:"cursor"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	service string
	chain   domain.Chain
	store   store.CursorStore
}

// NewHandler creates a status handler reading the event cursor of chain
func NewHandler(service string, chain domain.Chain, st store.CursorStore) Handler {
	return &handler{
		service: service,
		chain:   chain,
		store:   st,
	}
}

func (h *handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *handler) Status(c *gin.Context) {
	cursor, err := h.store.GetEventCursor(c.Request.Context(), string(h.chain))
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.String("chain", string(h.chain)))
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "failed to read event cursor"})
		return
	}

	c.JSON(http.StatusOK, Response{
		Service: h.service,
		Chain:   h.chain,
		Cursor:  cursor,
	})
}
