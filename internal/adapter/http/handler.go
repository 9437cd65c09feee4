package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

// Handler exposes the POS over HTTP. Every command gets a bounded context for
// its write-through.
type Handler struct {
	pos     *usecase.POS
	timeout time.Duration
}

func NewHandler(pos *usecase.POS, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Handler{pos: pos, timeout: timeout}
}

func (h *Handler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
