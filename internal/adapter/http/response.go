package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
	"github.com/samuelordialeseya/fruit-pos/internal/logging"
	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

type noticeResp struct {
	Level   usecase.NoticeLevel `json:"level"`
	Message string              `json:"message"`
	TTLMs   int64               `json:"ttlMs"`
}

type envelope struct {
	Data   any         `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Notice *noticeResp `json:"notice,omitempty"`
}

func toNotice(n usecase.Notice) *noticeResp {
	if n.IsZero() {
		return nil
	}
	return &noticeResp{Level: n.Level, Message: n.Message, TTLMs: n.TTL.Milliseconds()}
}

func respond(c *gin.Context, status int, data any, n usecase.Notice) {
	c.JSON(status, envelope{Data: data, Notice: toNotice(n)})
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Data: data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, envelope{Error: msg})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, envelope{Error: "not_found"})
}

// fail maps a command error to a status code and attaches its notice.
func fail(c *gin.Context, err error, n usecase.Notice) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrEmptyCollection):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicateCheckout):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		logging.From(c).Error("command failed", "err", err)
		_ = c.Error(err)
		c.JSON(status, envelope{Error: "internal_error"})
		return
	}
	c.JSON(status, envelope{Error: err.Error(), Notice: toNotice(n)})
}

// confirmed gates destructive endpoints on ?confirm=true.
func confirmed(c *gin.Context) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	c.JSON(http.StatusPreconditionRequired, envelope{Error: "confirm=true required"})
	return false
}
