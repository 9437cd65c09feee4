package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

func (h *Handler) Cart(c *gin.Context) {
	ok(c, h.pos.Cart())
}

func (h *Handler) AddLine(c *gin.Context) {
	var req usecase.AddLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bad_request")
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.pos.AddLine(ctx, req)
	if err != nil {
		fail(c, err, out.Notice)
		return
	}
	respond(c, http.StatusCreated, h.pos.Cart(), out.Notice)
}

func (h *Handler) RemoveLine(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.RemoveLine(ctx, c.Param("lineId"))
	if !out.Value {
		notFound(c)
		return
	}
	respond(c, http.StatusOK, h.pos.Cart(), out.Notice)
}

func (h *Handler) ClearCart(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.ClearCart(ctx)
	respond(c, http.StatusOK, h.pos.Cart(), out.Notice)
}

func (h *Handler) PreOrderCart(c *gin.Context) {
	ok(c, h.pos.PreOrderCart())
}

func (h *Handler) AddPreOrderLine(c *gin.Context) {
	var req usecase.AddLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bad_request")
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.pos.AddPreOrderLine(ctx, req)
	if err != nil {
		fail(c, err, out.Notice)
		return
	}
	respond(c, http.StatusCreated, h.pos.PreOrderCart(), out.Notice)
}

func (h *Handler) RemovePreOrderLine(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.RemovePreOrderLine(ctx, c.Param("lineId"))
	if !out.Value {
		notFound(c)
		return
	}
	respond(c, http.StatusOK, h.pos.PreOrderCart(), out.Notice)
}

func (h *Handler) ClearPreOrderCart(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.ClearPreOrderCart(ctx)
	respond(c, http.StatusOK, h.pos.PreOrderCart(), out.Notice)
}
