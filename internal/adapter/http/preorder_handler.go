package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type savePreOrderReq struct {
	Customer string `json:"customer"`
}

func (h *Handler) PreOrders(c *gin.Context) {
	ok(c, h.pos.PreOrders())
}

func (h *Handler) SavePreOrder(c *gin.Context) {
	var req savePreOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bad_request")
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.pos.SavePreOrder(ctx, req.Customer)
	if err != nil {
		fail(c, err, out.Notice)
		return
	}
	respond(c, http.StatusCreated, out.Value, out.Notice)
}

// ShoppingList merges every saved pre-order into one row per product.
func (h *Handler) ShoppingList(c *gin.Context) {
	ok(c, h.pos.ShoppingList())
}

func (h *Handler) ClearPreOrders(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.ClearPreOrders(ctx)
	respond(c, http.StatusOK, h.pos.PreOrders(), out.Notice)
}
