package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

type checkoutReq struct {
	Customer string `json:"customer"`
	Address  string `json:"address"`
}

type statusReq struct {
	Status string `json:"status"`
}

// CompleteOrder checks out the sale cart. X-Idempotency-Key makes retries
// return the original order with 200 instead of creating another.
func (h *Handler) CompleteOrder(c *gin.Context) {
	var req checkoutReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "bad_request")
			return
		}
	}
	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated checkouts

	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.pos.CompleteOrder(ctx, usecase.CheckoutInput{
		Customer:       req.Customer,
		Address:        req.Address,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		fail(c, err, out.Notice)
		return
	}
	status := http.StatusCreated
	if out.Replayed {
		c.Header("Idempotent-Replayed", "true")
		status = http.StatusOK
	}
	respond(c, status, out.Value, out.Notice)
}

// ListOrders returns the ledger, optionally narrowed to ?date=YYYY-MM-DD.
func (h *Handler) ListOrders(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		if !validDate(c, date) {
			return
		}
		orders := usecase.FilterByDate(h.pos.Orders(), date)
		if orders == nil {
			orders = []domain.Order{}
		}
		ok(c, orders)
		return
	}
	ok(c, h.pos.Orders())
}

func (h *Handler) GetOrderByID(c *gin.Context) {
	o, found := h.pos.GetOrder(c.Param("id"))
	if !found {
		notFound(c)
		return
	}
	ok(c, o)
}

func (h *Handler) Receipt(c *gin.Context) {
	r, found := h.pos.Receipt(c.Param("id"))
	if !found {
		notFound(c)
		return
	}
	ok(c, r)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.DeleteOrder(ctx, c.Param("id"))
	if !out.Value {
		notFound(c)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true}, out.Notice)
}

// SetOrderStatus toggles Pending/Delivered, or applies {"status": ...} when
// a body is sent.
func (h *Handler) SetOrderStatus(c *gin.Context) {
	var req statusReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "bad_request")
			return
		}
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	id := c.Param("id")
	if req.Status == "" {
		out, found := h.pos.ToggleStatus(ctx, id)
		if !found {
			notFound(c)
			return
		}
		respond(c, http.StatusOK, out.Value, out.Notice)
		return
	}

	st, valid := domain.ParseStatus(req.Status)
	if !valid {
		badRequest(c, "status must be Pending or Delivered")
		return
	}
	o, found := h.pos.SetStatus(ctx, id, st)
	if !found {
		notFound(c)
		return
	}
	ok(c, o)
}
