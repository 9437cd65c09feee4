package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

// ListProducts supports ?category= and ?q= (case-insensitive name search).
func (h *Handler) ListProducts(c *gin.Context) {
	ok(c, h.pos.ListProducts(usecase.ProductFilter{
		Category: c.Query("category"),
		Term:     c.Query("q"),
	}))
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, found := h.pos.GetProduct(c.Param("id"))
	if !found {
		notFound(c)
		return
	}
	ok(c, p)
}

func (h *Handler) AddProduct(c *gin.Context) {
	var req usecase.AddProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bad_request")
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.pos.AddProduct(ctx, req)
	if err != nil {
		fail(c, err, out.Notice)
		return
	}
	respond(c, http.StatusCreated, out.Value, out.Notice)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req usecase.ProductPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "bad_request")
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out, err := h.pos.UpdateProduct(ctx, c.Param("id"), req)
	if err != nil {
		fail(c, err, out.Notice)
		return
	}
	respond(c, http.StatusOK, out.Value, out.Notice)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.DeleteProduct(ctx, c.Param("id"))
	if !out.Value {
		notFound(c)
		return
	}
	respond(c, http.StatusOK, gin.H{"deleted": true}, out.Notice)
}

func (h *Handler) Categories(c *gin.Context) {
	ok(c, h.pos.Categories())
}

// ResetInventory drops every product and the sale cart.
func (h *Handler) ResetInventory(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	out := h.pos.ResetInventory(ctx)
	respond(c, http.StatusOK, gin.H{"reset": true}, out.Notice)
}
