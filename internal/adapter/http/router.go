package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samuelordialeseya/fruit-pos/internal/adapter/http/middleware"
	"github.com/samuelordialeseya/fruit-pos/internal/logging"
)

func NewRouter(h *Handler, l *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Debug("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/products", h.ListProducts)
		v1.POST("/products", h.AddProduct)
		v1.GET("/products/:id", h.GetProduct)
		v1.PATCH("/products/:id", h.UpdateProduct)
		v1.DELETE("/products/:id", h.DeleteProduct)
		v1.GET("/categories", h.Categories)
		v1.DELETE("/inventory", h.ResetInventory)

		v1.GET("/cart", h.Cart)
		v1.POST("/cart/lines", h.AddLine)
		v1.DELETE("/cart/lines/:lineId", h.RemoveLine)
		v1.DELETE("/cart", h.ClearCart)

		v1.GET("/orders", h.ListOrders)
		v1.POST("/orders", h.CompleteOrder)
		v1.GET("/orders/:id", h.GetOrderByID)
		v1.DELETE("/orders/:id", h.DeleteOrder)
		v1.POST("/orders/:id/status", h.SetOrderStatus)
		v1.GET("/orders/:id/receipt", h.Receipt)

		v1.GET("/dispatch", h.Dispatch)
		v1.GET("/revenue", h.Revenue)
		v1.POST("/manifest", h.Manifest)

		v1.GET("/preorder-cart", h.PreOrderCart)
		v1.POST("/preorder-cart/lines", h.AddPreOrderLine)
		v1.DELETE("/preorder-cart/lines/:lineId", h.RemovePreOrderLine)
		v1.DELETE("/preorder-cart", h.ClearPreOrderCart)

		v1.GET("/preorders", h.PreOrders)
		v1.POST("/preorders", h.SavePreOrder)
		v1.DELETE("/preorders", h.ClearPreOrders)
		v1.GET("/preorders/shopping-list", h.ShoppingList)
	}

	return r
}
