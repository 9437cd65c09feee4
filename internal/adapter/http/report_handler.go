package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

type manifestReq struct {
	OrderIDs []string `json:"orderIds"`
	Date     string   `json:"date"`
}

func validDate(c *gin.Context, date string) bool {
	if _, err := time.Parse(usecase.RawDateLayout, date); err != nil {
		badRequest(c, "date must be YYYY-MM-DD")
		return false
	}
	return true
}

// dateParam reads ?date=, defaulting to today in the ledger's zone.
func (h *Handler) dateParam(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		return h.pos.Today(), true
	}
	return date, validDate(c, date)
}

// Dispatch is the day's delivery worklist, pending orders first.
func (h *Handler) Dispatch(c *gin.Context) {
	date, valid := h.dateParam(c)
	if !valid {
		return
	}
	ok(c, h.pos.DispatchList(date))
}

func (h *Handler) Revenue(c *gin.Context) {
	date, valid := h.dateParam(c)
	if !valid {
		return
	}
	ok(c, gin.H{"date": date, "revenue": h.pos.DailyRevenue(date)})
}

// Manifest sorts the selected orders by delivery phase. Without orderIds,
// every order of the given date (default today) is selected.
func (h *Handler) Manifest(c *gin.Context) {
	var req manifestReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "bad_request")
			return
		}
	}
	ids := req.OrderIDs
	if len(ids) == 0 {
		date := req.Date
		if date == "" {
			date = h.pos.Today()
		} else if !validDate(c, date) {
			return
		}
		for _, o := range h.pos.DispatchList(date).Orders {
			ids = append(ids, o.ID)
		}
	}
	m := h.pos.BuildManifest(ids)
	if m.Rows == nil {
		m.Rows = []usecase.ManifestRow{}
	}
	ok(c, m)
}
