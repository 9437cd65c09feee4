package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

// StatusSetter is the part of POS the dispatch feed drives.
type StatusSetter interface {
	SetStatus(ctx context.Context, id string, st domain.Status) (domain.Order, bool)
}

// DispatchStatusHandler applies courier updates to the ledger. A message with
// an unknown status is rejected with ErrValidation so transports can drop it;
// an unknown order id is acknowledged and logged.
type DispatchStatusHandler struct {
	POS StatusSetter
	Log *slog.Logger
}

func NewDispatchStatusHandler(pos StatusSetter, log *slog.Logger) *DispatchStatusHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DispatchStatusHandler{POS: pos, Log: log}
}

func (h *DispatchStatusHandler) Handle(ctx context.Context, msg DispatchStatusMsg) error {
	id := strings.TrimSpace(msg.OrderID)
	if id == "" {
		return fmt.Errorf("%w: dispatch message without orderId", domain.ErrValidation)
	}
	st, ok := domain.ParseStatus(strings.TrimSpace(msg.Status))
	if !ok {
		return fmt.Errorf("%w: unknown dispatch status %q", domain.ErrValidation, msg.Status)
	}
	if _, found := h.POS.SetStatus(ctx, id, st); !found {
		h.Log.Warn("dispatch update for unknown order", "order_id", id, "status", st)
		return nil
	}
	h.Log.Info("dispatch status applied", "order_id", id, "status", st)
	return nil
}
