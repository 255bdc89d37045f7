package inventory

import (
	"context"
	"fmt"

	"github.com/stocktier/backend/internal/domain/inventory"
	"github.com/stocktier/backend/internal/domain/shared"
	"github.com/stocktier/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// StockAlertHandler reacts to StockBelowThreshold events and turns them into
// notifications. Without a notifier it degrades to a structured log line.
type StockAlertHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// StockAlertNotifier is the interface for sending low-stock alerts.
// Implementations can support different channels (in-app, email, SMS, etc.)
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a low-stock alert
type StockAlert struct {
	ItemID    string `json:"item_id"`
	SKU       string `json:"sku"`
	Quantity  string `json:"quantity"`
	Threshold string `json:"threshold"`
	AlertType string `json:"alert_type"` // "low_stock", "out_of_stock"
}

// NewStockAlertHandler creates a new handler for stock below threshold events
func NewStockAlertHandler(logger *zap.Logger) *StockAlertHandler {
	return &StockAlertHandler{
		logger: logger,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockAlertHandler) WithNotifier(notifier StockAlertNotifier) *StockAlertHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockAlertHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThresholdEvent
func (h *StockAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	log := logger.WithTraceContext(ctx, h.logger)
	thresholdEvent, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		log.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowThreshold),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowThreshold, event.EventType())
	}

	log.Warn("stock below threshold",
		zap.String("item_id", thresholdEvent.AggregateID().String()),
		zap.String("sku", thresholdEvent.SKU),
		zap.String("quantity", thresholdEvent.Quantity.String()),
		zap.String("threshold", thresholdEvent.Threshold.String()),
	)

	if h.notifier == nil {
		return nil
	}

	alertType := "low_stock"
	if thresholdEvent.Quantity.IsZero() {
		alertType = "out_of_stock"
	}
	alert := StockAlert{
		ItemID:    thresholdEvent.AggregateID().String(),
		SKU:       thresholdEvent.SKU,
		Quantity:  thresholdEvent.Quantity.String(),
		Threshold: thresholdEvent.Threshold.String(),
		AlertType: alertType,
	}
	if err := h.notifier.SendAlert(ctx, alert); err != nil {
		// Notification failure must not fail the event delivery
		log.Error("failed to send stock alert",
			zap.String("sku", alert.SKU),
			zap.Error(err),
		)
	}
	return nil
}
