package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/IBM/sarama"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

// HandlerFunc processes a decoded dispatch update.
type HandlerFunc func(ctx context.Context, msg usecase.DispatchStatusMsg) error

// Consumer consumes the dispatch topics with a single handler.
type Consumer struct {
	Group  sarama.ConsumerGroup
	Topics []string
	Handle HandlerFunc
	Logger *slog.Logger
}

func NewConsumer(group sarama.ConsumerGroup, topics []string, h HandlerFunc, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{
		Group:  group,
		Topics: topics,
		Handle: h,
		Logger: log,
	}
}

// Start blocks until ctx is cancelled or the group fails.
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.Group.Errors() {
			c.Logger.Error("kafka group error", "err", err)
		}
	}()

	handler := &cgHandler{handle: c.Handle, logger: c.Logger}
	for {
		if err := c.Group.Consume(ctx, c.Topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		}
		// Consume returns on rebalance or cancellation
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

type cgHandler struct {
	handle HandlerFunc
	logger *slog.Logger
}

func (h *cgHandler) Setup(sess sarama.ConsumerGroupSession) error {
	h.logger.Info("kafka session started", "member", sess.MemberID(), "generation", sess.GenerationID())
	return nil
}

func (h *cgHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *cgHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case <-sess.Context().Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.process(sess, msg)
		}
	}
}

func (h *cgHandler) process(sess sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage) {
	log := h.logger.With("topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)

	var ev usecase.DispatchStatusMsg
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		log.Warn("kafka decode error", "err", err)
		// mark to avoid reprocessing poison
		sess.MarkMessage(msg, "decode-error")
		return
	}
	if err := h.handle(sess.Context(), ev); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			log.Warn("dispatch message rejected", "order_id", ev.OrderID, "err", err)
			sess.MarkMessage(msg, "rejected")
			return
		}
		// not marked: redelivered after the next rebalance
		log.Error("dispatch handler error", "order_id", ev.OrderID, "key", string(msg.Key), "err", err)
		return
	}
	sess.MarkMessage(msg, "")
}
