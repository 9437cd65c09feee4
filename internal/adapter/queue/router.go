package queue

import (
	"context"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

// Router manages multiple consumers (one per registered queue) on a single AMQP channel.
type Router struct {
	ch            *amqp.Channel
	log           *slog.Logger
	prefetch      int
	callTimeout   time.Duration
	requeueOnErr  bool
	registrations []registration
}

type registration struct {
	queueName   string
	bindingKey  string
	exchange    string
	handler     Handler
	consumerTag string
}

type RouterOption func(*Router)

func WithPrefetch(n int) RouterOption          { return func(r *Router) { r.prefetch = n } }
func WithTimeout(d time.Duration) RouterOption { return func(r *Router) { r.callTimeout = d } }
func WithRequeue(b bool) RouterOption          { return func(r *Router) { r.requeueOnErr = b } }
func WithLogger(l *slog.Logger) RouterOption   { return func(r *Router) { r.log = l } }

// NewRouter constructs a Router. Defaults: prefetch=50, timeout=10s, requeueOnErr=true.
func NewRouter(ch *amqp.Channel, opts ...RouterOption) *Router {
	r := &Router{
		ch:           ch,
		log:          slog.Default(),
		prefetch:     50,
		callTimeout:  10 * time.Second,
		requeueOnErr: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates a durable queue bound to exchange/bindingKey with a
// handler. Call multiple times for multiple queues.
func (r *Router) Register(queueName, exchange, bindingKey string, h Handler) {
	r.registrations = append(r.registrations, registration{
		queueName:   queueName,
		exchange:    exchange,
		bindingKey:  bindingKey,
		handler:     h,
		consumerTag: "c_" + queueName,
	})
}

// Start declares and binds every queue, then consumes; non-blocking (one
// goroutine per queue). QoS applies to all consumers on the channel.
func (r *Router) Start(ctx context.Context) error {
	if err := r.ch.Qos(r.prefetch, 0, false); err != nil {
		return err
	}

	for _, reg := range r.registrations {
		q, err := r.ch.QueueDeclare(reg.queueName, true, false, false, false, nil)
		if err != nil {
			return err
		}
		if err := r.ch.QueueBind(q.Name, reg.bindingKey, reg.exchange, false, nil); err != nil {
			return err
		}
		deliveries, err := r.ch.Consume(
			q.Name,
			reg.consumerTag,
			false, // manual ack
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,
		)
		if err != nil {
			return err
		}
		go r.consume(ctx, reg, deliveries)
	}
	return nil
}

func (r *Router) consume(ctx context.Context, reg registration, msgs <-chan amqp.Delivery) {
	log := r.log.With("queue", reg.queueName, "tag", reg.consumerTag)
	for d := range msgs {
		callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
		err := reg.handler.Handle(callCtx, d)
		cancel()

		if err != nil {
			requeue := r.requeueOnErr && !permanent(err)
			log.Warn("handler error", "rk", d.RoutingKey, "err", err, "requeue", requeue)
			_ = d.Nack(false, requeue)
			continue
		}
		_ = d.Ack(false)
	}
	log.Info("consumer stopped")
}

func permanent(err error) bool {
	return errors.Is(err, ErrMalformed) || errors.Is(err, domain.ErrValidation)
}
