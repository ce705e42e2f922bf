package activity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"miniblog/internal/core"
	"miniblog/internal/nats"
	"miniblog/pkg/retry"
)

const consumerName = "activity"

var events = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "miniblog_activity_events_total",
	Help: "Reaction events consumed from the activity stream by outcome.",
}, []string{"outcome"})

type delivery struct {
	msg   jetstream.Msg
	event core.ReactionEvent
	err   error
}

// Consumer follows the reaction stream, counts events and keeps per-publication snapshots.
type Consumer struct {
	Logger *slog.Logger
	NATS   *nats.NATS
}

func (c *Consumer) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "activity.Consumer")
	return nil
}

func (c *Consumer) Run(ctx context.Context) error {
	err := retry.Do(ctx, retryPolicy(c.Logger), c.consume)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Consumer) consume(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cons, err := c.NATS.JS.CreateOrUpdateConsumer(ctx, nats.StreamName, jetstream.ConsumerConfig{
		Durable:       consumerName,
		FilterSubject: ReactionsSubject + ".>",
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return err
	}

	iter, err := cons.Messages()
	if err != nil {
		return err
	}
	defer iter.Stop()

	c.Logger.Info("Consuming activity", "stream", nats.StreamName, "consumer", consumerName)

	return pips.New[jetstream.Msg, delivery](
		apply.Map(decode),
		apply.Each(c.record),
	).Run(ctx, messages(ctx, iter)).Wait(ctx)
}

// retryPolicy keeps consuming through NATS outages of any length.
func retryPolicy(logger *slog.Logger) retry.Policy {
	return retry.Policy{
		ShouldRetry: func(err error, attempt int) bool {
			logger.Error("Error consuming activity, retrying", "error", err, "attempt", attempt)
			return true
		},
		Delay: time.Second,
	}
}

// decode never fails the pipeline, a malformed message is terminated by record.
func decode(_ context.Context, msg jetstream.Msg) (delivery, error) {
	event, err := DecodeEvent(msg.Data())
	return delivery{msg: msg, event: event, err: err}, nil
}

func (c *Consumer) record(ctx context.Context, d delivery) error {
	if d.err != nil {
		c.Logger.Warn("Dropping malformed activity message", "subject", d.msg.Subject(), "error", d.err)
		return d.msg.Term()
	}

	events.WithLabelValues(string(d.event.Outcome)).Inc()

	snapshot, err := json.Marshal(Snapshot{
		Likes:    d.event.Likes,
		Dislikes: d.event.Dislikes,
		Outcome:  string(d.event.Outcome),
	})
	if err != nil {
		return err
	}
	if _, err := c.NATS.KV.Put(ctx, SnapshotKey(d.event.PublicationID), snapshot); err != nil {
		return err
	}

	c.Logger.Debug("Reaction event",
		"publication", d.event.PublicationID,
		"user", d.event.UserID,
		"outcome", d.event.Outcome,
	)

	return d.msg.Ack()
}

func messages(ctx context.Context, iter jetstream.MessagesContext) <-chan pips.D[jetstream.Msg] {
	out := make(chan pips.D[jetstream.Msg])

	go func() {
		<-ctx.Done()
		iter.Stop()
	}()

	go func() {
		defer close(out)

		for {
			msg, err := iter.Next()
			if errors.Is(err, jetstream.ErrMsgIteratorClosed) {
				return
			}

			d := pips.NewD(msg, err)
			select {
			case out <- d:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	return out
}
