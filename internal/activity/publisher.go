package activity

import (
	"context"

	libnats "github.com/nats-io/nats.go"
	"github.com/zhulik/pal"

	"miniblog/internal/core"
	"miniblog/internal/nats"
)

// Provide wires the JetStream publisher when enabled, a no-op publisher otherwise.
func Provide(enabled bool) pal.ServiceDef {
	if !enabled {
		return pal.Provide[core.ActivityPublisher](&Discard{})
	}
	return pal.ProvideList(
		pal.Provide(&nats.NATS{}),
		pal.Provide[core.ActivityPublisher](&Publisher{}),
	)
}

// Publisher sends committed reaction toggles to JetStream.
type Publisher struct {
	NATS *nats.NATS
}

func (p *Publisher) PublishReaction(ctx context.Context, event core.ReactionEvent) error {
	data, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	_, err = p.NATS.JS.PublishMsg(ctx, &libnats.Msg{
		Subject: Subject(event.Outcome),
		Data:    data,
		Header: libnats.Header{
			libnats.MsgIdHdr: []string{MessageID(event)},
		},
	})
	return err
}

type Discard struct{}

func (*Discard) PublishReaction(context.Context, core.ReactionEvent) error {
	return nil
}
