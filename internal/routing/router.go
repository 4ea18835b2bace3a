// Package routing connects conversation channels to the dialog orchestrator.
package routing

import (
	"context"

	"github.com/rnlabs/finbot/internal/channel"
	"github.com/rnlabs/finbot/internal/dialog"
	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/logging"
)

// Router routes inbound turns to the orchestrator and outbound replies back
// through the originating channel.
type Router struct {
	channels *channel.Registry
	orch     *dialog.Orchestrator
	log      *logging.Logger
}

// NewRouter creates a turn router.
func NewRouter(channels *channel.Registry, orch *dialog.Orchestrator, log *logging.Logger) *Router {
	return &Router{
		channels: channels,
		orch:     orch,
		log:      log.Sub("routing"),
	}
}

// HandleInbound processes one inbound turn from any channel. Channels deliver
// turns for a conversation sequentially, so turn ordering per conversation is
// the channel's guarantee, not this function's.
func (r *Router) HandleInbound(ctx context.Context, turn domain.InboundTurn) {
	r.log.Info().
		Str("channel", turn.ChannelID).
		Str("conversation", turn.ConversationID).
		Str("type", string(turn.Type)).
		Msg("routing inbound turn")

	var replies []domain.Reply
	switch turn.Type {
	case domain.TurnJoin:
		replies = r.orch.Welcome(turn.ConversationID)
	default:
		var err error
		replies, err = r.orch.HandleTurn(ctx, turn.ConversationID, extractInput(turn))
		if err != nil {
			r.log.Error().Err(err).
				Str("channel", turn.ChannelID).
				Str("conversation", turn.ConversationID).
				Msg("turn processing failed")
			// Replies that made it out of the orchestrator still get sent;
			// only the session write behind them failed.
		}
	}

	if len(replies) == 0 {
		return
	}

	ch, ok := r.channels.Get(turn.ChannelID)
	if !ok {
		r.log.Error().Str("channel", turn.ChannelID).Msg("channel not found for reply")
		return
	}

	for _, reply := range replies {
		out := domain.OutboundReply{
			ChannelID:      turn.ChannelID,
			ConversationID: turn.ConversationID,
			To:             turn.From,
			Reply:          reply,
		}
		if err := ch.Send(ctx, out); err != nil {
			r.log.Error().Err(err).
				Str("channel", turn.ChannelID).
				Str("conversation", turn.ConversationID).
				Msg("failed to send reply")
			return
		}
	}

	r.log.Debug().
		Str("channel", turn.ChannelID).
		Str("conversation", turn.ConversationID).
		Int("replies", len(replies)).
		Msg("replies sent")
}
