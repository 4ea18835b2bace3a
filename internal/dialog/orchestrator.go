// Package dialog drives the interview script turn by turn.
package dialog

import (
	"context"
	"fmt"

	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/logging"
)

// defaultRestartKeyword reopens a closed interview.
const defaultRestartKeyword = "proceed"

// Input is the extracted payload of one inbound turn.
type Input struct {
	// Text is the plain-text form of the turn, already coerced from
	// whichever field the client filled in.
	Text string
	// Credentials is set when the client sent a structured login payload.
	Credentials *domain.Credentials
}

// Gateway records scored answers durably.
type Gateway interface {
	InsertAnswer(ctx context.Context, ans domain.Answer) error
}

// Renderer resolves content keys into prompt cards.
type Renderer interface {
	Render(key domain.ContentKey, category domain.Category) (*domain.Card, error)
}

// Speech turns a spoken line into synthesis markup.
type Speech interface {
	Markup(text string) string
}

// IdentityResolver validates login credentials and resolves the question
// track for a participant.
type IdentityResolver interface {
	Resolve(ctx context.Context, identifier, token string) (domain.Category, error)
}

// Config tunes orchestrator behaviour.
type Config struct {
	// RestartKeyword is the exact text that reopens a closed interview.
	// Empty means the default.
	RestartKeyword string
	// BlockOnWriteFailure closes the interview when an answer cannot be
	// recorded. When false the failure is logged and the script moves on.
	BlockOnWriteFailure bool
}

// Orchestrator advances interview sessions through the script. It owns the
// per-turn sequencing: load session, run the handler for the current step,
// commit the scored answer, then advance and save.
type Orchestrator struct {
	sessions SessionStore
	answers  Gateway
	render   Renderer
	speech   Speech
	resolver IdentityResolver
	cfg      Config
	log      *logging.Logger
}

// New creates an orchestrator over the given collaborators.
func New(sessions SessionStore, answers Gateway, render Renderer, speech Speech, resolver IdentityResolver, cfg Config, log *logging.Logger) *Orchestrator {
	if cfg.RestartKeyword == "" {
		cfg.RestartKeyword = defaultRestartKeyword
	}
	return &Orchestrator{
		sessions: sessions,
		answers:  answers,
		render:   render,
		speech:   speech,
		resolver: resolver,
		cfg:      cfg,
		log:      log.Sub("dialog"),
	}
}

// HandleTurn processes one inbound turn for a conversation and returns the
// replies to deliver. Handler failures close the interview with an apology
// instead of surfacing an error; only session-store failures propagate.
func (o *Orchestrator) HandleTurn(ctx context.Context, conversationID string, in Input) ([]domain.Reply, error) {
	sess, err := o.sessions.GetOrCreate(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if sess.Step == domain.StepIdle {
		// Closed interviews ignore everything but the exact restart keyword.
		if in.Text != o.cfg.RestartKeyword {
			return nil, nil
		}
		sess.Reset()
		o.log.Info().Str("conversation", conversationID).Msg("interview restarted")
	}

	res, err := o.runStep(ctx, sess, in)
	if err != nil {
		return o.failStep(ctx, sess, err)
	}

	if res.answer != nil {
		if err := o.answers.InsertAnswer(ctx, *res.answer); err != nil {
			o.log.Error().Err(err).
				Str("conversation", conversationID).
				Str("step", string(res.answer.StepLabel)).
				Msg("answer write failed")
			if o.cfg.BlockOnWriteFailure {
				return o.failStep(ctx, sess, fmt.Errorf("record answer: %w", err))
			}
		}
	}

	switch {
	case res.reset:
		sess.Reset()
	case res.next != sess.Step:
		if err := sess.Advance(res.next); err != nil {
			return o.failStep(ctx, sess, fmt.Errorf("advance to %s: %w", res.next, err))
		}
	}

	if err := o.sessions.Save(ctx, sess); err != nil {
		return res.replies, fmt.Errorf("save session: %w", err)
	}
	return res.replies, nil
}

// Welcome produces the greeting for a participant joining the conversation.
func (o *Orchestrator) Welcome(conversationID string) []domain.Reply {
	reply, err := o.prompt(domain.KeyWelcome, domain.CategoryGeneral, "", "")
	if err != nil {
		o.log.Error().Err(err).Str("conversation", conversationID).Msg("welcome card failed")
		return nil
	}
	return []domain.Reply{reply}
}

// runStep dispatches to the handler for the session's current step, turning
// panics into step errors so one bad turn cannot take the service down.
func (o *Orchestrator) runStep(ctx context.Context, sess *domain.Session, in Input) (res *stepResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = &StepError{Step: string(sess.Step), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	handler, ok := stepHandlers[sess.Step]
	if !ok {
		return nil, &StepError{Step: string(sess.Step), Err: fmt.Errorf("no handler for step")}
	}

	res, err = handler(ctx, o, sess, in)
	if err != nil {
		return nil, &StepError{Step: string(sess.Step), Err: err}
	}
	return res, nil
}

// failStep closes the interview after an unrecoverable handler failure. The
// participant sees a short apology; the cause goes to the log only.
func (o *Orchestrator) failStep(ctx context.Context, sess *domain.Session, cause error) ([]domain.Reply, error) {
	o.log.Error().Err(cause).
		Str("conversation", sess.ConversationID).
		Str("step", string(sess.Step)).
		Msg("step failed, closing interview")

	sess.ForceIdle()
	if err := o.sessions.Save(ctx, sess); err != nil {
		o.log.Error().Err(err).Str("conversation", sess.ConversationID).Msg("saving closed session failed")
	}
	return []domain.Reply{{Text: stepErrorText}}, nil
}

// prompt assembles a reply from a rendered card, a text hint and a spoken
// line.
func (o *Orchestrator) prompt(key domain.ContentKey, category domain.Category, text, voice string) (domain.Reply, error) {
	card, err := o.render.Render(key, category)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("render %s: %w", key, err)
	}
	return domain.Reply{
		ContentKey: key,
		Card:       card,
		Text:       text,
		Speak:      o.speech.Markup(voice),
	}, nil
}
