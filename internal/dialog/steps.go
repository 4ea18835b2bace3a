package dialog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/evaluate"
)

// User-visible messages.
const (
	credentialErrorText = "Incorrect mobile/token"
	stepErrorText       = "Something went wrong in this step. The interview has been closed."
	micHintText         = "Please click on the mic icon to answer the below question"
	tenWordsHintText    = "Answer the next question within 10 words"
	mcqHintText         = "The following question is MCQ. Please reply with the entire correct answer. For example: Option B Answer OR Answer"
	thanksText          = "Interview over, the browser can be closed now."
)

// Spoken lines per prompt. MCQ questions differ by category track.
var (
	hr1Voice = "Why are you leaving your current job? Explain in one line"
	hr2Voice = "How would your current manager describe you?"

	t1Voice = map[domain.Category]string{
		domain.CategoryAWS:     "Which of the following is the central application in the AWS portfolio",
		domain.CategoryAzure:   "Which Service in Azure is used to manage resources",
		domain.CategoryGeneral: "At what level of an organisation does a corporate manager operate",
	}
	t2Voice = map[domain.Category]string{
		domain.CategoryAWS:     "Which of the following feature is used for scaling of EC2 sites",
		domain.CategoryAzure:   "Which of the following element is a non-relational storage system for large-scale storage",
		domain.CategoryGeneral: "Which one is not a recognised key skill of management",
	}
)

func voiceFor(table map[domain.Category]string, category domain.Category) string {
	if v, ok := table[category]; ok {
		return v
	}
	return table[domain.CategoryGeneral]
}

// stepResult is what a handler hands back to the orchestrator.
type stepResult struct {
	// answer, if set, is committed before the step advances.
	answer  *domain.Answer
	replies []domain.Reply
	// next is the step to advance to; equal to the current step for no
	// movement. reset sends the session back to the start instead.
	next  domain.Step
	reset bool
}

// stepHandler executes the script position the session is waiting at.
type stepHandler func(ctx context.Context, o *Orchestrator, sess *domain.Session, in Input) (*stepResult, error)

// stepHandlers is the lookup table from script position to handler.
var stepHandlers = map[domain.Step]stepHandler{
	domain.StepStart:      handleStart,
	domain.StepAwaitLogin: handleLogin,
	domain.StepAwaitHR1:   answerHandler(domain.LabelHR1, promptHR2),
	domain.StepAwaitHR2:   answerHandler(domain.LabelHR2, promptT1),
	domain.StepAwaitT1:    answerHandler(domain.LabelT1, promptT2),
	domain.StepAwaitT2:    answerHandler(domain.LabelT2, promptThanks),
}

// handleStart renders the login prompt and starts waiting for credentials.
func handleStart(_ context.Context, o *Orchestrator, sess *domain.Session, _ Input) (*stepResult, error) {
	reply, err := o.prompt(domain.KeyLogin, sess.Category, "", "")
	if err != nil {
		return nil, err
	}
	return &stepResult{
		replies: []domain.Reply{reply},
		next:    domain.StepAwaitLogin,
	}, nil
}

// handleLogin resolves the credentials payload. Failure resets the dialog
// to the start with a credential-error message; it never advances the step.
func handleLogin(ctx context.Context, o *Orchestrator, sess *domain.Session, in Input) (*stepResult, error) {
	creds := in.Credentials
	if creds == nil {
		creds = &domain.Credentials{}
	}

	category, err := o.resolver.Resolve(ctx, creds.Identifier, creds.Token)
	if err != nil {
		return &stepResult{
			replies: []domain.Reply{{Text: credentialErrorText}},
			reset:   true,
		}, nil
	}

	sess.UserID = creds.Identifier
	sess.Token = creds.Token
	if err := sess.AssignCategory(category); err != nil {
		// Category is write-once; a re-login keeps the original track.
		o.log.Debug().Str("conversation", sess.ConversationID).Msg("category already resolved, keeping it")
	}

	reply, err := o.prompt(domain.KeyHR1, sess.Category, micHintText, hr1Voice)
	if err != nil {
		return nil, err
	}
	return &stepResult{
		replies: []domain.Reply{reply},
		next:    domain.StepAwaitHR1,
	}, nil
}

// nextPrompt builds the outbound prompt that follows a consumed answer.
type nextPrompt func(o *Orchestrator, category domain.Category) (domain.Reply, error)

func promptHR2(o *Orchestrator, category domain.Category) (domain.Reply, error) {
	return o.prompt(domain.KeyHR2, category, tenWordsHintText, hr2Voice)
}

func promptT1(o *Orchestrator, category domain.Category) (domain.Reply, error) {
	return o.prompt(domain.KeyT1, category, mcqHintText, voiceFor(t1Voice, category))
}

func promptT2(o *Orchestrator, category domain.Category) (domain.Reply, error) {
	return o.prompt(domain.KeyT2, category, mcqHintText, voiceFor(t2Voice, category))
}

func promptThanks(o *Orchestrator, category domain.Category) (domain.Reply, error) {
	return o.prompt(domain.KeyThanks, category, thanksText, thanksText)
}

// answerHandler builds the handler for a script position that consumes and
// scores an answer, then asks the next question (or closes the interview).
func answerHandler(label domain.StepLabel, next nextPrompt) stepHandler {
	return func(_ context.Context, o *Orchestrator, sess *domain.Session, in Input) (*stepResult, error) {
		if sess.UserID == "" {
			return nil, errors.New("answer step reached without a logged-in participant")
		}

		lowered := strings.ToLower(in.Text)
		verdict := evaluate.Evaluate(lowered, sess.Category, label)

		reply, err := next(o, sess.Category)
		if err != nil {
			return nil, err
		}

		return &stepResult{
			answer: &domain.Answer{
				UserID:     sess.UserID,
				StepLabel:  label,
				RawText:    lowered,
				Evaluation: verdict,
				RecordedAt: time.Now(),
			},
			replies: []domain.Reply{reply},
			next:    sess.Step.Next(),
		}, nil
	}
}
