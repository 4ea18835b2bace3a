package routing

import (
	"encoding/json"
	"strings"

	"github.com/rnlabs/finbot/internal/dialog"
	"github.com/rnlabs/finbot/internal/domain"
)

// valuePayload is the structured payload shape rich clients post back from
// cards: speech clients fill "x" with the recognised utterance, the login
// card fills "mobile" and "token".
type valuePayload struct {
	X      string `json:"x"`
	Mobile string `json:"mobile"`
	Token  string `json:"token"`
}

// extractInput coerces an inbound turn into dialog input. Extraction never
// fails: clients disagree on which field carries the utterance, so it falls
// through structured value, plain text, then the raw value bytes.
func extractInput(turn domain.InboundTurn) dialog.Input {
	var in dialog.Input

	if len(turn.Value) > 0 {
		var payload valuePayload
		if err := json.Unmarshal(turn.Value, &payload); err == nil {
			if payload.Mobile != "" || payload.Token != "" {
				in.Credentials = &domain.Credentials{
					Identifier: payload.Mobile,
					Token:      payload.Token,
				}
			}
			if payload.X != "" {
				in.Text = payload.X
			} else {
				in.Text = turn.Text
			}
			if in.Text != "" || in.Credentials != nil {
				return in
			}
		}
	}

	if turn.Text != "" {
		in.Text = turn.Text
		return in
	}

	// Last resort: some clients post the bare utterance as the value.
	in.Text = strings.Trim(strings.TrimSpace(string(turn.Value)), `"`)
	return in
}
