package routing

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnlabs/finbot/internal/channel"
	"github.com/rnlabs/finbot/internal/dialog"
	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/logging"
	"github.com/rnlabs/finbot/internal/speech"
)

func testLogger() *logging.Logger {
	return logging.New(io.Discard, "silent", "json")
}

// mockChannel is a test double for domain.Channel.
type mockChannel struct {
	id      string
	sent    []domain.OutboundReply
	handler func(domain.InboundTurn)
}

func (m *mockChannel) ID() string                    { return m.id }
func (m *mockChannel) Start(_ context.Context) error { return nil }
func (m *mockChannel) Stop(_ context.Context) error  { return nil }
func (m *mockChannel) Send(_ context.Context, reply domain.OutboundReply) error {
	m.sent = append(m.sent, reply)
	return nil
}
func (m *mockChannel) OnTurn(handler func(domain.InboundTurn)) {
	m.handler = handler
}

type stubGateway struct{ answers []domain.Answer }

func (g *stubGateway) InsertAnswer(_ context.Context, ans domain.Answer) error {
	g.answers = append(g.answers, ans)
	return nil
}

type stubRenderer struct{}

func (stubRenderer) Render(key domain.ContentKey, _ domain.Category) (*domain.Card, error) {
	return &domain.Card{
		ContentType: "application/vnd.microsoft.card.adaptive",
		Content:     json.RawMessage(`{}`),
	}, nil
}

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, identifier, token string) (domain.Category, error) {
	return domain.CategoryAzure, nil
}

func newTestRouter(t *testing.T) (*Router, *mockChannel, *stubGateway) {
	t.Helper()
	log := testLogger()
	ch := &mockChannel{id: "websocket"}

	reg := channel.NewRegistry(log)
	reg.Register(ch)

	gw := &stubGateway{}
	orch := dialog.New(
		dialog.NewMemorySessionStore(),
		gw,
		stubRenderer{},
		speech.NewSynthesizer(""),
		stubResolver{},
		dialog.Config{},
		log,
	)
	return NewRouter(reg, orch, log), ch, gw
}

func turn(conv string) domain.InboundTurn {
	return domain.InboundTurn{
		ID:             "turn-1",
		ChannelID:      "websocket",
		ConversationID: conv,
		From:           "user-1",
		Type:           domain.TurnMessage,
		Timestamp:      time.Now(),
	}
}

func TestHandleInboundMessageTurn(t *testing.T) {
	router, ch, _ := newTestRouter(t)

	in := turn("conv-1")
	in.Text = "hello"
	router.HandleInbound(context.Background(), in)

	require.Len(t, ch.sent, 1)
	assert.Equal(t, "websocket", ch.sent[0].ChannelID)
	assert.Equal(t, "conv-1", ch.sent[0].ConversationID)
	assert.Equal(t, "user-1", ch.sent[0].To)
	assert.Equal(t, domain.KeyLogin, ch.sent[0].Reply.ContentKey)
}

func TestHandleInboundJoinTurn(t *testing.T) {
	router, ch, _ := newTestRouter(t)

	in := turn("conv-2")
	in.Type = domain.TurnJoin
	router.HandleInbound(context.Background(), in)

	require.Len(t, ch.sent, 1)
	assert.Equal(t, domain.KeyWelcome, ch.sent[0].Reply.ContentKey)
}

func TestHandleInboundStructuredLogin(t *testing.T) {
	router, ch, gw := newTestRouter(t)

	router.HandleInbound(context.Background(), turn("conv-3")) // login prompt

	in := turn("conv-3")
	in.Value = json.RawMessage(`{"mobile":"9999","token":"tok-1"}`)
	router.HandleInbound(context.Background(), in)

	require.Len(t, ch.sent, 2)
	assert.Equal(t, domain.KeyHR1, ch.sent[1].Reply.ContentKey)

	// The HR1 answer arrives as a speech payload in the value field.
	in = turn("conv-3")
	in.Value = json.RawMessage(`{"x":"I want career growth"}`)
	router.HandleInbound(context.Background(), in)

	require.Len(t, gw.answers, 1)
	assert.Equal(t, "i want career growth", gw.answers[0].RawText)
}

func TestHandleInboundUnknownChannel(t *testing.T) {
	router, ch, _ := newTestRouter(t)

	in := turn("conv-4")
	in.ChannelID = "smoke-signals"
	in.Text = "hello"
	router.HandleInbound(context.Background(), in)

	assert.Empty(t, ch.sent)
}

func TestExtractInput(t *testing.T) {
	tests := []struct {
		name      string
		turn      domain.InboundTurn
		wantText  string
		wantCreds *domain.Credentials
	}{
		{
			name:     "plain text",
			turn:     domain.InboundTurn{Text: "hello there"},
			wantText: "hello there",
		},
		{
			name:     "value x wins over text",
			turn:     domain.InboundTurn{Text: "typed", Value: json.RawMessage(`{"x":"spoken"}`)},
			wantText: "spoken",
		},
		{
			name:      "credentials payload",
			turn:      domain.InboundTurn{Value: json.RawMessage(`{"mobile":"123","token":"t"}`)},
			wantCreds: &domain.Credentials{Identifier: "123", Token: "t"},
		},
		{
			name:     "text fallback on malformed value",
			turn:     domain.InboundTurn{Text: "typed", Value: json.RawMessage(`{not json`)},
			wantText: "typed",
		},
		{
			name:     "bare value string",
			turn:     domain.InboundTurn{Value: json.RawMessage(`"raw utterance"`)},
			wantText: "raw utterance",
		},
		{
			name:     "empty turn",
			turn:     domain.InboundTurn{},
			wantText: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := extractInput(tt.turn)
			assert.Equal(t, tt.wantText, in.Text)
			assert.Equal(t, tt.wantCreds, in.Credentials)
		})
	}
}
