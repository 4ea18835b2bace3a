package domain

import (
	"context"
	"encoding/json"
	"time"
)

// TurnType classifies an inbound activity.
type TurnType string

const (
	// TurnMessage is a regular message turn carrying user input.
	TurnMessage TurnType = "message"
	// TurnJoin is emitted when a participant enters the conversation.
	TurnJoin TurnType = "join"
)

// InboundTurn is one inbound activity received from a channel.
type InboundTurn struct {
	ID             string          `json:"id"`
	ChannelID      string          `json:"channelId"`
	ConversationID string          `json:"conversationId"`
	From           string          `json:"from,omitempty"`
	Type           TurnType        `json:"type"`
	Text           string          `json:"text,omitempty"`
	Value          json.RawMessage `json:"value,omitempty"` // structured payload from rich clients
	Timestamp      time.Time       `json:"timestamp"`
}

// ContentKey selects the prompt content for a reply. The renderer resolves a
// key (plus the session category for MCQ prompts) into a card.
type ContentKey string

const (
	KeyWelcome ContentKey = "welcome"
	KeyLogin   ContentKey = "login"
	KeyHR1     ContentKey = "HR1"
	KeyHR2     ContentKey = "HR2"
	KeyT1      ContentKey = "T1"
	KeyT2      ContentKey = "T2"
	KeyThanks  ContentKey = "thanks"
)

// Card is a rendered prompt attachment delivered alongside a reply.
type Card struct {
	ContentType string          `json:"contentType"`
	Content     json.RawMessage `json:"content"`
}

// Reply is one outbound message produced by the orchestrator: an optional
// card selected by content key, an optional plain-text line, and an optional
// spoken (SSML) line.
type Reply struct {
	ContentKey ContentKey `json:"contentKey,omitempty"`
	Card       *Card      `json:"card,omitempty"`
	Text       string     `json:"text,omitempty"`
	Speak      string     `json:"speak,omitempty"`
}

// OutboundReply is a reply addressed for delivery through a channel.
type OutboundReply struct {
	ChannelID      string `json:"channelId"`
	ConversationID string `json:"conversationId"`
	To             string `json:"to,omitempty"`
	Reply          Reply  `json:"reply"`
}

// ChannelStatus reports the runtime state of a channel.
type ChannelStatus struct {
	ChannelID string `json:"channelId"`
	Connected bool   `json:"connected"`
	Running   bool   `json:"running"`
	LastError string `json:"lastError,omitempty"`
}

// Channel is the transport hosting the interview. Implementations deliver
// inbound turns to the registered handler and carry replies back out. Turns
// belonging to one conversation are delivered strictly sequentially.
type Channel interface {
	// ID returns the channel identifier (e.g. "websocket").
	ID() string

	// Start connects the channel and begins listening for turns.
	Start(ctx context.Context) error

	// Stop gracefully disconnects the channel.
	Stop(ctx context.Context) error

	// Send delivers an outbound reply through this channel.
	Send(ctx context.Context, reply OutboundReply) error

	// OnTurn registers a handler for inbound turns.
	OnTurn(handler func(turn InboundTurn))
}
