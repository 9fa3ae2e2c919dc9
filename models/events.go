package models

// EventType identifies an inbound conversation event from the gateway.
type EventType string

const (
	EventStartCreate  EventType = "start_create"
	EventStartUpdate  EventType = "start_update"
	EventMoodSelected EventType = "mood_selected"
	EventNoteText     EventType = "note_text"
	EventSkipNote     EventType = "skip_note"
	EventCancel       EventType = "cancel"
)

// InboundEvent is one user action delivered by the transport gateway.
type InboundEvent struct {
	Type EventType `json:"type" binding:"required"`
	Mood string    `json:"mood,omitempty"` // mood_selected only
	Text string    `json:"text,omitempty"` // note_text only
}

// ReplyKind classifies an outbound message.
type ReplyKind string

const (
	ReplyPrompt       ReplyKind = "prompt"
	ReplyConfirmation ReplyKind = "confirmation"
	ReplyRejection    ReplyKind = "rejection"
)

// OutboundEvent is one message the core sends back through the channel.
type OutboundEvent struct {
	Kind    ReplyKind `json:"kind"`
	Text    string    `json:"text"`
	Options []string  `json:"options,omitempty"` // selectable choices, prompts only
}

// Prompt builds a prompt reply, optionally with selectable options.
func Prompt(text string, options ...string) OutboundEvent {
	return OutboundEvent{Kind: ReplyPrompt, Text: text, Options: options}
}

// Confirmation builds a confirmation reply.
func Confirmation(text string) OutboundEvent {
	return OutboundEvent{Kind: ReplyConfirmation, Text: text}
}

// Rejection builds a rejection reply.
func Rejection(text string) OutboundEvent {
	return OutboundEvent{Kind: ReplyRejection, Text: text}
}
