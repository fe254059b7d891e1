package model

import (
	"errors"

	"github.com/google/uuid"
)

var ErrConversationDoesNotExist = errors.New("conversation does not exist")

type MessageSource string

const (
	MessageSourceSystem    = MessageSource("system")
	MessageSourceUser      = MessageSource("user")
	MessageSourceAssistant = MessageSource("assistant")
)

type Message struct {
	Source MessageSource
	Body   string
}

// Conversation is the per-session state the assistant reasons over: the
// bounded message window plus the product set surfaced by the most recent
// search turn and the query that produced it. Follow-up turns read
// LastProducts/LastQuery but never replace them.
type Conversation struct {
	SessionID    uuid.UUID
	Messages     []Message
	LastProducts []Product
	LastQuery    string
}
