package domain

import (
	"errors"
	"time"
)

var ErrInvalidMessage = errors.New("data is not a valid message")
var ErrMessageNotFound = errors.New("invalid message id")
var ErrForbidden = errors.New("access forbidden")
var ErrStore = errors.New("db error")

// Message is a posted text record. Messages are immutable once created:
// deletion removes the document entirely, there is no update path.
type Message struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	Content    string    `json:"content" bson:"content"`
	Tags       []string  `json:"tags" bson:"tags"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
	AuthorMail string    `json:"authormail" bson:"authormail"`
}
