package domain

import "github.com/google/uuid"

// EventType names a change pushed to live feed subscribers.
type EventType string

const (
	EventPostCreated    EventType = "POST_CREATED"
	EventPostUpdated    EventType = "POST_UPDATED"
	EventPostDeleted    EventType = "POST_DELETED"
	EventCommentCreated EventType = "COMMENT_CREATED"
	EventCommentUpdated EventType = "COMMENT_UPDATED"
	EventCommentDeleted EventType = "COMMENT_DELETED"
)

// DeletedEvent is the payload of the *_DELETED events.
type DeletedEvent struct {
	ID uuid.UUID `json:"id"`
}
