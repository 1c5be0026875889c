package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyTitle = errors.New("notification title cannot be empty")

type Kind string

const (
	KindBookingCreated   Kind = "BOOKING_CREATED"
	KindBookingConfirmed Kind = "BOOKING_CONFIRMED"
	KindBookingCancelled Kind = "BOOKING_CANCELLED"
)

// Notification is a best-effort artifact: booking flows create them after
// commit and never fail on notification errors.
type Notification struct {
	id        uuid.UUID
	userID    uuid.UUID
	kind      Kind
	title     string
	message   string
	read      bool
	createdAt time.Time
}

func NewNotification(userID uuid.UUID, kind Kind, title, message string) (*Notification, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	return &Notification{
		id:      uuid.New(),
		userID:  userID,
		kind:    kind,
		title:   title,
		message: message,
	}, nil
}

func ReconstructNotification(
	id, userID uuid.UUID,
	kind Kind,
	title, message string,
	read bool,
	createdAt time.Time,
) *Notification {
	return &Notification{
		id:        id,
		userID:    userID,
		kind:      kind,
		title:     title,
		message:   message,
		read:      read,
		createdAt: createdAt,
	}
}

// MarkRead is idempotent.
func (n *Notification) MarkRead() {
	n.read = true
}

func (n *Notification) ID() uuid.UUID        { return n.id }
func (n *Notification) UserID() uuid.UUID    { return n.userID }
func (n *Notification) Kind() Kind           { return n.kind }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) Read() bool           { return n.read }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
