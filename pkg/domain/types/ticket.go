package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// TicketID is a UUID-based identifier for Ticket
type TicketID string

// NewTicketID generates a new UUID v4 TicketID
func NewTicketID() TicketID {
	return TicketID(uuid.New().String())
}

// ParseTicketID validates a caller-supplied id string. It fails with
// ErrInvalidID before any store access when the id is not a well-formed UUID.
func ParseTicketID(s string) (TicketID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", goerr.Wrap(ErrInvalidID, "invalid ticket ID", goerr.V("id", s))
	}
	return TicketID(s), nil
}

// String returns the string representation of the ticket ID
func (x TicketID) String() string {
	return string(x)
}
