package memory

import (
	"github.com/amora-bot/amora/pkg/domain/interfaces"
)

// Client is an in-memory Repository for development and tests. It mirrors the
// Firestore backend's semantics exactly, including the error taxonomy.
type Client struct {
	ticket *ticketRepository
}

var _ interfaces.Repository = &Client{}

func New() *Client {
	return &Client{
		ticket: newTicketRepository(),
	}
}

func (c *Client) Ticket() interfaces.TicketRepository {
	return c.ticket
}

func (c *Client) Close() error {
	return nil
}
