package memory

import (
	"context"
	"sync"

	"github.com/amora-bot/amora/pkg/domain/model"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type ticketRepository struct {
	mu      sync.RWMutex
	tickets map[types.TicketID]*model.Ticket
	order   []types.TicketID
}

func newTicketRepository() *ticketRepository {
	return &ticketRepository{
		tickets: make(map[types.TicketID]*model.Ticket),
	}
}

func copyTicket(t *model.Ticket) *model.Ticket {
	copied := *t
	return &copied
}

func (r *ticketRepository) Get(ctx context.Context, id string) (*model.Ticket, error) {
	ticketID, err := types.ParseTicketID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[ticketID]
	if !ok {
		return nil, goerr.Wrap(types.ErrNotFound, "ticket not found", goerr.V("id", id))
	}

	return copyTicket(ticket), nil
}

func (r *ticketRepository) ListByMember(ctx context.Context, guildID, userID types.Snowflake, limit int) ([]*model.Ticket, error) {
	tickets := []*model.Ticket{}
	if limit <= 0 {
		return tickets, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first, matching the indexed backend.
	for i := len(r.order) - 1; i >= 0; i-- {
		ticket, ok := r.tickets[r.order[i]]
		if !ok {
			continue
		}
		if ticket.GuildID != guildID.Int64() || ticket.UserID != userID.Int64() {
			continue
		}

		tickets = append(tickets, copyTicket(ticket))
		if len(tickets) == limit {
			break
		}
	}

	return tickets, nil
}

func (r *ticketRepository) Create(ctx context.Context, data model.CreateTicketData) (*model.Ticket, error) {
	ticket := model.NewTicket(data)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets[ticket.ID] = copyTicket(ticket)
	r.order = append(r.order, ticket.ID)

	return ticket, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	ticketID, err := types.ParseTicketID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[ticketID]; !ok {
		return goerr.Wrap(types.ErrNotFound, "ticket not found", goerr.V("id", id))
	}

	delete(r.tickets, ticketID)
	return nil
}

func (r *ticketRepository) DeleteByMember(ctx context.Context, guildID, userID types.Snowflake) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, ticket := range r.tickets {
		if ticket.GuildID == guildID.Int64() && ticket.UserID == userID.Int64() {
			delete(r.tickets, id)
			deleted++
		}
	}

	return deleted, nil
}
