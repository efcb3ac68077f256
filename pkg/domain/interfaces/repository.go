package interfaces

import (
	"context"

	"github.com/amora-bot/amora/pkg/domain/model"
	"github.com/amora-bot/amora/pkg/domain/types"
)

// TicketRepository defines ticket persistence. Every operation resolves to
// exactly one outcome class of the shared taxonomy in pkg/domain/types:
// malformed input fails with ErrInvalidID before any store access, absent
// entities with ErrNotFound, and store failures carry TagStorage or
// TagUnavailable.
type TicketRepository interface {
	// Get fetches a single ticket by its string id.
	Get(ctx context.Context, id string) (*model.Ticket, error)

	// ListByMember returns up to limit tickets scoped to (guild, user).
	// limit 0 yields an empty result without issuing a query. A mid-stream
	// read failure aborts the whole call; partial results are never returned.
	ListByMember(ctx context.Context, guildID, userID types.Snowflake, limit int) ([]*model.Ticket, error)

	// Create inserts the entity built from data and returns it, including the
	// server-assigned creation timestamp.
	Create(ctx context.Context, data model.CreateTicketData) (*model.Ticket, error)

	// Delete removes a single ticket by id. Removing nothing is ErrNotFound.
	Delete(ctx context.Context, id string) error

	// DeleteByMember removes all tickets scoped to (guild, user) and returns
	// the number removed. Zero matches is a normal empty result.
	DeleteByMember(ctx context.Context, guildID, userID types.Snowflake) (int64, error)
}

// Repository is the root persistence handle
type Repository interface {
	Ticket() TicketRepository
	Close() error
}
