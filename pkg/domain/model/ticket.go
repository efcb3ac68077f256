package model

import (
	"time"

	"github.com/amora-bot/amora/pkg/domain/types"
)

// Ticket is a persisted support ticket scoped to a channel, an owner and a
// guild. Snowflake identifiers are stored as signed 64-bit integers by bit
// pattern; see types.Snowflake.
type Ticket struct {
	ID        types.TicketID `firestore:"id"`
	CreatedAt time.Time      `firestore:"created_at"`
	ChannelID int64          `firestore:"channel_id"`
	UserID    int64          `firestore:"user_id"`
	GuildID   int64          `firestore:"guild_id"`
}

// Channel returns the channel snowflake
func (t *Ticket) Channel() types.Snowflake {
	return types.SnowflakeFromInt64(t.ChannelID)
}

// User returns the owner snowflake
func (t *Ticket) User() types.Snowflake {
	return types.SnowflakeFromInt64(t.UserID)
}

// Guild returns the guild snowflake
func (t *Ticket) Guild() types.Snowflake {
	return types.SnowflakeFromInt64(t.GuildID)
}

// CreateTicketData is the creation intent for a ticket. The id is
// pre-allocated by the caller so the persisted entity is fully known before
// the insert.
type CreateTicketData struct {
	ID        types.TicketID
	ChannelID types.Snowflake
	UserID    types.Snowflake
	GuildID   types.Snowflake
}

// NewCreateTicketData builds a creation intent with a fresh ticket id
func NewCreateTicketData(channelID, userID, guildID types.Snowflake) CreateTicketData {
	return CreateTicketData{
		ID:        types.NewTicketID(),
		ChannelID: channelID,
		UserID:    userID,
		GuildID:   guildID,
	}
}

// NewTicket constructs the full entity from a creation intent. CreatedAt is
// assigned here, at insert time, and is immutable thereafter.
func NewTicket(data CreateTicketData) *Ticket {
	return &Ticket{
		ID:        data.ID,
		CreatedAt: time.Now().UTC(),
		ChannelID: data.ChannelID.Int64(),
		UserID:    data.UserID.Int64(),
		GuildID:   data.GuildID.Int64(),
	}
}
