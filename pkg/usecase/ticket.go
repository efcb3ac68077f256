package usecase

import (
	"context"

	"github.com/amora-bot/amora/pkg/domain/interfaces"
	"github.com/amora-bot/amora/pkg/domain/model"
	"github.com/amora-bot/amora/pkg/domain/types"
)

// TicketUseCase exposes ticket operations to the command surface. The
// repository already enforces the error taxonomy; this layer only scopes the
// calls and applies the listing bound.
type TicketUseCase struct {
	repo interfaces.TicketRepository
}

func NewTicketUseCase(repo interfaces.TicketRepository) *TicketUseCase {
	return &TicketUseCase{repo: repo}
}

// Open creates a ticket owned by userID in guildID, attached to channelID
func (uc *TicketUseCase) Open(ctx context.Context, channelID, userID, guildID types.Snowflake) (*model.Ticket, error) {
	return uc.repo.Create(ctx, model.NewCreateTicketData(channelID, userID, guildID))
}

// Get fetches a ticket by its string id
func (uc *TicketUseCase) Get(ctx context.Context, id string) (*model.Ticket, error) {
	return uc.repo.Get(ctx, id)
}

// ListByMember lists a member's tickets up to the default bound
func (uc *TicketUseCase) ListByMember(ctx context.Context, guildID, userID types.Snowflake) ([]*model.Ticket, error) {
	return uc.repo.ListByMember(ctx, guildID, userID, DefaultTicketListLimit)
}

// Close removes a single ticket by id
func (uc *TicketUseCase) Close(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// CloseAll removes every ticket of a member and returns how many were removed
func (uc *TicketUseCase) CloseAll(ctx context.Context, guildID, userID types.Snowflake) (int64, error) {
	return uc.repo.DeleteByMember(ctx, guildID, userID)
}
