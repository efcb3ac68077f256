package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/usecase"
	"github.com/amora-bot/amora/pkg/utils/errutil"
	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
)

// TicketHandler exposes the /ticket command group.
type TicketHandler struct {
	uc *usecase.TicketUseCase
}

var _ CommandHandler = (*TicketHandler)(nil)

func NewTicketHandler(uc *usecase.TicketUseCase) *TicketHandler {
	return &TicketHandler{uc: uc}
}

func (h *TicketHandler) Spec() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ticket",
		Description: "Manage your support tickets",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "open",
				Description: "Open a support ticket in this channel",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List your open tickets",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "close",
				Description: "Close one of your tickets",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "id",
						Description: "The ticket id to close",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "close-all",
				Description: "Close all of your tickets",
			},
		},
	}
}

func (h *TicketHandler) HandleCommand(ctx context.Context, rsp Responder, ic *discordgo.InteractionCreate) error {
	if ic.GuildID == "" {
		return respondEphemeral(rsp, ic, "Tickets are only available inside a server.")
	}

	userID, err := interactionIssuer(ic)
	if err != nil {
		return err
	}
	guildID, err := types.ParseSnowflake(ic.GuildID)
	if err != nil {
		return err
	}

	options := ic.ApplicationCommandData().Options
	if len(options) == 0 {
		return goerr.New("ticket command without subcommand")
	}
	sub := options[0]

	switch sub.Name {
	case "open":
		channelID, err := types.ParseSnowflake(ic.ChannelID)
		if err != nil {
			return err
		}

		ticket, err := h.uc.Open(ctx, channelID, userID, guildID)
		if err != nil {
			return h.respondFailure(ctx, rsp, ic, err)
		}
		return respondEphemeral(rsp, ic, fmt.Sprintf("Ticket `%s` opened.", ticket.ID))

	case "list":
		tickets, err := h.uc.ListByMember(ctx, guildID, userID)
		if err != nil {
			return h.respondFailure(ctx, rsp, ic, err)
		}

		if len(tickets) == 0 {
			return respondEphemeral(rsp, ic, "You have no open tickets.")
		}

		lines := make([]string, 0, len(tickets))
		for _, t := range tickets {
			lines = append(lines, fmt.Sprintf("`%s` in <#%s> (%s)", t.ID, t.Channel(), t.CreatedAt.Format("2006-01-02 15:04")))
		}
		return respondEphemeral(rsp, ic, "Your tickets:\n"+strings.Join(lines, "\n"))

	case "close":
		idOpt := commandOption(sub.Options, "id")
		if idOpt == nil {
			return goerr.New("ticket close without id option")
		}

		if err := h.uc.Close(ctx, idOpt.StringValue()); err != nil {
			return h.respondFailure(ctx, rsp, ic, err)
		}
		return respondEphemeral(rsp, ic, "Ticket closed.")

	case "close-all":
		count, err := h.uc.CloseAll(ctx, guildID, userID)
		if err != nil {
			return h.respondFailure(ctx, rsp, ic, err)
		}
		return respondEphemeral(rsp, ic, fmt.Sprintf("Closed %d ticket(s).", count))

	default:
		return goerr.New("unknown ticket subcommand", goerr.V("subcommand", sub.Name))
	}
}

// respondFailure maps the error taxonomy to user-visible messages. Storage
// failures are already logged at the boundary; the user only sees a generic
// notice.
func (h *TicketHandler) respondFailure(ctx context.Context, rsp Responder, ic *discordgo.InteractionCreate, err error) error {
	var content string
	switch {
	case errors.Is(err, types.ErrInvalidID):
		content = "That is not a valid ticket id."
	case errors.Is(err, types.ErrNotFound):
		content = "That ticket does not exist."
	default:
		content = "Something went wrong, try again later."
	}

	if respErr := respondEphemeral(rsp, ic, content); respErr != nil {
		errutil.Handle(ctx, respErr, "failed to send ticket error response")
	}
	return err
}
