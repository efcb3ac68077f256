package discord

import (
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
)

// interactionUser returns the acting user, whether the interaction came from
// a guild (Member) or a direct message (User).
func interactionUser(ic *discordgo.InteractionCreate) (*discordgo.User, error) {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User, nil
	}
	if ic.User != nil {
		return ic.User, nil
	}
	return nil, goerr.New("interaction carries no user")
}

// interactionIssuer parses the acting user's snowflake
func interactionIssuer(ic *discordgo.InteractionCreate) (types.Snowflake, error) {
	user, err := interactionUser(ic)
	if err != nil {
		return 0, err
	}
	return types.ParseSnowflake(user.ID)
}

// respondEphemeral sends a short message visible only to the acting user
func respondEphemeral(rsp Responder, ic *discordgo.InteractionCreate, content string) error {
	return rsp.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// commandOption finds a top-level option by name
func commandOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}
