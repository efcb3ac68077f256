package config

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Discord holds CLI flags for the gateway connection
type Discord struct {
	botToken string
	appID    string
	guildID  string
}

// Flags returns CLI flags for Discord configuration
func (d *Discord) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "discord-bot-token",
			Usage:       "Discord bot token (required)",
			Category:    "Discord",
			Required:    true,
			Sources:     cli.EnvVars("AMORA_DISCORD_BOT_TOKEN"),
			Destination: &d.botToken,
		},
		&cli.StringFlag{
			Name:        "discord-app-id",
			Usage:       "Discord application ID (required, used for command registration and follow-ups)",
			Category:    "Discord",
			Required:    true,
			Sources:     cli.EnvVars("AMORA_DISCORD_APP_ID"),
			Destination: &d.appID,
		},
		&cli.StringFlag{
			Name:        "discord-guild-id",
			Usage:       "Guild to register commands in (empty registers globally)",
			Category:    "Discord",
			Sources:     cli.EnvVars("AMORA_DISCORD_GUILD_ID"),
			Destination: &d.guildID,
		},
	}
}

func (d Discord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(d.botToken)),
		slog.String("app_id", d.appID),
		slog.String("guild_id", d.guildID),
	)
}

// AppID returns the Discord application ID
func (d *Discord) AppID() string {
	return d.appID
}

// GuildID returns the guild used for command registration
func (d *Discord) GuildID() string {
	return d.guildID
}

// Configure builds the gateway session. The session is not opened; the
// caller opens and closes it.
func (d *Discord) Configure() (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + d.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create discord session")
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	return session, nil
}
