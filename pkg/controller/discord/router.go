package discord

import (
	"context"
	"strings"

	"github.com/amora-bot/amora/pkg/utils/async"
	"github.com/amora-bot/amora/pkg/utils/logging"
	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
)

// Responder is the slice of the gateway session the handlers actually use.
// *discordgo.Session satisfies it; tests substitute a recorder.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// CommandHandler answers one slash command.
type CommandHandler interface {
	// Spec describes the command for registration with the platform.
	Spec() *discordgo.ApplicationCommand

	HandleCommand(ctx context.Context, rsp Responder, ic *discordgo.InteractionCreate) error
}

// ComponentHandler resolves follow-up control clicks. AcceptsComponent
// decides on the raw custom id before any work happens.
type ComponentHandler interface {
	AcceptsComponent(customID string) bool
	HandleComponent(ctx context.Context, rsp Responder, ic *discordgo.InteractionCreate) error
}

// Router owns the handler lookup tables. Handlers are constructed with their
// dependencies at startup and registered here; there is no global
// registration.
type Router struct {
	commands   map[string]CommandHandler
	components []ComponentHandler
}

func NewRouter() *Router {
	return &Router{
		commands: make(map[string]CommandHandler),
	}
}

// Register adds a command handler. Handlers that also resolve components are
// added to the component table as well.
func (r *Router) Register(h CommandHandler) {
	r.commands[h.Spec().Name] = h

	if ch, ok := h.(ComponentHandler); ok {
		r.components = append(r.components, ch)
	}
}

// Bind attaches the router to a gateway session
func (r *Router) Bind(session *discordgo.Session) {
	session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		r.Dispatch(context.Background(), s, ic)
	})
}

// SyncCommands registers every command spec with the platform. An empty
// guildID registers globally.
func (r *Router) SyncCommands(session *discordgo.Session, appID, guildID string) error {
	for name, h := range r.commands {
		if _, err := session.ApplicationCommandCreate(appID, guildID, h.Spec()); err != nil {
			return goerr.Wrap(err, "failed to register command", goerr.V("command", name))
		}
	}
	return nil
}

// Dispatch routes one interaction to its handler. Each interaction is an
// independent unit of work with no ordering guarantee relative to others.
func (r *Router) Dispatch(ctx context.Context, rsp Responder, ic *discordgo.InteractionCreate) {
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		name := ic.ApplicationCommandData().Name
		h, ok := r.commands[name]
		if !ok {
			logging.From(ctx).Warn("unknown command", "command", name)
			return
		}

		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.HandleCommand(ctx, rsp, ic)
		})

	case discordgo.InteractionMessageComponent:
		customID := ic.MessageComponentData().CustomID
		for _, h := range r.components {
			if !h.AcceptsComponent(customID) {
				continue
			}

			handler := h
			async.Dispatch(ctx, func(ctx context.Context) error {
				return handler.HandleComponent(ctx, rsp, ic)
			})
			return
		}

		logging.From(ctx).Warn("unknown component", "custom_id", customID)
	}
}

// Custom ids carry "<action>:<correlationID>" so a click can be routed and
// resolved without any other state.

// BuildCustomID joins an action name and a correlation id
func BuildCustomID(action, id string) string {
	return action + ":" + id
}

// ParseCustomID splits a custom id into action and correlation id
func ParseCustomID(customID string) (action, id string, err error) {
	action, id, ok := strings.Cut(customID, ":")
	if !ok || action == "" || id == "" {
		return "", "", goerr.New("invalid custom id", goerr.V("custom_id", customID))
	}
	return action, id, nil
}
