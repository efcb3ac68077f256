package discord_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amora-bot/amora/pkg/controller/discord"
	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/gt"
)

// recorder captures everything the handlers send back to the platform.
type recorder struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
	followups []*discordgo.WebhookParams
}

func (r *recorder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, resp)
	return nil
}

func (r *recorder) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.followups = append(r.followups, data)
	return &discordgo.Message{}, nil
}

func (r *recorder) lastResponse(t *testing.T) *discordgo.InteractionResponse {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.responses) == 0 {
		t.Fatal("no interaction response recorded")
	}
	return r.responses[len(r.responses)-1]
}

type fakeCommand struct {
	name    string
	invoked chan *discordgo.InteractionCreate
}

func newFakeCommand(name string) *fakeCommand {
	return &fakeCommand{
		name:    name,
		invoked: make(chan *discordgo.InteractionCreate, 1),
	}
}

func (f *fakeCommand) Spec() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: f.name}
}

func (f *fakeCommand) HandleCommand(_ context.Context, _ discord.Responder, ic *discordgo.InteractionCreate) error {
	f.invoked <- ic
	return nil
}

func waitInvoked(t *testing.T, ch chan *discordgo.InteractionCreate) *discordgo.InteractionCreate {
	t.Helper()
	select {
	case ic := <-ch:
		return ic
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
		return nil
	}
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: name},
		},
	}
}

func TestRouterDispatchCommand(t *testing.T) {
	router := discord.NewRouter()
	kiss := newFakeCommand("kiss")
	ticket := newFakeCommand("ticket")
	router.Register(kiss)
	router.Register(ticket)

	router.Dispatch(context.Background(), &recorder{}, commandInteraction("ticket"))

	got := waitInvoked(t, ticket.invoked)
	gt.Value(t, got.ApplicationCommandData().Name).Equal("ticket")

	select {
	case <-kiss.invoked:
		t.Fatal("kiss handler invoked for ticket command")
	default:
	}
}

func TestRouterUnknownCommand(t *testing.T) {
	router := discord.NewRouter()
	kiss := newFakeCommand("kiss")
	router.Register(kiss)

	// Must not panic or invoke anything.
	router.Dispatch(context.Background(), &recorder{}, commandInteraction("unknown"))

	select {
	case <-kiss.invoked:
		t.Fatal("handler invoked for unknown command")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCustomID(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		customID := discord.BuildCustomID("kiss_accept", "abc123")
		gt.Value(t, customID).Equal("kiss_accept:abc123")

		action, id, err := discord.ParseCustomID(customID)
		gt.NoError(t, err)
		gt.Value(t, action).Equal("kiss_accept")
		gt.Value(t, id).Equal("abc123")
	})

	t.Run("id may contain separators", func(t *testing.T) {
		action, id, err := discord.ParseCustomID("act:a:b")
		gt.NoError(t, err)
		gt.Value(t, action).Equal("act")
		gt.Value(t, id).Equal("a:b")
	})

	t.Run("malformed", func(t *testing.T) {
		for _, raw := range []string{"", "noseparator", ":id", "action:"} {
			_, _, err := discord.ParseCustomID(raw)
			gt.Error(t, err)
		}
	})
}
