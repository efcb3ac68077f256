package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/usecase"
	"github.com/amora-bot/amora/pkg/utils/errutil"
	"github.com/bwmarrin/discordgo"
	"github.com/m-mizutani/goerr/v2"
)

const (
	kissActionAccept  = "kiss_accept"
	kissActionDecline = "kiss_decline"
)

// KissHandler renders the /kiss command and resolves its follow-up buttons.
type KissHandler struct {
	uc    *usecase.KissUseCase
	appID string
}

var (
	_ CommandHandler   = (*KissHandler)(nil)
	_ ComponentHandler = (*KissHandler)(nil)
)

func NewKissHandler(uc *usecase.KissUseCase, appID string) *KissHandler {
	return &KissHandler{
		uc:    uc,
		appID: appID,
	}
}

func (h *KissHandler) Spec() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "kiss",
		Description: "Show your love to another member by kissing them",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The member you want to kiss",
				Required:    true,
			},
		},
	}
}

func (h *KissHandler) HandleCommand(ctx context.Context, rsp Responder, ic *discordgo.InteractionCreate) error {
	issuerID, err := interactionIssuer(ic)
	if err != nil {
		return err
	}

	targetID := issuerID
	if opt := commandOption(ic.ApplicationCommandData().Options, "user"); opt != nil {
		targetID, err = types.ParseSnowflake(opt.UserValue(nil).ID)
		if err != nil {
			return err
		}
	}

	invite, err := h.uc.Propose(ctx, issuerID, targetID, ic.Token)
	if err != nil {
		if respErr := respondEphemeral(rsp, ic, "Something went wrong, try again later."); respErr != nil {
			errutil.Handle(ctx, respErr, "failed to send kiss error response")
		}
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Love is in the air! ❤️",
		Description: fmt.Sprintf("%s kissed %s", invite.IssuerID.Mention(), invite.TargetID.Mention()),
		Image:       &discordgo.MessageEmbedImage{URL: invite.GifURL},
	}

	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if invite.Self() {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Loving yourself is good too!"}
	} else {
		data.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Kiss back",
						Style:    discordgo.PrimaryButton,
						CustomID: BuildCustomID(kissActionAccept, invite.CorrelationID.String()),
					},
					discordgo.Button{
						Label:    "Refuse",
						Style:    discordgo.DangerButton,
						CustomID: BuildCustomID(kissActionDecline, invite.CorrelationID.String()),
					},
				},
			},
		}
	}

	return rsp.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (h *KissHandler) AcceptsComponent(customID string) bool {
	action, _, err := ParseCustomID(customID)
	if err != nil {
		return false
	}
	return action == kissActionAccept || action == kissActionDecline
}

func (h *KissHandler) HandleComponent(ctx context.Context, rsp Responder, ic *discordgo.InteractionCreate) error {
	action, rawID, err := ParseCustomID(ic.MessageComponentData().CustomID)
	if err != nil {
		return err
	}

	actorID, err := interactionIssuer(ic)
	if err != nil {
		return err
	}

	proposal, err := h.uc.Answer(ctx, types.CorrelationID(rawID), actorID)
	switch {
	case errors.Is(err, types.ErrExpired):
		return respondEphemeral(rsp, ic, "This kiss can no longer be answered.")
	case errors.Is(err, usecase.ErrNotYourKiss):
		return respondEphemeral(rsp, ic, "This kiss is not addressed to you.")
	case err != nil:
		if respErr := respondEphemeral(rsp, ic, "Something went wrong, try again later."); respErr != nil {
			errutil.Handle(ctx, respErr, "failed to send kiss error response")
		}
		return err
	}

	// Remove the buttons so the original message shows the proposal is
	// settled. The record is already consumed: a second click can only see
	// "no longer available".
	if err := rsp.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		errutil.Handle(ctx, err, "failed to settle kiss message")
	}

	content := fmt.Sprintf("%s kissed %s back! 💋", proposal.TargetID.Mention(), proposal.IssuerID.Mention())
	if action == kissActionDecline {
		content = fmt.Sprintf("%s refused the kiss from %s. 💔", proposal.TargetID.Mention(), proposal.IssuerID.Mention())
	}

	// Follow up on the original interaction using the stored reply token.
	original := &discordgo.Interaction{
		AppID: h.appID,
		Token: proposal.ReplyToken,
	}
	if _, err := rsp.FollowupMessageCreate(original, true, &discordgo.WebhookParams{Content: content}); err != nil {
		return goerr.Wrap(err, "failed to send kiss follow-up")
	}

	return nil
}
