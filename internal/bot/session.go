package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// The part of a discord session the bot uses. *discordgo.Session implements it
type Session interface {
	Open() error
	Close() error
	AddHandler(handler interface{}) func()
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Sends the answers to one interaction
type Replier interface {
	Defer() error
	Reply(data *discordgo.InteractionResponseData) error
	Suggest(names []string) error
}

type interactionReplier struct {
	session     Session
	interaction *discordgo.Interaction
	deferred    bool
	replied     bool
}

func newInteractionReplier(session Session, interaction *discordgo.Interaction) *interactionReplier {
	return &interactionReplier{session: session, interaction: interaction}
}

// Acknowledge the interaction now and reply later.
// Discord shows a "thinking" state meanwhile
func (r *interactionReplier) Defer() error {
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return fmt.Errorf("could not defer interaction %s: %w", r.interaction.ID, err)
	}
	r.deferred = true
	return nil
}

func (r *interactionReplier) Reply(data *discordgo.InteractionResponseData) error {

	if r.replied {
		return fmt.Errorf("interaction %s already has a reply", r.interaction.ID)
	}

	if r.deferred {
		// The visibility was decided when deferring, flags are ignored here
		edit := &discordgo.WebhookEdit{}
		if data.Content != "" {
			edit.Content = &data.Content
		}
		if len(data.Embeds) > 0 {
			edit.Embeds = &data.Embeds
		}
		if _, err := r.session.InteractionResponseEdit(r.interaction, edit); err != nil {
			return fmt.Errorf("could not edit reply to interaction %s: %w", r.interaction.ID, err)
		}
	} else {
		err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: data,
		})
		if err != nil {
			return fmt.Errorf("could not reply to interaction %s: %w", r.interaction.ID, err)
		}
	}
	r.replied = true
	return nil
}

func (r *interactionReplier) Suggest(names []string) error {

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		return fmt.Errorf("could not send suggestions for interaction %s: %w", r.interaction.ID, err)
	}
	r.replied = true
	return nil
}
