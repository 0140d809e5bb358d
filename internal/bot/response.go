package bot

import (
	"github.com/bwmarrin/discordgo"
)

type ResponseString struct {
	content   string
	ephemeral bool // only visible to the user who ran the command
}
type ResponseEmbed struct {
	discordgo.MessageEmbed
}

type Response interface {
	Send(replier Replier) error
}

func (response ResponseString) Send(replier Replier) error {
	data := &discordgo.InteractionResponseData{Content: response.content}
	if response.ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return replier.Reply(data)
}

func (response ResponseEmbed) Send(replier Replier) error {
	embed := response.MessageEmbed
	return replier.Reply(&discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{&embed}})
}
