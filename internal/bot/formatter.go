package bot

import (
	"bluebgg/internal/bggapi"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Use "light blue" color for the bot, rgb(0, 176, 255)
const color int = 0x00B0FF

const footer string = "Bot source: https://github.com/MatthewThompson/BlueBGG"

// Number of games in a ranking
const TOP_GAMES int = 10

// Embed with the fields every embed of the bot has
func BaseEmbed() discordgo.MessageEmbed {
	return discordgo.MessageEmbed{
		Color:     color,
		Footer:    &discordgo.MessageEmbedFooter{Text: footer},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func HelpMessage(commands []*Command) Response {

	width := 0
	for _, command := range commands {
		width = max(width, len(command.Definition.Name))
	}

	content := "```\nCommands:\n"
	for _, command := range commands {
		content += fmt.Sprintf("  /%-*s  %s\n", width, command.Definition.Name, command.Definition.Description)
	}
	content += "\nType /help <command> for more info on a command.\n```"
	return ResponseString{content: content, ephemeral: true}
}

func HelpCommandMessage(command *Command) Response {

	definition := command.Definition
	content := "```\n" + Usage(definition) + "\n" + definition.Description + "\n"
	if len(definition.Options) > 0 {
		content += "\n"
		for _, option := range definition.Options {
			content += fmt.Sprintf("%s: %s\n", option.Name, option.Description)
		}
	}
	content += "```"
	return ResponseString{content: content, ephemeral: true}
}

// How a command is typed, e.g. "/top10 bgg_user:<string>".
// Optional arguments go between brackets
func Usage(definition *discordgo.ApplicationCommand) string {

	words := []string{"/" + definition.Name}
	for _, option := range definition.Options {
		word := fmt.Sprintf("%s:<%s>", option.Name, typeName(option.Type))
		if !option.Required {
			word = "[" + word + "]"
		}
		words = append(words, word)
	}
	return strings.Join(words, " ")
}

func HelpCommandNotFound(name string) Response {
	return ResponseString{content: fmt.Sprintf("No such command `%s`", name), ephemeral: true}
}

func GameInfoNotImplemented(gameId bggapi.GameId) Response {

	embed := BaseEmbed()
	embed.Author = &discordgo.MessageEmbedAuthor{Name: "Some game"}
	embed.Description = fmt.Sprintf("Getting game %d...Not yet implemented", gameId)
	return ResponseEmbed{embed}
}

func TopGames(username bggapi.Username, games []bggapi.CollectionItemBrief) Response {

	lines := make([]string, 0, len(games))
	for _, game := range games {
		lines = append(lines, fmt.Sprintf("- [%s](%s) - (%s)\n", game.Name, game.Id.Url(), game.UserRating))
	}

	embed := BaseEmbed()
	embed.Author = &discordgo.MessageEmbedAuthor{
		Name: fmt.Sprintf("%s's top %d", username, TOP_GAMES),
		URL:  username.CollectionUrl(),
	}
	embed.Description = strings.Join(lines, "\n")
	return ResponseEmbed{embed}
}

func UserNotFound(username bggapi.Username) Response {
	return ResponseString{content: fmt.Sprintf("User %s not found", username)}
}

func DataNotReady(username bggapi.Username) Response {
	return ResponseString{content: fmt.Sprintf("Data for %s from BGG not yet ready, please try again shortly", username)}
}

func UnexpectedCollectionError(username bggapi.Username) Response {
	return ResponseString{content: fmt.Sprintf("Unexpected error requesting user %s collection", username)}
}

func InputNotValid(errorMessage string) Response {
	return ResponseString{content: fmt.Sprintf("Input not valid: \n> %s", errorMessage), ephemeral: true}
}

func UnexpectedError(commandName string) Response {
	return ResponseString{content: fmt.Sprintf("Sorry, something went wrong running `/%s`", commandName), ephemeral: true}
}
