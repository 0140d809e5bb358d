package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	COMMAND_HELP      = "help"
	COMMAND_GAME_INFO = "game_info"
	COMMAND_TOP10     = "top10"
)

const (
	OPTION_COMMAND  = "command"
	OPTION_GAME_ID  = "game_id"
	OPTION_BGG_USER = "bgg_user"
)

// Discord does not accept more autocomplete choices than this
const maxAutocompleteChoices = 25

type HandlerFunc func(ctx *Context) (Response, error)

type Command struct {
	Definition *discordgo.ApplicationCommand
	Handler    HandlerFunc
	// Deferred commands acknowledge the interaction straight away
	// and edit the acknowledgement once the handler is done
	Deferred bool
}

// Commands keeps the commands in the order they were added,
// which is also the order they are listed in the help
type Commands struct {
	list   []*Command
	byName map[string]*Command
}

func NewCommands(commands ...*Command) Commands {
	c := Commands{byName: make(map[string]*Command, len(commands))}
	for _, command := range commands {
		c.list = append(c.list, command)
		c.byName[command.Definition.Name] = command
	}
	return c
}

// The commands of the bot
func DefaultCommands() Commands {
	return NewCommands(helpCommand(), gameInfoCommand(), top10Command())
}

func (c Commands) Get(name string) (*Command, bool) {
	command, ok := c.byName[name]
	return command, ok
}

// Lenient lookup for names typed by users: "/Top10" finds top10
func (c Commands) Find(name string) (*Command, bool) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
	return c.Get(name)
}

func (c Commands) All() []*Command {
	return c.list
}

func (c Commands) Definitions() []*discordgo.ApplicationCommand {
	definitions := make([]*discordgo.ApplicationCommand, 0, len(c.list))
	for _, command := range c.list {
		definitions = append(definitions, command.Definition)
	}
	return definitions
}

// Names of the commands starting with prefix
func (c Commands) Suggest(prefix string) []string {
	prefix = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(prefix), "/"))
	names := []string{}
	for _, command := range c.list {
		if len(names) == maxAutocompleteChoices {
			break
		}
		if strings.HasPrefix(command.Definition.Name, prefix) {
			names = append(names, command.Definition.Name)
		}
	}
	return names
}

func helpCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        COMMAND_HELP,
			Type:        discordgo.ChatApplicationCommand,
			Description: "Show this help menu",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         OPTION_COMMAND,
					Description:  "Specific command to show help about",
					Required:     false,
					Autocomplete: true,
				},
			},
		},
		Handler: help,
	}
}

func gameInfoCommand() *Command {
	minGameId := 1.0
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        COMMAND_GAME_INFO,
			Type:        discordgo.ChatApplicationCommand,
			Description: "Get info for a particular game, by its ID.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        OPTION_GAME_ID,
					Description: "An ID of a game in the BGG database.",
					Required:    true,
					MinValue:    &minGameId,
				},
			},
		},
		Handler: gameInfo,
	}
}

func top10Command() *Command {
	minLength := 1
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        COMMAND_TOP10,
			Type:        discordgo.ChatApplicationCommand,
			Description: "Get the 10 games that a given user has rated highest.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        OPTION_BGG_USER,
					Description: "A board game geek's user to get the top 10 rated games for.",
					Required:    true,
					MinLength:   &minLength,
				},
			},
		},
		Handler:  top10,
		Deferred: true,
	}
}
