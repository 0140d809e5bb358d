package bot

import (
	"fmt"
	"math"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const (
	PARSEID_OK                     = iota
	PARSEID_COMMAND_NOT_RECOGNISED = iota
	PARSEID_NO_INPUT               = iota
	PARSEID_OPTION_NOT_RECOGNISED  = iota
	PARSEID_WRONG_TYPE             = iota
	PARSEID_OUT_OF_RANGE           = iota
)

var errorMessages map[int]string = map[int]string{
	PARSEID_COMMAND_NOT_RECOGNISED: "Command `%s` not recognised",
	PARSEID_NO_INPUT:               "Command `%s` requires an argument `%s`",
	PARSEID_OPTION_NOT_RECOGNISED:  "Argument `%s` not recognised",
	PARSEID_WRONG_TYPE:             "Argument `%s` is not a valid %s",
	PARSEID_OUT_OF_RANGE:           "Argument `%s` is out of range",
}

type ParseResult struct {
	command      *Command
	parseid      int
	errorMessage string
	arguments    Arguments
}

// Match the invoked command and check the values received against the
// options it declares. Discord validates most of this already, but
// nothing guarantees the command definition it has is the one we run
func Parse(commands Commands, data discordgo.ApplicationCommandInteractionData) ParseResult {

	command, ok := commands.Get(data.Name)
	if !ok {
		parseid := PARSEID_COMMAND_NOT_RECOGNISED
		return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], data.Name)}
	}

	arguments := Arguments{}
	for _, option := range data.Options {
		definition := findOption(command.Definition, option.Name)
		if definition == nil {
			parseid := PARSEID_OPTION_NOT_RECOGNISED
			return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], option.Name)}
		}
		value, parseid := parseOption(definition, option)
		switch parseid {
		case PARSEID_OK:
			arguments[option.Name] = value
		case PARSEID_NO_INPUT:
			// Blank values count as missing
			log.Debug().Msg(fmt.Sprintf("Ignoring blank value for argument %s", option.Name))
		case PARSEID_WRONG_TYPE:
			return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], option.Name, typeName(definition.Type))}
		default:
			return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], option.Name)}
		}
	}

	for _, definition := range command.Definition.Options {
		if definition.Required && !arguments.Has(definition.Name) {
			parseid := PARSEID_NO_INPUT
			return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], data.Name, definition.Name)}
		}
	}

	return ParseResult{command: command, parseid: PARSEID_OK, arguments: arguments}
}

func findOption(definition *discordgo.ApplicationCommand, name string) *discordgo.ApplicationCommandOption {
	for _, option := range definition.Options {
		if option.Name == name {
			return option
		}
	}
	return nil
}

func parseOption(definition *discordgo.ApplicationCommandOption, option *discordgo.ApplicationCommandInteractionDataOption) (any, int) {

	switch definition.Type {
	case discordgo.ApplicationCommandOptionString:
		value, ok := option.Value.(string)
		if !ok {
			return nil, PARSEID_WRONG_TYPE
		}
		if strings.TrimSpace(value) == "" {
			return nil, PARSEID_NO_INPUT
		}
		return value, PARSEID_OK

	case discordgo.ApplicationCommandOptionInteger:
		// Numbers arrive as float64 after decoding the json payload
		var value int64
		switch number := option.Value.(type) {
		case float64:
			if number != math.Trunc(number) || math.IsInf(number, 0) || math.IsNaN(number) {
				return nil, PARSEID_WRONG_TYPE
			}
			value = int64(number)
		case int64:
			value = number
		case int:
			value = int64(number)
		default:
			return nil, PARSEID_WRONG_TYPE
		}
		if definition.MinValue != nil && float64(value) < *definition.MinValue {
			return nil, PARSEID_OUT_OF_RANGE
		}
		if definition.MaxValue != 0 && float64(value) > definition.MaxValue {
			return nil, PARSEID_OUT_OF_RANGE
		}
		return value, PARSEID_OK

	default:
		return option.Value, PARSEID_OK
	}
}

func typeName(optionType discordgo.ApplicationCommandOptionType) string {
	switch optionType {
	case discordgo.ApplicationCommandOptionString:
		return "string"
	case discordgo.ApplicationCommandOptionInteger:
		return "integer"
	case discordgo.ApplicationCommandOptionBoolean:
		return "boolean"
	case discordgo.ApplicationCommandOptionNumber:
		return "number"
	default:
		return "value"
	}
}
