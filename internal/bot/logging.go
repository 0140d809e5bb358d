package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Send the logs of discordgo through zerolog instead of the standard logger
func RouteDiscordgoLogs() {
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		var event *zerolog.Event
		switch msgL {
		case discordgo.LogError:
			event = log.Error()
		case discordgo.LogWarning:
			event = log.Warn()
		case discordgo.LogInformational:
			event = log.Info()
		default:
			event = log.Debug()
		}
		event.Str("component", "discordgo").Msg(fmt.Sprintf(format, a...))
	}
}

// discordgo only builds the messages of the levels it is asked for
func discordgoLogLevel(level zerolog.Level) int {
	switch {
	case level <= zerolog.DebugLevel:
		return discordgo.LogDebug
	case level == zerolog.InfoLevel:
		return discordgo.LogInformational
	case level == zerolog.WarnLevel:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}
