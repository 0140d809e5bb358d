package bot

import (
	"bluebgg/internal/common"
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Bot struct {
	session       Session
	applicationId string // Found on connection if empty
	guildId       string // Commands are registered globally if empty
	data          Data
	commands      Commands
	connected     atomic.Bool
	registered    atomic.Bool
}

func CreateBot(token string, applicationId string, guildId string, collections CollectionFetcher) (*Bot, error) {

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("could not create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsMessageContent
	session.LogLevel = discordgoLogLevel(zerolog.GlobalLevel())
	RouteDiscordgoLogs()

	return newBot(session, applicationId, guildId, collections), nil
}

func newBot(session Session, applicationId string, guildId string, collections CollectionFetcher) *Bot {
	return &Bot{
		session:       session,
		applicationId: applicationId,
		guildId:       guildId,
		data:          Data{Collections: collections},
		commands:      DefaultCommands(),
	}
}

// Connect to discord, register the commands and serve them until the
// context is done
func (bot *Bot) Run(ctx context.Context) error {

	bot.session.AddHandler(func(s *discordgo.Session, event *discordgo.Event) {
		log.Debug().Str("type", event.Type).Msg("Received event")
	})
	bot.session.AddHandler(func(s *discordgo.Session, ready *discordgo.Ready) {
		log.Info().Msg(fmt.Sprintf("Logged in as %s", ready.User.String()))
		bot.connected.Store(true)
	})
	bot.session.AddHandler(func(s *discordgo.Session, connect *discordgo.Connect) {
		log.Info().Msg("Connected to discord")
		bot.connected.Store(true)
	})
	bot.session.AddHandler(func(s *discordgo.Session, disconnect *discordgo.Disconnect) {
		log.Warn().Msg("Disconnected from discord")
		bot.connected.Store(false)
	})
	bot.session.AddHandler(func(s *discordgo.Session, interaction *discordgo.InteractionCreate) {
		bot.handleInteraction(ctx, interaction.Interaction)
	})

	if err := bot.session.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer func() {
		bot.connected.Store(false)
		bot.registered.Store(false)
		if err := bot.session.Close(); err != nil {
			log.Error().Err(err).Msg("Could not close discord session")
		}
	}()

	if err := bot.registerCommands(); err != nil {
		return err
	}

	log.Info().Msg("Bot running")
	<-ctx.Done()
	log.Info().Msg("Bot stopping")
	return nil
}

// Whether the bot is connected to discord and its commands are registered
func (bot *Bot) Ready() bool {
	return bot.connected.Load() && bot.registered.Load()
}

// Replace whatever commands discord had for this application with ours
func (bot *Bot) registerCommands() error {

	if bot.applicationId == "" {
		user, err := bot.session.User("@me")
		if err != nil {
			return fmt.Errorf("could not find the application id: %w", err)
		}
		bot.applicationId = user.ID
	}

	definitions := bot.commands.Definitions()
	created, err := bot.session.ApplicationCommandBulkOverwrite(bot.applicationId, bot.guildId, definitions)
	if err != nil {
		return fmt.Errorf("could not register commands: %w", err)
	}
	if len(created) != len(definitions) {
		return fmt.Errorf("registered %d commands out of %d", len(created), len(definitions))
	}
	for _, command := range created {
		log.Info().Msg(fmt.Sprintf("Registered command %s", command.Name))
	}
	bot.registered.Store(true)
	return nil
}

func (bot *Bot) handleInteraction(ctx context.Context, interaction *discordgo.Interaction) {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		bot.execute(ctx, interaction)
	case discordgo.InteractionApplicationCommandAutocomplete:
		bot.autocomplete(interaction)
	default:
		log.Debug().Stringer("type", interaction.Type).Msg("Ignoring interaction")
	}
}

func (bot *Bot) execute(ctx context.Context, interaction *discordgo.Interaction) {

	data := interaction.ApplicationCommandData()
	logger := log.With().
		Str("command", data.Name).
		Str("request_id", uuid.New().String()).
		Str("user", userName(interaction)).
		Logger()
	replier := newInteractionReplier(bot.session, interaction)

	// One broken command does not bring the bot down
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Msg(fmt.Sprintf("Panic executing command %s: %v", data.Name, r))
			send(logger, replier, UnexpectedError(data.Name))
		}
	}()

	parseResult := Parse(bot.commands, data)
	if parseResult.parseid != PARSEID_OK {
		logger.Info().Msg(fmt.Sprintf("Wrong input for command %s. Reason: %s", data.Name, parseResult.errorMessage))
		send(logger, replier, InputNotValid(parseResult.errorMessage))
		return
	}
	command := parseResult.command

	if command.Deferred {
		if err := replier.Defer(); err != nil {
			logger.Error().Err(err).Msg("Could not defer the reply")
			return
		}
	}

	logger.Info().Msg(fmt.Sprintf("Executing command %s", data.Name))
	stopwatch := common.StartStopwatch()
	response, err := command.Handler(&Context{
		Context:  ctx,
		Data:     &bot.data,
		Commands: bot.commands,
		Command:  command,
		Args:     parseResult.arguments,
		Logger:   logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Command %s failed", data.Name))
		response = UnexpectedError(data.Name)
	}
	send(logger, replier, response)
	logger.Info().Dur("elapsed", stopwatch.Elapsed()).Msg(fmt.Sprintf("Executed command %s", data.Name))
}

func (bot *Bot) autocomplete(interaction *discordgo.Interaction) {

	data := interaction.ApplicationCommandData()
	prefix := ""
	for _, option := range data.Options {
		if option.Focused {
			prefix, _ = option.Value.(string)
		}
	}

	names := bot.commands.Suggest(prefix)
	log.Debug().Int("suggestions", len(names)).Str("prefix", prefix).Msg("Suggesting commands")
	if err := newInteractionReplier(bot.session, interaction).Suggest(names); err != nil {
		log.Error().Err(err).Msg("Could not send suggestions")
	}
}

func send(logger zerolog.Logger, replier Replier, response Response) {
	if err := response.Send(replier); err != nil {
		logger.Error().Err(err).Msg("Could not send response")
	}
}

// Name of whoever triggered the interaction, in a guild or a direct message
func userName(interaction *discordgo.Interaction) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.Username
	}
	if interaction.User != nil {
		return interaction.User.Username
	}
	return ""
}
