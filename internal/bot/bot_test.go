package bot

import (
	"bluebgg/internal/bggapi"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	mutex          sync.Mutex
	openErr        error
	overwriteErr   error
	createdLimit   int // Commands acknowledged by the overwrite, all if 0
	handlers       []interface{}
	opened, closed bool
	appId, guildId string
	registered     []*discordgo.ApplicationCommand
	responses      []*discordgo.InteractionResponse
	edits          []*discordgo.WebhookEdit
}

func (s *fakeSession) Open() error {
	s.opened = true
	return s.openErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSession) AddHandler(handler interface{}) func() {
	s.handlers = append(s.handlers, handler)
	return func() {}
}

func (s *fakeSession) User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error) {
	if userID != "@me" {
		return nil, errors.New("unknown user")
	}
	return &discordgo.User{ID: "me-id", Username: "bluebgg"}, nil
}

func (s *fakeSession) ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	if s.overwriteErr != nil {
		return nil, s.overwriteErr
	}
	s.appId = appID
	s.guildId = guildID
	s.registered = commands
	if s.createdLimit > 0 {
		return commands[:s.createdLimit], nil
	}
	return commands, nil
}

func (s *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.responses = append(s.responses, resp)
	return nil
}

func (s *fakeSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.edits = append(s.edits, newresp)
	return &discordgo.Message{}, nil
}

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func commandInteraction(data discordgo.ApplicationCommandInteractionData) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:     "interaction",
		Type:   discordgo.InteractionApplicationCommand,
		Data:   data,
		Member: &discordgo.Member{User: &discordgo.User{Username: "carol"}},
	}
}

func TestRunRegistersCommands(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "guild", &fakeFetcher{})

	err := bot.Run(cancelledContext())

	require.NoError(t, err)
	assert.True(t, session.opened)
	assert.True(t, session.closed)
	assert.Len(t, session.handlers, 5)
	assert.Equal(t, "app", session.appId)
	assert.Equal(t, "guild", session.guildId)
	require.Len(t, session.registered, 3)
	assert.Equal(t, COMMAND_HELP, session.registered[0].Name)
	assert.Equal(t, COMMAND_GAME_INFO, session.registered[1].Name)
	assert.Equal(t, COMMAND_TOP10, session.registered[2].Name)
	assert.False(t, bot.Ready())
}

func TestRunFindsApplicationId(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "", "", &fakeFetcher{})

	require.NoError(t, bot.Run(cancelledContext()))

	assert.Equal(t, "me-id", session.appId)
	assert.Empty(t, session.guildId)
}

func TestRunFailsWhenRegistrationFails(t *testing.T) {
	session := &fakeSession{overwriteErr: errors.New("forbidden")}
	bot := newBot(session, "app", "", &fakeFetcher{})

	err := bot.Run(context.Background())

	assert.ErrorContains(t, err, "forbidden")
	assert.True(t, session.closed)
}

func TestRunFailsWhenCommandsAreMissing(t *testing.T) {
	session := &fakeSession{createdLimit: 2}
	bot := newBot(session, "app", "", &fakeFetcher{})

	err := bot.Run(context.Background())

	assert.ErrorContains(t, err, "registered 2 commands out of 3")
}

func TestRunFailsWhenSessionDoesNotOpen(t *testing.T) {
	session := &fakeSession{openErr: errors.New("bad token")}
	bot := newBot(session, "app", "", &fakeFetcher{})

	err := bot.Run(context.Background())

	assert.ErrorContains(t, err, "bad token")
	assert.Nil(t, session.registered)
}

func TestReadyOnlyAfterRegistration(t *testing.T) {
	session := &fakeSession{overwriteErr: errors.New("forbidden")}
	bot := newBot(session, "app", "", &fakeFetcher{})
	bot.connected.Store(true)

	assert.False(t, bot.Ready())
	require.Error(t, bot.registerCommands())
	assert.False(t, bot.Ready())

	session.overwriteErr = nil
	require.NoError(t, bot.registerCommands())
	assert.True(t, bot.Ready())

	bot.connected.Store(false)
	assert.False(t, bot.Ready())
}

func TestEventsAreLoggedWithType(t *testing.T) {
	previousLogger, previousLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previousLogger
		zerolog.SetGlobalLevel(previousLevel)
	})
	out := &bytes.Buffer{}
	log.Logger = zerolog.New(out)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{})
	require.NoError(t, bot.Run(cancelledContext()))
	out.Reset()

	var onEvent func(*discordgo.Session, *discordgo.Event)
	for _, handler := range session.handlers {
		if h, ok := handler.(func(*discordgo.Session, *discordgo.Event)); ok {
			onEvent = h
		}
	}
	require.NotNil(t, onEvent)
	onEvent(nil, &discordgo.Event{Type: "GUILD_CREATE"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "Received event", line["message"])
	assert.Equal(t, "GUILD_CREATE", line["type"])
}

func TestExecuteHelp(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{})

	bot.handleInteraction(context.Background(), commandInteraction(commandData(COMMAND_HELP)))

	require.Len(t, session.responses, 1)
	response := session.responses[0]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, response.Type)
	assert.Contains(t, response.Data.Content, "Commands:")
	assert.Equal(t, discordgo.MessageFlagsEphemeral, response.Data.Flags)
	assert.Empty(t, session.edits)
}

func TestExecuteGameInfo(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{})

	bot.handleInteraction(context.Background(), commandInteraction(
		commandData(COMMAND_GAME_INFO, option(OPTION_GAME_ID, discordgo.ApplicationCommandOptionInteger, float64(13)))))

	require.Len(t, session.responses, 1)
	embeds := session.responses[0].Data.Embeds
	require.Len(t, embeds, 1)
	assert.Equal(t, "Getting game 13...Not yet implemented", embeds[0].Description)
}

func TestExecuteTop10IsDeferred(t *testing.T) {
	session := &fakeSession{}
	fetcher := &fakeFetcher{collection: bggapi.Collection{
		TotalItems: 1,
		Items:      []bggapi.CollectionItemBrief{game(13, "Catan", bggapi.NewRating(9))},
	}}
	bot := newBot(session, "app", "", fetcher)

	bot.handleInteraction(context.Background(), commandInteraction(
		commandData(COMMAND_TOP10, option(OPTION_BGG_USER, discordgo.ApplicationCommandOptionString, "alice"))))

	require.Len(t, session.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, session.responses[0].Type)
	require.Len(t, session.edits, 1)
	edit := session.edits[0]
	assert.Nil(t, edit.Content)
	require.NotNil(t, edit.Embeds)
	require.Len(t, *edit.Embeds, 1)
	assert.Equal(t, "alice's top 10", (*edit.Embeds)[0].Author.Name)
	assert.Equal(t, "- [Catan](https://boardgamegeek.com/boardgame/13) - (9)\n", (*edit.Embeds)[0].Description)
}

func TestExecuteTop10EmptyCollection(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{collection: bggapi.Collection{}})

	bot.handleInteraction(context.Background(), commandInteraction(
		commandData(COMMAND_TOP10, option(OPTION_BGG_USER, discordgo.ApplicationCommandOptionString, "newcomer"))))

	require.Len(t, session.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, session.responses[0].Type)
	require.Len(t, session.edits, 1)
	edit := session.edits[0]
	assert.Nil(t, edit.Content)
	require.NotNil(t, edit.Embeds)
	require.Len(t, *edit.Embeds, 1)
	embed := (*edit.Embeds)[0]
	assert.Equal(t, "newcomer's top 10", embed.Author.Name)
	assert.Empty(t, embed.Description)
}

func TestExecuteTop10UnknownUser(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{err: bggapi.ErrUnknownUsername})

	bot.handleInteraction(context.Background(), commandInteraction(
		commandData(COMMAND_TOP10, option(OPTION_BGG_USER, discordgo.ApplicationCommandOptionString, "nobody"))))

	require.Len(t, session.edits, 1)
	require.NotNil(t, session.edits[0].Content)
	assert.Equal(t, "User nobody not found", *session.edits[0].Content)
	assert.Nil(t, session.edits[0].Embeds)
}

func TestExecuteRecoversFromPanic(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{panics: true})

	assert.NotPanics(t, func() {
		bot.handleInteraction(context.Background(), commandInteraction(
			commandData(COMMAND_TOP10, option(OPTION_BGG_USER, discordgo.ApplicationCommandOptionString, "alice"))))
	})

	require.Len(t, session.edits, 1)
	assert.Equal(t, "Sorry, something went wrong running `/top10`", *session.edits[0].Content)
}

func TestExecuteInvalidInput(t *testing.T) {
	session := &fakeSession{}
	fetcher := &fakeFetcher{}
	bot := newBot(session, "app", "", fetcher)

	bot.handleInteraction(context.Background(), commandInteraction(commandData(COMMAND_TOP10)))

	require.Len(t, session.responses, 1)
	response := session.responses[0]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, response.Type)
	assert.Equal(t, "Input not valid: \n> Command `top10` requires an argument `bgg_user`", response.Data.Content)
	assert.Equal(t, 0, fetcher.calls)
}

func TestExecuteUnknownCommand(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{})

	bot.handleInteraction(context.Background(), commandInteraction(commandData("rank")))

	require.Len(t, session.responses, 1)
	assert.Equal(t, "Input not valid: \n> Command `rank` not recognised", session.responses[0].Data.Content)
}

func TestExecuteHandlerError(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{})
	bot.commands = NewCommands(&Command{
		Definition: &discordgo.ApplicationCommand{Name: "broken"},
		Handler: func(ctx *Context) (Response, error) {
			return nil, errors.New("broken")
		},
	})

	bot.handleInteraction(context.Background(), commandInteraction(commandData("broken")))

	require.Len(t, session.responses, 1)
	assert.Equal(t, "Sorry, something went wrong running `/broken`", session.responses[0].Data.Content)
}

func TestAutocomplete(t *testing.T) {
	session := &fakeSession{}
	bot := newBot(session, "app", "", &fakeFetcher{})
	focused := option(OPTION_COMMAND, discordgo.ApplicationCommandOptionString, "t")
	focused.Focused = true
	interaction := commandInteraction(commandData(COMMAND_HELP, focused))
	interaction.Type = discordgo.InteractionApplicationCommandAutocomplete

	bot.handleInteraction(context.Background(), interaction)

	require.Len(t, session.responses, 1)
	response := session.responses[0]
	assert.Equal(t, discordgo.InteractionApplicationCommandAutocompleteResult, response.Type)
	require.Len(t, response.Data.Choices, 1)
	assert.Equal(t, "top10", response.Data.Choices[0].Name)
	assert.Equal(t, "top10", response.Data.Choices[0].Value)
}

func TestUserName(t *testing.T) {
	assert.Equal(t, "carol", userName(commandInteraction(commandData(COMMAND_HELP))))
	assert.Equal(t, "dave", userName(&discordgo.Interaction{User: &discordgo.User{Username: "dave"}}))
	assert.Empty(t, userName(&discordgo.Interaction{}))
}

func TestDiscordgoLogLevel(t *testing.T) {
	assert.Equal(t, discordgo.LogDebug, discordgoLogLevel(zerolog.TraceLevel))
	assert.Equal(t, discordgo.LogDebug, discordgoLogLevel(zerolog.DebugLevel))
	assert.Equal(t, discordgo.LogInformational, discordgoLogLevel(zerolog.InfoLevel))
	assert.Equal(t, discordgo.LogWarning, discordgoLogLevel(zerolog.WarnLevel))
	assert.Equal(t, discordgo.LogError, discordgoLogLevel(zerolog.ErrorLevel))
}
