package bot

import (
	"bluebgg/internal/bggapi"
	"errors"
	"fmt"
)

func help(ctx *Context) (Response, error) {

	name := ctx.Args.String(OPTION_COMMAND)
	if name == "" {
		return HelpMessage(ctx.Commands.All()), nil
	}

	command, ok := ctx.Commands.Find(name)
	if !ok {
		ctx.Logger.Debug().Msg(fmt.Sprintf("No help for unknown command %s", name))
		return HelpCommandNotFound(name), nil
	}
	return HelpCommandMessage(command), nil
}

// TODO: look the game up once the thing endpoint is supported by bggapi
func gameInfo(ctx *Context) (Response, error) {

	gameId := bggapi.GameId(ctx.Args.Int(OPTION_GAME_ID))
	return GameInfoNotImplemented(gameId), nil
}

func top10(ctx *Context) (Response, error) {

	username := bggapi.Username(ctx.Args.String(OPTION_BGG_USER))

	// Expansions are board games too for BGG, but don't belong in a ranking of games
	params := bggapi.NewCollectionQueryParams().
		ItemType(bggapi.BoardGame).
		ExcludeItemType(bggapi.BoardGameExpansion)

	collection, err := ctx.Data.Collections.GetCollectionBrief(ctx, username, params)
	var maxRetryError *bggapi.MaxRetryError
	switch {
	case errors.Is(err, bggapi.ErrUnknownUsername):
		ctx.Logger.Info().Msg(fmt.Sprintf("User %s not found in BGG", username))
		return UserNotFound(username), nil
	case errors.As(err, &maxRetryError):
		ctx.Logger.Warn().Err(err).Msg(fmt.Sprintf("Collection of user %s not ready", username))
		return DataNotReady(username), nil
	case err != nil:
		ctx.Logger.Error().Err(err).Msg(fmt.Sprintf("Could not get collection of user %s", username))
		return UnexpectedCollectionError(username), nil
	}

	games := Take(SortByUserRatingDesc(collection.Items), TOP_GAMES)
	ctx.Logger.Debug().Msg(fmt.Sprintf("Sending %d of %d games of user %s", len(games), len(collection.Items), username))
	return TopGames(username, games), nil
}
