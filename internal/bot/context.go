package bot

import (
	"bluebgg/internal/bggapi"
	"context"

	"github.com/rs/zerolog"
)

type CollectionFetcher interface {
	GetCollectionBrief(ctx context.Context, username bggapi.Username, params bggapi.CollectionQueryParams) (bggapi.Collection, error)
}

// Data is built once before the bot connects and is only read afterwards,
// by any number of commands at the same time
type Data struct {
	Collections CollectionFetcher
}

// Everything a handler gets to work with for one invocation
type Context struct {
	context.Context
	Data     *Data
	Commands Commands
	Command  *Command
	Args     Arguments
	Logger   zerolog.Logger
}

// Values of the options provided by the user, already validated
type Arguments map[string]any

func (args Arguments) Has(name string) bool {
	_, ok := args[name]
	return ok
}

func (args Arguments) String(name string) string {
	value, _ := args[name].(string)
	return value
}

func (args Arguments) Int(name string) int64 {
	value, _ := args[name].(int64)
	return value
}
