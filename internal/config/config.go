package config

import (
	"bluebgg/internal/bggapi"
	"bluebgg/internal/common"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	LOG_FORMAT_CONSOLE = "console"
	LOG_FORMAT_JSON    = "json"
)

// Loaded when no file is given, if it exists
const DefaultEnvFile = ".env"

type Config struct {
	Discord Discord `mapstructure:"discord"`
	Bgg     Bgg     `mapstructure:"bgg"`
	Log     Log     `mapstructure:"log"`
	Health  Health  `mapstructure:"health"`
}

type Discord struct {
	Token         string `mapstructure:"token"`
	ApplicationId string `mapstructure:"application_id"`
	GuildId       string `mapstructure:"guild_id"`
}

type Bgg struct {
	BaseUrl    string        `mapstructure:"base_url"`
	Token      string        `mapstructure:"token"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Requests   int           `mapstructure:"requests"`
	Period     time.Duration `mapstructure:"period"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type Log struct {
	Level  zerolog.Level `mapstructure:"level"`
	Format string        `mapstructure:"format"`
}

type Health struct {
	Listen string `mapstructure:"listen"` // Disabled if empty
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.application_id", "")
	v.SetDefault("discord.guild_id", "")

	v.SetDefault("bgg.base_url", bggapi.BGG_SCHEMA)
	v.SetDefault("bgg.token", "")
	v.SetDefault("bgg.max_retries", bggapi.DefaultMaxRetries)
	v.SetDefault("bgg.retry_delay", bggapi.DefaultRetryDelay)
	v.SetDefault("bgg.requests", 5)
	v.SetDefault("bgg.period", 10*time.Second)
	v.SetDefault("bgg.timeout", bggapi.DefaultTimeout)

	v.SetDefault("log.level", zerolog.InfoLevel.String())
	v.SetDefault("log.format", LOG_FORMAT_CONSOLE)

	v.SetDefault("health.listen", "")
}

// Read the configuration from the environment, after loading envFile into it.
// An empty envFile loads DefaultEnvFile if there is one.
// Variables already in the environment win over the ones in the file
func Load(envFile string) (Config, error) {

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	// discord.token is read from DISCORD_TOKEN
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	err := v.Unmarshal(
		&config,
		viper.DecodeHook(
			mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				StringToLevelHookFunc(),
			),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("could not read configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func loadEnvFile(envFile string) error {
	if envFile == "" {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not load %s: %w", DefaultEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("could not load %s: %w", envFile, err)
	}
	return nil
}

func (config Config) Validate() error {
	if config.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is not set, the bot cannot log in to discord without it")
	}
	if config.Bgg.MaxRetries < 0 {
		return fmt.Errorf("BGG_MAX_RETRIES cannot be negative, got %d", config.Bgg.MaxRetries)
	}
	if config.Bgg.RetryDelay <= 0 {
		return fmt.Errorf("BGG_RETRY_DELAY must be positive, got %s", config.Bgg.RetryDelay)
	}
	if _, err := config.Restriction().Limiter(); err != nil {
		return fmt.Errorf("invalid BGG_REQUESTS or BGG_PERIOD: %w", err)
	}
	if config.Log.Format != LOG_FORMAT_CONSOLE && config.Log.Format != LOG_FORMAT_JSON {
		return fmt.Errorf("LOG_FORMAT must be %s or %s, got %s", LOG_FORMAT_CONSOLE, LOG_FORMAT_JSON, config.Log.Format)
	}
	return nil
}

func (config Config) Restriction() common.Restriction {
	return common.Restriction{Requests: config.Bgg.Requests, Duration: config.Bgg.Period}
}

// Settings for the BGG client
func (config Config) BggSettings() bggapi.Settings {
	return bggapi.Settings{
		BaseUrl:      config.Bgg.BaseUrl,
		Token:        config.Bgg.Token,
		MaxRetries:   config.Bgg.MaxRetries,
		RetryDelay:   config.Bgg.RetryDelay,
		Timeout:      config.Bgg.Timeout,
		Restrictions: []common.Restriction{config.Restriction()},
	}
}

// Decode level names like "debug" into zerolog levels
func StringToLevelHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(zerolog.Level(0)) {
			return data, nil
		}
		name := strings.ToLower(strings.TrimSpace(data.(string)))
		if name == "" {
			return zerolog.InfoLevel, nil
		}
		level, err := zerolog.ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %s", data)
		}
		return level, nil
	}
}
