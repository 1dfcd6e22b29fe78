// Forwards opportunity posts from GitHub Discussions into Discord and keeps
// the opportunities channel clear of anything else.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"opportunities-bot/bot"
	"opportunities-bot/command"
	"opportunities-bot/config"
	"opportunities-bot/handlers"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	config.LoadConfig()
	applyLogLevel()

	bot.Run(handlers.Register, command.GetCommandDefinitions())
}

// applyLogLevel sets the global log level from the log.level config key,
// defaulting to info. The DEBUG environment variable forces debug no matter
// what the key says.
func applyLogLevel() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if name := viper.GetString("log.level"); name != "" {
		level, err := zerolog.ParseLevel(name)
		if err != nil {
			log.Warn().Str("level", name).Msg("Unknown log.level, staying at info")
		} else {
			zerolog.SetGlobalLevel(level)
		}
	}
	if os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
