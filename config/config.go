// Package config loads the bot's configuration into the global viper
// instance. Sources, in order: a .env file for environment variables, then
// config.yaml, with environment variables overriding file settings.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var once sync.Once

// LoadConfig reads .env and config.yaml from the working directory, once
// per process. A missing file is fine; a file that exists but cannot be
// parsed is fatal.
func LoadConfig() {
	once.Do(load)
}

func load() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, skipping")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	// Map keys like bot.target_channel to env vars like BOT_TARGET_CHANNEL.
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No config.yaml found, using environment variables and defaults only")
		} else {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
}
