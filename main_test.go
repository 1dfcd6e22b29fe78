package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestApplyLogLevel(t *testing.T) {
	t.Cleanup(func() {
		viper.Set("log.level", "")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	viper.Set("log.level", "warn")
	applyLogLevel()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	viper.Set("log.level", "nonsense")
	applyLogLevel()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	viper.Set("log.level", "")
	applyLogLevel()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestApplyLogLevelDebugOverride(t *testing.T) {
	t.Cleanup(func() {
		viper.Set("log.level", "")
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	t.Setenv("DEBUG", "1")

	viper.Set("log.level", "error")
	applyLogLevel()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
