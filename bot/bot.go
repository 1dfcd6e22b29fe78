// Package bot wires the Discord session, the forum client and the
// reconciler together and owns the process lifecycle.
package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"opportunities-bot/config"
	"opportunities-bot/forum"
	"opportunities-bot/models"
	"opportunities-bot/scanner"
	"opportunities-bot/utils"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session    *discordgo.Session
	Reconciler *scanner.Reconciler
	Config     models.BotConfig
	Commands   []*discordgo.ApplicationCommand
}

// NewBot creates and initializes a new Bot instance from config.yaml and
// the environment.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	var botConf models.BotConfig
	if err := viper.UnmarshalKey("bot", &botConf); err != nil {
		return nil, fmt.Errorf("failed to decode bot config: %w", err)
	}
	var forumConf models.ForumConfig
	if err := viper.UnmarshalKey("forum", &forumConf); err != nil {
		return nil, fmt.Errorf("failed to decode forum config: %w", err)
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// Message content is needed to read channel history; direct messages
	// for the DM reaction.
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	forumClient := forum.NewClient(forumConf.BaseURL, forumConf.Repo, forumConf.Category)
	reconciler := scanner.NewReconciler(NewSessionPlatform(dg), forumClient, botConf.TargetChannel)

	return &Bot{
		Session:    dg,
		Reconciler: reconciler,
		Config:     botConf,
	}, nil
}

// RegisterCommands stores the application commands to create on startup.
func (b *Bot) RegisterCommands(defs []*discordgo.ApplicationCommand) {
	b.Commands = defs
}

// Start opens the bot's session, registers handlers and slash commands,
// and launches the sync scheduler.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	// Handlers may fire as soon as the gateway opens, so the logger they
	// report through has to be wired first.
	utils.InitLogger(b.Session)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	for _, def := range b.Commands {
		if _, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def); err != nil {
			log.Error().Err(err).Str("command", def.Name).Msg("Cannot create command")
		}
	}

	startScheduler(b.Reconciler, b.Config)

	log.Info().Msg("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session.
func (b *Bot) Stop() {
	stopScheduler()
	if b.Session != nil {
		b.Session.Close()
	}
	log.Info().Msg("Bot stopped gracefully")
}

// Run is the main entry point for the bot application. It blocks until the
// process receives an interrupt.
func Run(registerHandlers func(*Bot), commands []*discordgo.ApplicationCommand) {
	bot, err := NewBot()
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing bot")
	}

	bot.RegisterCommands(commands)

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatal().Err(err).Msg("Error starting bot")
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
