package main

import (
	"context"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"giftvault/cfg"
	"giftvault/clients/getgems"
	"giftvault/clients/telegram"
	"giftvault/clients/toncenter"
	"giftvault/clients/tonnel"
	firebaserepo "giftvault/repo/firebase"
	"giftvault/scanner"
	"giftvault/server"
	"giftvault/service"
)

func main() {
	godotenv.Load()

	config, err := cfg.ConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read config")
	}

	zerolog.LevelFieldName = "severity"
	zerolog.MessageFieldName = "log"
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.999Z"

	switch config.LogLevel {
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []option.ClientOption
	if config.FirebaseCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(config.FirebaseCredentials))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: config.FirebaseDatabaseURL}, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init firebase app")
	}
	dbClient, err := app.Database(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to realtime database")
	}
	giftRepo := firebaserepo.NewGiftVaultFirebaseRepo(dbClient)
	log.Info().Msg("Connected to realtime database")

	notifier, err := telegram.NewNotifier(config.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init telegram bot")
	}
	if !notifier.Enabled() {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set, notifications disabled")
	}

	svc := service.NewGiftService(
		config,
		giftRepo,
		tonnel.NewClient(config.TonnelBaseURL),
		getgems.NewClient(config.GetgemsBaseURL),
	)

	seen := scanner.NewMemorySeen()
	if config.RedisAddr != "" {
		seen = scanner.NewRedisSeen(redis.NewClient(&redis.Options{Addr: config.RedisAddr}))
		log.Info().Str("addr", config.RedisAddr).Msg("Using redis seen store")
	}

	depositScanner, err := scanner.New(
		config,
		toncenter.NewClient(config.ToncenterBaseURL, config.ToncenterAPIKey),
		seen,
		svc,
		notifier,
		log.With().Str("component", "scanner").Logger(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init deposit scanner")
	}
	go depositScanner.Run(ctx)

	srv := server.New(config, svc, log.With().Str("component", "server").Logger())
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}
