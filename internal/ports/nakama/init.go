package nakama

import (
	"context"
	"database/sql"

	"cribbage/internal/app"
	"cribbage/internal/bot"
	"cribbage/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and hooks for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)

	if err := config.LoadGameConfig(envOr(env, EnvConfigPath, DefaultConfigPath)); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()

	botPath := cfg.BotIdentitiesPath
	if botPath == "" {
		botPath = DefaultBotIdentitiesPath
	}
	if err := bot.LoadIdentities(botPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else {
		bot.ProvisionIdentities(ctx, nk, logger)
	}

	opts := []app.Option{app.WithLogger(logger)}
	if secret := env[EnvDeckSecret]; secret != "" {
		opts = append(opts, app.WithDeckSecret([]byte(secret)))
	} else {
		logger.Warn("InitModule: %s is not set, deals will not be reproducible", EnvDeckSecret)
	}

	var tokens *app.PlayerTokens
	if secret := env[EnvTokenSecret]; secret != "" {
		tokens = app.NewPlayerTokens(secret, envOr(env, EnvTokenIssuer, DefaultTokenIssuer), app.DefaultTokenTTL)
	}

	service := app.NewService(NewNakamaGameStore(nk), app.SettingsFrom(cfg), opts...)
	handlers := newRPCHandlers(service, NewIdentitySource(NewNakamaAccountAdapter(nk), tokens), tokens)
	if err := handlers.RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Cribbage Go module loaded (target %d, muggins %s).", cfg.TargetScore, cfg.MugginsPolicy)
	return nil
}

func envOr(env map[string]string, key, fallback string) string {
	if v := env[key]; v != "" {
		return v
	}
	return fallback
}
