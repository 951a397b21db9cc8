package main

import (
	"context"
	"io/fs"
	"os"

	"webstore/data"
	"webstore/internal/adapter/flatfile"
	"webstore/internal/adapter/memory"
	"webstore/internal/adapter/password"
	"webstore/internal/adapter/token"
	"webstore/internal/app"
	"webstore/internal/config"

	"go.uber.org/zap"
)

type services struct {
	catalog  *app.CatalogService
	users    *app.UserService
	sessions *app.SessionService
	auth     *app.AuthService
}

func dataFS(cfg config.Config) fs.FS {
	if cfg.DataDir != "" {
		return os.DirFS(cfg.DataDir)
	}
	return data.FS
}

func newHasher(cfg config.Config) (*password.Hasher, error) {
	return password.New(cfg.PasswordHasher, cfg.BcryptCost)
}

// buildServices wires the core and loads the bootstrap users.
func buildServices(ctx context.Context, cfg config.Config, log *zap.Logger) (*services, error) {
	store := flatfile.NewStore(dataFS(cfg), log.Named("flatfile"))

	hasher, err := newHasher(cfg)
	if err != nil {
		return nil, err
	}
	users := app.NewUserService(memory.NewUsers(), hasher, log.Named("users"))
	if err := users.Bootstrap(ctx, flatfile.NewUserFile(store)); err != nil {
		return nil, err
	}

	signer, err := token.NewRandomSigner()
	if err != nil {
		return nil, err
	}
	sessions := app.NewSessionService(signer, memory.NewLiveTokens(), cfg.TokenTTL,
		app.WithSessionLogger(log.Named("sessions")))

	return &services{
		catalog:  app.NewCatalogService(flatfile.NewCatalog(store)),
		users:    users,
		sessions: sessions,
		auth:     app.NewAuthService(users, sessions, log.Named("auth")),
	}, nil
}
