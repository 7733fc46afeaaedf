package main

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/xtding233/endfield-gacha/internal/catalog"
	"github.com/xtding233/endfield-gacha/internal/config"
	"github.com/xtding233/endfield-gacha/internal/gacha"
	"github.com/xtding233/endfield-gacha/internal/logger"
	"github.com/xtding233/endfield-gacha/internal/session"
	"github.com/xtding233/endfield-gacha/internal/storage"
)

// env is shared by every command. The store and session are opened on
// first use so commands that never touch saved state skip the backend.
type env struct {
	cfg    *config.Config
	engine *gacha.Engine
	store  *storage.Store
	sess   *session.Session
}

const envKey = "gachasim.env"

func setup(c *cli.Context) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	logger.Configure(cfg.DevMode)

	cat, err := catalog.NewLoader(cfg.CatalogPath).Load()
	if err != nil {
		return err
	}
	opts := []gacha.Option{gacha.WithLogger(log.Logger)}
	if cfg.Seed != 0 {
		opts = append(opts, gacha.WithRNG(gacha.NewSeededRNG(cfg.Seed)))
	}
	c.App.Metadata = map[string]interface{}{
		envKey: &env{cfg: cfg, engine: gacha.NewEngine(cat, opts...)},
	}
	return nil
}

func teardown(c *cli.Context) error {
	e, ok := c.App.Metadata[envKey].(*env)
	if !ok || e.store == nil {
		return nil
	}
	return e.store.Close()
}

func getEnv(c *cli.Context) *env {
	return c.App.Metadata[envKey].(*env)
}

func (e *env) session(c *cli.Context) (*session.Session, error) {
	if e.sess != nil {
		return e.sess, nil
	}
	ctx := log.Logger.WithContext(c.Context)
	store, err := e.cfg.OpenStore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	e.store = store
	sess, err := session.Open(ctx, e.engine, store)
	if err != nil {
		return nil, err
	}
	e.sess = sess
	return sess, nil
}

func bannerFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "banner",
		Aliases: []string{"b"},
		Usage:   "one of limited, standard, beginner, weapon",
		Value:   value,
	}
}

func parseBanner(c *cli.Context) (gacha.BannerKind, error) {
	kind, err := gacha.ParseBannerKind(c.String("banner"))
	if err != nil {
		return "", cli.Exit(err.Error(), 2)
	}
	return kind, nil
}
