package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agenthands/egograph/internal/cache"
	"github.com/agenthands/egograph/internal/config"
	"github.com/agenthands/egograph/internal/core"
	"github.com/agenthands/egograph/internal/core/builder"
	"github.com/agenthands/egograph/internal/core/community"
	"github.com/agenthands/egograph/internal/core/summary"
	"github.com/agenthands/egograph/internal/driver"
	"github.com/agenthands/egograph/internal/errs"
	"github.com/agenthands/egograph/internal/llm"
	"github.com/agenthands/egograph/internal/registry"
)

type loadOptions struct {
	ConfigPath string
	Addr       string
	OutputDir  string
	// SkipEnrichment leaves out the cache, LLM and Memgraph connections.
	SkipEnrichment bool
}

type app struct {
	Config *config.Config
	Ego    *core.EgoGraph

	closers []func()
}

func loadConfig(opts loadOptions, lookup func(string) (string, bool)) (*config.Config, error) {
	const op = "config.Load"

	path := opts.ConfigPath
	if path == "" {
		if v, ok := lookup("CONFIG_PATH"); ok && v != "" {
			path = v
		} else {
			path = config.DefaultPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, errs.Config(op, err)
	}
	cfg.ApplyEnv(lookup)
	if opts.Addr != "" {
		cfg.Server.Addr = opts.Addr
	}
	if opts.OutputDir != "" {
		cfg.Graph.OutputDir = opts.OutputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, errs.Config(op, err)
	}
	return cfg, nil
}

func setupLogger(cfg config.LogConfig, w io.Writer) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return errs.Config("log.Setup", err)
		}
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	if level > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	return nil
}

func newApp(ctx context.Context, opts loadOptions) (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	cfg, err := loadConfig(opts, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if err := setupLogger(cfg.Log, os.Stderr); err != nil {
		return nil, err
	}

	a := &app{Config: cfg}
	client := registry.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout.Duration)
	a.Ego = core.NewEgoGraph(client, builder.New(cfg.Graph.PersonMarker, cfg.Graph.InstitutionMarker), cfg.Graph.OutputPath())

	if cfg.Graph.Communities != "" {
		d, err := community.NewDetector(cfg.Graph.Communities)
		if err != nil {
			return nil, errs.Config("community.NewDetector", err)
		}
		a.Ego.Detector = d
	}

	if opts.SkipEnrichment {
		return a, nil
	}

	if cfg.Cache.RedisURL != "" {
		c, err := cache.NewRedisCache(ctx, cache.RedisOptions{URL: cfg.Cache.RedisURL, TTL: cfg.Cache.TTL.Duration})
		if err != nil {
			// The cache only saves round trips; run without it.
			log.Warn().Err(err).Msg("response cache disabled")
		} else {
			client.Cache = c
			a.closers = append(a.closers, func() { _ = c.Close() })
		}
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		a.Close()
		return nil, errs.Config("llm.NewClient", err)
	}
	if llmClient != nil {
		a.Ego.Summarizer = summary.NewSummarizer(llmClient, cfg.Summary)
		if c, ok := llmClient.(io.Closer); ok {
			a.closers = append(a.closers, func() { _ = c.Close() })
		}
	}

	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			a.Close()
			return nil, errs.Export("driver.NewMemgraphDriver", err)
		}
		a.Ego.Driver = d
		a.closers = append(a.closers, func() { _ = d.Close(context.Background()) })
	}

	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
