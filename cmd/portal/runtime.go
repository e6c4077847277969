package main

import (
	"io"

	"github.com/rs/zerolog/log"

	"listing_portal/internal/adapters/backend"
	"listing_portal/internal/adapters/credentials"
	"listing_portal/internal/adapters/observability"
	"listing_portal/internal/app"
	"listing_portal/internal/domain"
	"listing_portal/internal/shared"
)

// runtime holds what every subcommand needs: configuration with flag
// overrides applied, and the resources to release on exit.
type runtime struct {
	cfg     shared.Config
	flags   *flags
	closers []io.Closer
}

func (rt *runtime) effective() shared.Config {
	c := rt.cfg
	if rt.flags.base != "" {
		c.APIBase = rt.flags.base
	}
	if rt.flags.token != "" {
		c.APIToken = rt.flags.token
	}
	if rt.flags.locale != "" {
		c.Locale = rt.flags.locale
	}
	return c
}

// setupLogging points the global logger at w and starts the metrics
// endpoint when METRICS_ADDR is set.
func (rt *runtime) setupLogging(w io.Writer) {
	cfg := rt.effective()
	log.Logger = observability.NewLogger(cfg.AppEnv, w)
	observability.Serve(cfg.MetricsAddr, observability.InitRegistry())
}

func (rt *runtime) credentials() domain.CredentialProvider {
	cfg := rt.effective()
	var chain credentials.Chain
	if cfg.APIToken != "" {
		chain = append(chain, credentials.Static(cfg.APIToken))
	}
	if cfg.TokenFile != "" {
		chain = append(chain, credentials.File{Path: cfg.TokenFile})
	}
	if cfg.RedisAddr != "" {
		r := credentials.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisTokenKey)
		rt.closers = append(rt.closers, r)
		chain = append(chain, r)
	}
	if len(chain) == 0 {
		log.Warn().Msg("no credential source configured; requests are sent without a bearer token")
	}
	return chain
}

func (rt *runtime) client() (*backend.Client, error) {
	cfg := rt.effective()
	return backend.New(cfg.APIBase, rt.credentials(), backend.Options{
		RPS:     cfg.BackendRPS,
		Retries: cfg.BackendRetries,
		Timeout: cfg.RequestTimeout,
	})
}

func (rt *runtime) appOptions() []app.Option {
	return []app.Option{
		app.WithLogger(log.Logger),
		app.WithLocale(rt.effective().Locale),
	}
}

func (rt *runtime) close() {
	for _, c := range rt.closers {
		_ = c.Close()
	}
	rt.closers = nil
}
