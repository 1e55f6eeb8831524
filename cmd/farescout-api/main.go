// @title         Farescout API
// @version       0.1.0
// @description   Flight offer search, pricing and insights endpoints

package main

import (
	"context"

	"farescout/internal/adapters/providers/registry"
	"farescout/internal/modkit/repokit"
	"farescout/internal/platform/config"
	"farescout/internal/platform/logger"
	phttp "farescout/internal/platform/net/http"
	"farescout/internal/platform/store"

	"farescout/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	kvCfg := root.Prefix("SERVICE_REDIS_")      // kvCfg lives under SERVICE_REDIS_*
	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	// open the platform store (redis + optional postgres and clickhouse)
	st, err := store.Open(
		context.Background(),
		store.Config{
			KV: store.KVConfig{
				Enabled:  true,
				Addr:     kvCfg.MustString("ADDR"),
				Username: kvCfg.MayString("USERNAME", ""),
				Password: kvCfg.MayString("PASSWORD", ""),
				DB:       kvCfg.MayInt("DB", 0),
				TLS:      kvCfg.MayBool("TLS", false),
			},
			PG: store.PGConfig{
				Enabled:     pgCfg.MayBool("ENABLED", false),
				URL:         pgCfg.MayString("DBURL", ""),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:    chCfg.MayBool("ENABLED", false),
				URL:        chCfg.MayString("DBURL", ""),
				ClientName: "farescout",
				ClientTag:  "api",
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	// fail fast when a configured backend does not answer a ping
	repokit.MustGuard(context.Background(), st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// upstream provider credentials; both the current and the legacy
	// Amadeus variable names are accepted
	providerCfg := registry.Config{
		Preferred:           root.MayString("PROVIDER_DEFAULT", ""),
		SerpAPIKey:          root.MayString("SERPAPI_API_KEY", ""),
		SerpAPIBaseURL:      root.MayString("SERPAPI_BASE_URL", ""),
		AmadeusClientID:     root.MayString("AMADEUS_CLIENT_ID", root.MayString("AMADEUS_APIKEY", "")),
		AmadeusClientSecret: root.MayString("AMADEUS_CLIENT_SECRET", root.MayString("AMADEUS_APISECRET", "")),
		AmadeusBaseURL:      root.MayString("AMADEUS_BASE_URL", ""),
	}
	if root.MayString("SERPAPI_DEEP_SEARCH", "") != "" {
		v := root.MayBool("SERPAPI_DEEP_SEARCH", true)
		providerCfg.SerpAPIDeepSearch = &v
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			Providers:      providerCfg,
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
