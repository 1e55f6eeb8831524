// Package api provides the HTTP API for the application
package api

import (
	"farescout/internal/platform/config"
	"farescout/internal/platform/logger"
	phttp "farescout/internal/platform/net/http"
	"farescout/internal/platform/store"

	"farescout/internal/adapters/providers"
	"farescout/internal/adapters/providers/registry"
	"farescout/internal/modkit"
	"farescout/internal/modkit/httpkit"
	"farescout/internal/modkit/module"

	insightsmod "farescout/internal/services/api/insights/module"
	insightssvc "farescout/internal/services/api/insights/service"
	metamod "farescout/internal/services/api/meta/module"
	pricingmod "farescout/internal/services/api/pricing/module"
	pricingsvc "farescout/internal/services/api/pricing/service"
	searchmod "farescout/internal/services/api/search/module"
	searchsvc "farescout/internal/services/api/search/service"
	baselinerepo "farescout/internal/services/baseline/repo"
	baselinesvc "farescout/internal/services/baseline/service"
	qualityrepo "farescout/internal/services/quality/repo"
	qualitysvc "farescout/internal/services/quality/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Providers      registry.Config
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		KV:  opt.Store.KV,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	provider, err := registry.Select(opt.Providers)
	if err != nil {
		opt.Logger.Panic().Err(err).Msg("provider selection failed")
	}

	// pricing and insights need the GDS capabilities; when the selected
	// provider lacks them, fall back to a dedicated Amadeus client if
	// its credentials are configured
	gds := provider
	if _, ok := provider.(providers.Repricer); !ok {
		if a, aerr := registry.Amadeus(opt.Providers); aerr == nil {
			gds = a
		}
	}

	// support services degrade to nil when their backend is disabled
	var baseline baselinesvc.Service
	if opt.Store.CH != nil {
		baseline = baselinesvc.New(baselinerepo.NewCH(opt.Store.CH), opt.Store.KV)
	}
	var quality qualitysvc.Service
	if opt.Store.PG != nil {
		quality = qualitysvc.New(opt.Store.PG, qualityrepo.NewPG(), opt.Store.KV)
	}

	mods := []module.Module{
		metamod.New(deps),
		searchmod.New(deps, searchsvc.New(provider, opt.Store.KV, baseline, quality)),
		pricingmod.New(deps, pricingsvc.New(gds, opt.Store.KV)),
		insightsmod.New(deps, insightssvc.New(gds, opt.Store.KV)),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
