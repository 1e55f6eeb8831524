// Package registry picks the upstream flight source from configured
// credentials. SerpApi wins over Amadeus when both are configured, the
// fixture provider is the fallback when neither is, and an explicit
// preference overrides the order if its credentials are present.
package registry

import (
	"strings"

	"farescout/internal/adapters/providers"
	"farescout/internal/adapters/providers/amadeus"
	"farescout/internal/adapters/providers/mock"
	"farescout/internal/adapters/providers/serpapi"
	perr "farescout/internal/platform/errors"
)

// Config carries every provider credential plus the optional preference
type Config struct {
	Preferred string // amadeus, serpapi or empty

	SerpAPIKey        string
	SerpAPIBaseURL    string
	SerpAPIDeepSearch *bool

	AmadeusClientID     string
	AmadeusClientSecret string
	AmadeusBaseURL      string
}

func (c Config) hasSerpAPI() bool {
	return strings.TrimSpace(c.SerpAPIKey) != ""
}

func (c Config) hasAmadeus() bool {
	return strings.TrimSpace(c.AmadeusClientID) != "" && strings.TrimSpace(c.AmadeusClientSecret) != ""
}

func (c Config) newSerpAPI() (providers.SearchProvider, error) {
	return serpapi.New(serpapi.Options{
		APIKey:     c.SerpAPIKey,
		BaseURL:    c.SerpAPIBaseURL,
		DeepSearch: c.SerpAPIDeepSearch,
	})
}

func (c Config) newAmadeus() (*amadeus.Provider, error) {
	return amadeus.New(amadeus.Options{
		BaseURL:      c.AmadeusBaseURL,
		ClientID:     c.AmadeusClientID,
		ClientSecret: c.AmadeusClientSecret,
	})
}

// Select builds the search provider for the configuration
func Select(cfg Config) (providers.SearchProvider, error) {
	prefer := strings.ToLower(strings.TrimSpace(cfg.Preferred))
	switch {
	case prefer == amadeus.Name && cfg.hasAmadeus():
		return cfg.newAmadeus()
	case prefer == serpapi.Name && cfg.hasSerpAPI():
		return cfg.newSerpAPI()
	case cfg.hasSerpAPI():
		return cfg.newSerpAPI()
	case cfg.hasAmadeus():
		return cfg.newAmadeus()
	default:
		return mock.New(), nil
	}
}

// Amadeus builds the GDS provider or fails with a Config error when its
// credentials are missing. Pricing and insights require it.
func Amadeus(cfg Config) (*amadeus.Provider, error) {
	if !cfg.hasAmadeus() {
		return nil, perr.Configf("amadeus credentials are required")
	}
	return cfg.newAmadeus()
}
