package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	KV KVConfig
	PG PGConfig
	CH CHConfig
}

// KVConfig configures redis connectivity for the cache seam
type KVConfig struct {
	Enabled  bool
	Addr     string
	Username string
	Password string
	DB       int
	TLS      bool

	// Guard/boot knobs:
	DialTimeout time.Duration // default 5s
	PingRetries int           // default 3
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6 (63s(ish) max with exponential backoff)
	PingTimeout    time.Duration // default 5s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}
