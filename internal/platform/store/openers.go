package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	chx "farescout/internal/platform/store/ch"
	"farescout/internal/platform/store/pg"

	"github.com/redis/go-redis/v9"
)

// openKV opens redis and wraps it with the kv adapter
// the client is created once here and reused by everything that holds the
// Store, which is the process-wide lazy-init-once lifecycle callers expect
func openKV(ctx context.Context, cfg Config, s *Store) (KV, error) {
	dialTimeout := cfg.KV.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	retries := cfg.KV.PingRetries
	if retries <= 0 {
		retries = 3
	}

	opt := &redis.Options{
		Addr:        cfg.KV.Addr,
		Username:    cfg.KV.Username,
		Password:    cfg.KV.Password,
		DB:          cfg.KV.DB,
		DialTimeout: dialTimeout,
	}
	if cfg.KV.TLS {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opt)

	var lastErr error
	backoff := 150 * time.Millisecond
	for i := 0; i < retries; i++ {
		toCtx, cancel := context.WithTimeout(ctx, dialTimeout)
		lastErr = client.Ping(toCtx).Err()
		cancel()
		if lastErr == nil {
			a := newKVAdapter(client)
			s.KV = a
			return a, nil
		}
		if ctx.Err() != nil {
			_ = client.Close()
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		backoff *= 2
	}

	_ = client.Close()
	return nil, fmt.Errorf("redis ping failed after %d attempts: %w", retries, lastErr)
}

// openPG opens pg and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	// Connection guardrails: ping with retry/backoff using the *pool* directly
	const (
		maxAttempts    = 20
		pingTimeout    = 3 * time.Second
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < maxAttempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(toCtx) // <-- no adapter, no SQL trace line
		cancel()

		if lastErr == nil {
			a := newPGAdapter(p) // publish adapter only after the pool is healthy
			s.PG = a
			return a, nil
		}
		if ctx.Err() != nil {
			p.Close() // close the pool we opened
			return nil, ctx.Err()
		}
		time.Sleep(backoff)
		if backoff < backoffCeiling {
			backoff *= 2
			if backoff > backoffCeiling {
				backoff = backoffCeiling
			}
		}
	}

	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", maxAttempts, lastErr)
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.CH.ClientName,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
