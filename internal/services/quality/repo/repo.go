// Package repo provides postgres access for airline and airport ratings
package repo

import (
	"context"
	"errors"

	"farescout/internal/modkit/repokit"
	perr "farescout/internal/platform/errors"
	"farescout/internal/platform/store"
)

// Repo is the minimal persistence surface for quality ratings
type Repo interface {
	AirlineRating(ctx context.Context, iata string) (float64, bool, error)
	AirportRating(ctx context.Context, iata string) (float64, bool, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) AirlineRating(ctx context.Context, iata string) (float64, bool, error) {
	const sql = `
select skytrax_rating
from airlines
where iata_code = $1
`
	return r.oneRating(ctx, sql, iata)
}

func (r *queries) AirportRating(ctx context.Context, iata string) (float64, bool, error) {
	const sql = `
select skytrax_rating
from airports
where iata_code = $1
`
	return r.oneRating(ctx, sql, iata)
}

func (r *queries) oneRating(ctx context.Context, sql, iata string) (float64, bool, error) {
	rating, err := store.One(ctx, r.q, func(row store.Row) (float64, error) {
		var v float64
		return v, row.Scan(&v)
	}, sql, iata)
	if errors.Is(err, perr.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return rating, true, nil
}
