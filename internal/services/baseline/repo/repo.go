// Package repo provides clickhouse access for fare snapshots
package repo

import (
	"context"
	"time"

	"farescout/internal/core/offer"
	"farescout/internal/platform/store"
)

// Table is the snapshot sink
const Table = "fare_snapshots"

// Snapshot is one observed fare for a route and date
type Snapshot struct {
	ID         string
	RouteKey   string // "SFO-LHR"
	DepartDate string // YYYY-MM-DD
	Cabin      string
	Price      float64
	Currency   string
	Provider   string
	CapturedAt time.Time
}

// Repo is the minimal persistence surface for baselines
type Repo interface {
	InsertSnapshots(ctx context.Context, snaps []Snapshot) error
	Stats(ctx context.Context, routeKey, departDate, cabin string) (offer.BaselineStats, bool, error)
}

// CH implements Repo on the clickhouse seam
type CH struct{ db store.Clickhouse }

// NewCH wires the clickhouse handle
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

var columns = []string{
	"id", "route_key", "depart_date", "cabin",
	"price", "currency", "provider", "captured_at",
}

// InsertSnapshots appends observed fares in one batch
func (r *CH) InsertSnapshots(ctx context.Context, snaps []Snapshot) error {
	rows := make([][]any, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []any{
			s.ID, s.RouteKey, s.DepartDate, s.Cabin,
			s.Price, s.Currency, s.Provider, s.CapturedAt,
		})
	}
	return r.db.Insert(ctx, Table, columns, rows)
}

// Stats computes the price distribution for a route, date and cabin
// returns false when no snapshots exist yet
func (r *CH) Stats(ctx context.Context, routeKey, departDate, cabin string) (offer.BaselineStats, bool, error) {
	const sql = `
select
    quantile(0.5)(price)          as median_price,
    stddevPop(price)              as volatility,
    toInt64(count())              as sample_size,
    formatDateTime(max(captured_at), '%Y-%m-%dT%H:%i:%SZ', 'UTC') as last_updated
from fare_snapshots
where route_key = ? and depart_date = ? and cabin = ?
`
	rows, err := r.db.Query(ctx, sql, routeKey, departDate, cabin)
	if err != nil {
		return offer.BaselineStats{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return offer.BaselineStats{}, false, rows.Err()
	}
	var (
		stats  offer.BaselineStats
		sample int64
	)
	if err := rows.Scan(&stats.MedianPrice, &stats.Volatility, &sample, &stats.LastUpdatedUTC); err != nil {
		return offer.BaselineStats{}, false, err
	}
	if sample == 0 {
		return offer.BaselineStats{}, false, rows.Err()
	}
	stats.SampleSize = int(sample)
	return stats, true, rows.Err()
}
