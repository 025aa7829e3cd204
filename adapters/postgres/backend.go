package postgres

import (
	"context"
	"fmt"
	"strings"

	"rejectconsole/internal/errors"
	"rejectconsole/models"
	"rejectconsole/ports"

	"github.com/jmoiron/sqlx"
)

// Backend implements ports.Backend against a local PostgreSQL database.
// It reproduces the remote backend's query semantics so the console
// behaves identically in self-contained deployments: production entries
// are the source of truth, joined to inspections by lot number.
type Backend struct {
	db        *sqlx.DB
	threshold *thresholdResolver
}

var _ ports.Backend = (*Backend)(nil)

// New creates a postgres backend on an open connection pool.
func New(db *sqlx.DB) *Backend {
	return &Backend{
		db:        db,
		threshold: &thresholdResolver{db: db},
	}
}

// Connect opens and pings a PostgreSQL connection pool.
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

// likeFilter appends an ILIKE condition when value is non-empty.
// Returns the updated conditions and args.
func likeFilter(conds []string, args []any, column, value string) ([]string, []any) {
	if value == "" {
		return conds, args
	}
	args = append(args, "%"+value+"%")
	conds = append(conds, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	return conds, args
}

func appendConditions(query string, conds []string) string {
	if len(conds) == 0 {
		return query
	}
	return query + " AND " + strings.Join(conds, " AND ")
}

func (b *Backend) resolveThreshold(ctx context.Context, t models.InspectionType) float64 {
	th, err := b.threshold.resolve(ctx, t, "", "")
	if err != nil {
		return models.DefaultThresholdPct
	}
	return th.ThresholdPct
}
