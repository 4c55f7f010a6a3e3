package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/airquality-service/internal/domain"
)

// MaxReadingsPerQuery caps how many rows a single tenant query returns.
const MaxReadingsPerQuery = 200

// readingColumns is the fixed projection for reading queries. Column names
// are internal to the store; the stable client-facing field names live in
// the dto package.
const readingColumns = `
        id, cliente, local,
        temperatura_interna, temperatura_externa,
        umidade, umidade_externa,
        dioxido_carbono, formaldeido, pm25, pm10,
        data_hora`

// ReadingRepository encapsulates telemetry reads. All queries are scoped and
// read-only; readings are written by an external ingestion process.
type ReadingRepository interface {
	ListByTenant(ctx context.Context, tenantID int64, limit int) ([]domain.Reading, error)
	LatestPerTenant(ctx context.Context) ([]domain.Reading, error)
	DistinctLocations(ctx context.Context, tenantID int64) ([]string, error)
}

type readingRepository struct {
	pool *pgxpool.Pool
}

// NewReadingRepository instantiates repository.
func NewReadingRepository(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepository{pool: pool}
}

// ListByTenant returns the tenant's most recent readings, newest first.
func (r *readingRepository) ListByTenant(ctx context.Context, tenantID int64, limit int) ([]domain.Reading, error) {
	if limit <= 0 || limit > MaxReadingsPerQuery {
		limit = MaxReadingsPerQuery
	}

	const query = `
        SELECT ` + readingColumns + `
        FROM air_quality
        WHERE cliente=$1
        ORDER BY data_hora DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

// LatestPerTenant returns each tenant's maximum-timestamp row, across all
// tenants, newest first. This is the admin overview snapshot.
func (r *readingRepository) LatestPerTenant(ctx context.Context) ([]domain.Reading, error) {
	const query = `
        SELECT
            a.id, a.cliente, a.local,
            a.temperatura_interna, a.temperatura_externa,
            a.umidade, a.umidade_externa,
            a.dioxido_carbono, a.formaldeido, a.pm25, a.pm10,
            a.data_hora
        FROM air_quality a
        JOIN (
            SELECT cliente, MAX(data_hora) AS ts
            FROM air_quality
            GROUP BY cliente
        ) b ON a.cliente=b.cliente AND a.data_hora=b.ts
        ORDER BY a.data_hora DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReadings(rows)
}

// DistinctLocations returns the sorted set of location labels recorded for
// the tenant.
func (r *readingRepository) DistinctLocations(ctx context.Context, tenantID int64) ([]string, error) {
	const query = `
        SELECT DISTINCT local
        FROM air_quality
        WHERE cliente=$1
        ORDER BY local ASC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var local string
		if err := rows.Scan(&local); err != nil {
			return nil, err
		}
		result = append(result, local)
	}
	return result, rows.Err()
}

func scanReadings(rows pgx.Rows) ([]domain.Reading, error) {
	var result []domain.Reading
	for rows.Next() {
		var reading domain.Reading
		if err := rows.Scan(
			&reading.ID,
			&reading.TenantID,
			&reading.Local,
			&reading.TempIn,
			&reading.TempEx,
			&reading.HumIn,
			&reading.HumEx,
			&reading.CO2,
			&reading.Formaldehyde,
			&reading.PM25,
			&reading.PM10,
			&reading.RecordedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, reading)
	}
	return result, rows.Err()
}
