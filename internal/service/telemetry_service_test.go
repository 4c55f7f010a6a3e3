package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/airquality-service/internal/domain"
	apperrors "github.com/spec-kit/airquality-service/pkg/util"
)

type stubReadingRepo struct {
	byTenant  map[int64][]domain.Reading
	latest    []domain.Reading
	locations map[int64][]string
	queries   int
}

func (s *stubReadingRepo) ListByTenant(_ context.Context, tenantID int64, limit int) ([]domain.Reading, error) {
	s.queries++
	rows := s.byTenant[tenantID]
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *stubReadingRepo) LatestPerTenant(context.Context) ([]domain.Reading, error) {
	s.queries++
	return s.latest, nil
}

func (s *stubReadingRepo) DistinctLocations(_ context.Context, tenantID int64) ([]string, error) {
	s.queries++
	return s.locations[tenantID], nil
}

func reading(id, tenantID int64, local string, age time.Duration) domain.Reading {
	return domain.Reading{
		ID:         id,
		TenantID:   tenantID,
		Local:      local,
		RecordedAt: time.Now().Add(-age),
	}
}

func newTelemetryFixture() (*TelemetryService, *stubReadingRepo, *stubUserRepo) {
	readings := &stubReadingRepo{
		byTenant: map[int64][]domain.Reading{
			42: {reading(1, 42, "sala", time.Minute), reading(2, 42, "lab", time.Hour)},
			43: {reading(3, 43, "hall", time.Minute)},
		},
		latest: []domain.Reading{
			reading(1, 42, "sala", time.Minute),
			reading(3, 43, "hall", 2*time.Minute),
		},
		locations: map[int64][]string{
			42: {"lab", "sala"},
		},
	}
	users := &stubUserRepo{
		roster: []domain.TenantUser{
			{ID: 1, Nome: "Ana", Sobrenome: "Silva", Email: "t@x", TenantID: 42},
		},
	}
	svc := NewTelemetryService(TelemetryDependencies{
		ReadingRepo: readings,
		UserRepo:    users,
	})
	return svc, readings, users
}

func tenantIdentity(tenantID int64) *domain.Identity {
	return &domain.Identity{UserID: 2, Email: "t@x", Role: domain.RoleTenant, TenantID: &tenantID}
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{UserID: 1, Email: "admin@x", Role: domain.RoleAdmin}
}

func TestReadingsAdminDefaultIsOverview(t *testing.T) {
	svc, _, _ := newTelemetryFixture()

	rows, err := svc.Readings(context.Background(), adminIdentity(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	seen := map[int64]int{}
	for _, row := range rows {
		seen[row.TenantID]++
	}
	assert.Equal(t, map[int64]int{42: 1, 43: 1}, seen)
}

func TestReadingsAdminMayImpersonateTenant(t *testing.T) {
	svc, _, _ := newTelemetryFixture()

	rows, err := svc.Readings(context.Background(), adminIdentity(), "42")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, int64(42), row.TenantID)
	}
}

func TestReadingsTenantOwnAndOmittedScopeAreIdentical(t *testing.T) {
	svc, _, _ := newTelemetryFixture()

	explicit, err := svc.Readings(context.Background(), tenantIdentity(42), "42")
	require.NoError(t, err)
	implicit, err := svc.Readings(context.Background(), tenantIdentity(42), "")
	require.NoError(t, err)

	assert.Equal(t, explicit, implicit)
}

func TestReadingsTenantCrossTenantIssuesNoQuery(t *testing.T) {
	svc, readings, _ := newTelemetryFixture()

	_, err := svc.Readings(context.Background(), tenantIdentity(42), "43")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
	assert.Zero(t, readings.queries)
}

func TestReadingsAnonymousIssuesNoQuery(t *testing.T) {
	svc, readings, _ := newTelemetryFixture()

	_, err := svc.Readings(context.Background(), nil, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
	assert.Zero(t, readings.queries)
}

func TestRosterIsAdminOnly(t *testing.T) {
	svc, _, users := newTelemetryFixture()

	_, err := svc.Roster(context.Background(), tenantIdentity(42))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)
	assert.Zero(t, users.rosterCalls)

	roster, err := svc.Roster(context.Background(), adminIdentity())
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, int64(42), roster[0].TenantID)
}

func TestLocationsFollowReadingsPolicy(t *testing.T) {
	svc, readings, _ := newTelemetryFixture()

	locations, err := svc.Locations(context.Background(), tenantIdentity(42), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"lab", "sala"}, locations)

	_, err = svc.Locations(context.Background(), tenantIdentity(42), "43")
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apperrors.ToDomainError(err).HTTPStatus)

	// No cross-tenant overview exists for locations.
	_, err = svc.Locations(context.Background(), adminIdentity(), "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.ToDomainError(err).HTTPStatus)

	before := readings.queries
	adminScoped, err := svc.Locations(context.Background(), adminIdentity(), "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"lab", "sala"}, adminScoped)
	assert.Equal(t, before+1, readings.queries)
}
