package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/airquality-service/internal/auth"
	"github.com/spec-kit/airquality-service/internal/domain"
	"github.com/spec-kit/airquality-service/internal/persistence"
	"github.com/spec-kit/airquality-service/internal/repository"
	apperrors "github.com/spec-kit/airquality-service/pkg/util"
)

const overviewCacheKey = "overview:latest"

// TelemetryService is the tenant-scoped query router. Every operation takes
// the verified caller identity, resolves the allowed scope first, and only
// then touches the row store; a denied scope issues no query.
type TelemetryService struct {
	readings repository.ReadingRepository
	users    repository.UserRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// TelemetryDependencies bundles collaborators for the telemetry service.
type TelemetryDependencies struct {
	ReadingRepo repository.ReadingRepository
	UserRepo    repository.UserRepository
	Cache       *persistence.Redis
	CacheTTL    time.Duration
	Logger      *zap.Logger
}

// NewTelemetryService constructs the service.
func NewTelemetryService(deps TelemetryDependencies) *TelemetryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelemetryService{
		readings: deps.ReadingRepo,
		users:    deps.UserRepo,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		logger:   logger,
	}
}

// Readings returns the caller's readings. Admins without a tenant parameter
// get the cross-tenant overview: one row per tenant, each that tenant's most
// recent reading. Everyone else gets up to 200 rows for the resolved tenant,
// newest first.
func (s *TelemetryService) Readings(ctx context.Context, identity *domain.Identity, requestedTenant string) ([]domain.Reading, error) {
	scope, err := auth.ResolveScope(identity, requestedTenant)
	if err != nil {
		s.logDenied(identity, requestedTenant, err)
		return nil, err
	}

	if scope.Kind == auth.ScopeOverview {
		return s.overview(ctx)
	}

	rows, err := s.readings.ListByTenant(ctx, scope.TenantID, repository.MaxReadingsPerQuery)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// Roster lists every account with an assigned tenant. Admin-only.
func (s *TelemetryService) Roster(ctx context.Context, identity *domain.Identity) ([]domain.TenantUser, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	if !identity.IsAdmin() {
		s.logger.Warn("roster denied",
			zap.Int64("user_id", identity.UserID),
			zap.String("role", string(identity.Role)),
		)
		return nil, apperrors.NewForbidden("admin required")
	}

	users, err := s.users.ListTenantUsers(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Locations returns the sorted distinct location labels for the resolved
// tenant. Scope rules match Readings, except admins must name a tenant:
// there is no cross-tenant overview of locations.
func (s *TelemetryService) Locations(ctx context.Context, identity *domain.Identity, requestedTenant string) ([]string, error) {
	scope, err := auth.ResolveTenantScope(identity, requestedTenant)
	if err != nil {
		s.logDenied(identity, requestedTenant, err)
		return nil, err
	}

	locations, err := s.readings.DistinctLocations(ctx, scope.TenantID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return locations, nil
}

// overview serves the latest-per-tenant snapshot, preferring the short-TTL
// cache. The cache holds query results only; authorization was already
// re-evaluated for this request.
func (s *TelemetryService) overview(ctx context.Context) ([]domain.Reading, error) {
	if s.cacheTTL > 0 {
		if payload, ok := s.cache.GetCached(ctx, overviewCacheKey); ok {
			var rows []domain.Reading
			if err := json.Unmarshal([]byte(payload), &rows); err == nil {
				return rows, nil
			}
			s.logger.Warn("discarding undecodable overview cache entry")
		}
	}

	rows, err := s.readings.LatestPerTenant(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cacheTTL > 0 {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.cache.SetCached(ctx, overviewCacheKey, string(payload), s.cacheTTL); err != nil {
				s.logger.Warn("overview cache write failed", zap.Error(err))
			}
		}
	}
	return rows, nil
}

// logDenied records policy violations; unauthenticated and validation
// failures are routine and logged at debug.
func (s *TelemetryService) logDenied(identity *domain.Identity, requestedTenant string, err error) {
	fields := []zap.Field{zap.String("requested_cliente", requestedTenant), zap.Error(err)}
	if identity != nil {
		fields = append(fields,
			zap.Int64("user_id", identity.UserID),
			zap.String("role", string(identity.Role)),
		)
	}
	if de := apperrors.ToDomainError(err); de != nil && de.Code == "FORBIDDEN" {
		s.logger.Warn("scope denied", fields...)
		return
	}
	s.logger.Debug("scope not resolved", fields...)
}
