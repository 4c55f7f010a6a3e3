package auth

import (
	"strconv"
	"strings"

	"github.com/spec-kit/airquality-service/internal/domain"
	apperrors "github.com/spec-kit/airquality-service/pkg/util"
)

// ScopeKind classifies the outcome of an allowed scope resolution.
type ScopeKind int

const (
	// ScopeTenant grants read access to a single tenant's rows.
	ScopeTenant ScopeKind = iota
	// ScopeOverview grants the cross-tenant latest-reading-per-tenant view.
	ScopeOverview
)

// Scope is the tenant scope a request is authorized to read. TenantID is
// meaningful only when Kind is ScopeTenant.
type Scope struct {
	Kind     ScopeKind
	TenantID int64
}

// ResolveScope decides what tenant scope the caller may read. The identity
// comes from a verified token (nil when anonymous); requested is the raw
// tenant id from the URL, empty when absent. The decision table, in order:
//
//	no identity                                  -> unauthenticated
//	admin, no requested tenant                   -> overview
//	admin, requested tenant                      -> that tenant
//	tenant role, no requested tenant             -> own tenant (400 if none)
//	tenant role, requested != own (numeric)      -> forbidden
//	tenant role, requested == own                -> own tenant
//
// Tenant ids arrive as URL strings and as token numbers; both sides are
// compared as integers so formatting differences cannot flip a decision.
func ResolveScope(identity *domain.Identity, requested string) (Scope, error) {
	if identity == nil {
		return Scope{}, apperrors.NewUnauthorized("authentication required")
	}

	requested = strings.TrimSpace(requested)

	switch identity.Role {
	case domain.RoleAdmin:
		if requested == "" {
			return Scope{Kind: ScopeOverview}, nil
		}
		tenantID, err := parseTenantID(requested)
		if err != nil {
			return Scope{}, err
		}
		return Scope{Kind: ScopeTenant, TenantID: tenantID}, nil

	case domain.RoleTenant:
		if identity.TenantID == nil {
			return Scope{}, apperrors.NewValidationError("no tenant assigned to account", nil)
		}
		if requested == "" {
			return Scope{Kind: ScopeTenant, TenantID: *identity.TenantID}, nil
		}
		tenantID, err := parseTenantID(requested)
		if err != nil {
			return Scope{}, err
		}
		if tenantID != *identity.TenantID {
			return Scope{}, apperrors.NewForbidden("forbidden")
		}
		return Scope{Kind: ScopeTenant, TenantID: tenantID}, nil

	default:
		// Unknown roles never reach here from a verified token; deny anyway.
		return Scope{}, apperrors.NewForbidden("forbidden")
	}
}

// ResolveTenantScope is ResolveScope restricted to operations that have no
// overview form: an admin must name a tenant explicitly.
func ResolveTenantScope(identity *domain.Identity, requested string) (Scope, error) {
	scope, err := ResolveScope(identity, requested)
	if err != nil {
		return Scope{}, err
	}
	if scope.Kind == ScopeOverview {
		return Scope{}, apperrors.NewValidationError("missing cliente id", nil)
	}
	return scope, nil
}

func parseTenantID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid cliente id", nil)
	}
	return id, nil
}
