package domain

import "time"

// Reading is one air-quality measurement. Readings are append-only from this
// service's perspective; an external ingestion process writes them. Every
// reading belongs to exactly one tenant.
type Reading struct {
	ID           int64
	TenantID     int64
	Local        string
	TempIn       float64
	TempEx       float64
	HumIn        float64
	HumEx        float64
	CO2          float64
	Formaldehyde float64
	PM25         float64
	PM10         float64
	RecordedAt   time.Time
}

// TenantUser is the roster projection of a user with an assigned tenant.
type TenantUser struct {
	ID        int64
	Nome      string
	Sobrenome string
	Email     string
	TenantID  int64
}
