package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airquality-service/internal/api/dto"
	"github.com/spec-kit/airquality-service/internal/auth"
	"github.com/spec-kit/airquality-service/internal/domain"
	"github.com/spec-kit/airquality-service/internal/service"
	apperrors "github.com/spec-kit/airquality-service/pkg/util"
)

// TelemetryHandler exposes the scoped read endpoints.
type TelemetryHandler struct {
	telemetry *service.TelemetryService
}

// NewTelemetryHandler constructs handler.
func NewTelemetryHandler(telemetryService *service.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetry: telemetryService}
}

// Readings handles GET /air and GET /air/:cliente. Admins without a tenant
// id receive the cross-tenant overview.
func (h *TelemetryHandler) Readings(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	requested := c.Params("cliente")
	if requested == "" {
		requested = c.Query("cliente")
	}

	readings, err := h.telemetry.Readings(c.UserContext(), identity, requested)
	if err != nil {
		return err
	}

	items := make([]dto.ReadingResponse, 0, len(readings))
	for i := range readings {
		items = append(items, readingResponse(&readings[i]))
	}
	return c.JSON(items)
}

// Clients handles GET /clients (admin-only roster).
func (h *TelemetryHandler) Clients(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	users, err := h.telemetry.Roster(c.UserContext(), identity)
	if err != nil {
		return err
	}

	items := make([]dto.ClientResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.ClientResponse{
			ID:        user.ID,
			Nome:      user.Nome,
			Sobrenome: user.Sobrenome,
			Email:     user.Email,
			Hubspot:   user.TenantID,
		})
	}
	return c.JSON(items)
}

// Locations handles GET /locais?cliente=.
func (h *TelemetryHandler) Locations(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	locations, err := h.telemetry.Locations(c.UserContext(), identity, c.Query("cliente"))
	if err != nil {
		return err
	}

	items := make([]dto.LocationResponse, 0, len(locations))
	for _, local := range locations {
		items = append(items, dto.LocationResponse{Local: local})
	}
	return c.JSON(items)
}

func readingResponse(reading *domain.Reading) dto.ReadingResponse {
	return dto.ReadingResponse{
		ID:       reading.ID,
		Cliente:  reading.TenantID,
		Local:    reading.Local,
		TempIn:   reading.TempIn,
		TempEx:   reading.TempEx,
		HumIn:    reading.HumIn,
		HumEx:    reading.HumEx,
		CO2:      reading.CO2,
		Form:     reading.Formaldehyde,
		PM25:     reading.PM25,
		PM10:     reading.PM10,
		DataHora: reading.RecordedAt,
	}
}
