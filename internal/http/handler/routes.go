package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"materialapi/internal/service"
	"materialapi/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app, mounted under pathBase.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.MaterialService, store storage.Storage, pathBase string) {
	r := app.Group(pathBase)

	r.Get("/health", HealthCheck(db))
	r.Get("/healthz", LivenessProbe())

	materials := r.Group("/api/materials")
	materials.Post("/", CreateMaterial(svc, pathBase))
	materials.Get("/", ListMaterials(svc, pathBase))
	materials.Get("/lookup", LookupMaterial(svc, pathBase))
	materials.Put("/:id", UpdateMaterial(svc))
	materials.Delete("/:id", DeleteMaterial(svc))
	materials.Get("/:id/view", ViewMaterial(svc, pathBase))

	// Create/list/lookup URLs carry "wwwroot", view URLs do not; both resolve.
	files := ServeMaterialFile(store)
	r.Get("/wwwroot/"+service.MaterialDir+"/:name", files)
	r.Get("/"+service.MaterialDir+"/:name", files)
}

// HealthCheck godoc
// @Summary      Readiness probe
// @Description  Pings the database.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  errorPayload
// @Router       /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary      Liveness probe
// @Tags         health
// @Success      200
// @Router       /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
