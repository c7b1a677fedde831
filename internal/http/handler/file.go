package handler

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"materialapi/internal/service"
	"materialapi/internal/storage"
)

const presignExpiry = 15 * time.Minute

// ServeMaterialFile streams a stored material file. Backends that can presign
// (MinIO) answer with a redirect instead.
func ServeMaterialFile(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil || name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
		}
		key := service.MaterialDir + "/" + name
		ctx := c.UserContext()

		if p, ok := store.(storage.Presigner); ok {
			exists, err := store.Exists(ctx, key)
			if err != nil {
				return writeInternalError(c, err)
			}
			if !exists {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			u, err := p.PresignGet(ctx, key, presignExpiry)
			if err != nil {
				return writeInternalError(c, err)
			}
			return c.Redirect(u, fiber.StatusFound)
		}

		rc, info, err := store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
			}
			return writeInternalError(c, err)
		}

		c.Set(fiber.HeaderContentType, contentType(info.ContentType))
		if info.Size > 0 {
			return c.SendStream(rc, int(info.Size))
		}
		return c.SendStream(rc)
	}
}
