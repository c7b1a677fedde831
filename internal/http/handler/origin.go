package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"materialapi/internal/service"
)

const (
	headerForwardedProto  = "X-Forwarded-Proto"
	headerForwardedHost   = "X-Forwarded-Host"
	headerForwardedPrefix = "X-Forwarded-Prefix"
)

// originFromCtx resolves the public scheme, host and path base of a request.
// A configured pathBase wins over X-Forwarded-Prefix.
func originFromCtx(c *fiber.Ctx, pathBase string) service.Origin {
	scheme := firstValue(c.Get(headerForwardedProto))
	if scheme == "" {
		scheme = c.Protocol()
	}
	host := firstValue(c.Get(headerForwardedHost))
	if host == "" {
		host = c.Hostname()
	}
	if pathBase == "" {
		if p := firstValue(c.Get(headerForwardedPrefix)); p != "" {
			pathBase = "/" + strings.Trim(p, "/")
		}
	}
	return service.Origin{Scheme: scheme, Host: host, PathBase: pathBase}
}

func firstValue(h string) string {
	if i := strings.IndexByte(h, ','); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}
