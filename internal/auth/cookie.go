package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// SetSessionCookie attaches the session token to the response. HttpOnly and
// Path=/ keep the token opaque to client-side script and valid site-wide;
// SameSite=None (which requires Secure) lets the dashboard call the API from
// another origin.
func SetSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// ClearSessionCookie expires the session cookie client-side. Tokens are
// stateless, so this is the only revocation logout performs; a captured token
// remains valid until its natural expiry.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// SessionTokenFromRequest extracts the session token from the request.
// Absence is the anonymous state, not an error.
func SessionTokenFromRequest(c *fiber.Ctx) string {
	return c.Cookies(SessionCookieName)
}
