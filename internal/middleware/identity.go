package middleware

// identity.go holds helpers that read the authenticated identity back
// out of the Echo context.  JWTAuth stores raw claim values; these
// helpers normalize them for handlers and for rate-limit keying.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/model"
)

// CurrentUserID returns the authenticated user's ID, or 0 when the
// request carries no valid identity.  The sub claim round-trips
// through JSON so it may arrive as a string or a float64.
func CurrentUserID(c echo.Context) uint64 {
    switch v := c.Get("user_id").(type) {
    case string:
        if id, err := strconv.ParseUint(v, 10, 64); err == nil {
            return id
        }
    case float64:
        if v > 0 {
            return uint64(v)
        }
    }
    return 0
}

// CurrentRole returns the authenticated role, defaulting to "" for
// anonymous or malformed identities.
func CurrentRole(c echo.Context) model.Role {
    raw, _ := c.Get("role").(string)
    role, ok := model.ParseRole(raw)
    if !ok {
        return ""
    }
    return role
}

// rateKeyUser renders the identity for rate-limit keys.  Anonymous
// callers share the "anon" bucket per IP.
func rateKeyUser(c echo.Context) string {
    if id := CurrentUserID(c); id != 0 {
        return strconv.FormatUint(id, 10)
    }
    return "anon"
}
