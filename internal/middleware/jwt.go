package middleware

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/voyago/travel-reservation/internal/model"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and stores the subject and role claims in the request context
// under "user_id" and "role".  The provided secret must match the one
// used when issuing tokens.  Handlers behind this middleware read the
// identity back with CurrentUserID and CurrentRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                // only HS256 tokens are ever issued
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            c.Set("user_id", claims["sub"])
            c.Set("role", claims["role"])
            return next(c)
        }
    }
}

// RequireReserver aborts with 403 unless the authenticated role may
// create reservations.
func RequireReserver() echo.MiddlewareFunc {
    return requireCapability(model.Role.CanReserve)
}

// RequireManager aborts with 403 unless the authenticated role may
// use the staff surface.  Capability is derived from the role claim
// on every request, never persisted.
func RequireManager() echo.MiddlewareFunc {
    return requireCapability(model.Role.CanManage)
}

func requireCapability(check func(model.Role) bool) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, _ := c.Get("role").(string)
            role, ok := model.ParseRole(raw)
            if !ok || !check(role) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
