package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID string, role string) string {
    t.Helper()
    claims := jwt.MapClaims{
        "sub":  userID,
        "role": role,
        "iat":  time.Now().Unix(),
        "exp":  time.Now().Add(time.Hour).Unix(),
    }
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    s, err := tok.SignedString([]byte(testSecret))
    require.NoError(t, err)
    return s
}

func runProtected(t *testing.T, token string, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    h := func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"ok": true}) }

    req := httptest.NewRequest(http.MethodGet, "/protected", nil)
    if token != "" {
        req.Header.Set("Authorization", "Bearer "+token)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    chain := h
    for i := len(mw) - 1; i >= 0; i-- {
        chain = mw[i](chain)
    }
    require.NoError(t, chain(c))
    return rec
}

func TestJWTAuthRejectsAnonymous(t *testing.T) {
    rec := runProtected(t, "", JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsBadSignature(t *testing.T) {
    claims := jwt.MapClaims{"sub": "1", "role": "USER", "exp": time.Now().Add(time.Hour).Unix()}
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    s, err := tok.SignedString([]byte("other-secret"))
    require.NoError(t, err)

    rec := runProtected(t, s, JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
    rec := runProtected(t, signToken(t, "42", "USER"), JWTAuth(testSecret))
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireManagerBlocksCustomer(t *testing.T) {
    rec := runProtected(t, signToken(t, "42", "USER"), JWTAuth(testSecret), RequireManager())
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireManagerAllowsStaff(t *testing.T) {
    for _, role := range []string{"ADMIN", "SUB_ADMIN"} {
        rec := runProtected(t, signToken(t, "1", role), JWTAuth(testSecret), RequireManager())
        assert.Equal(t, http.StatusOK, rec.Code, "role=%s", role)
    }
}

func TestRequireReserverAllowsAllRoles(t *testing.T) {
    for _, role := range []string{"ADMIN", "SUB_ADMIN", "USER"} {
        rec := runProtected(t, signToken(t, "1", role), JWTAuth(testSecret), RequireReserver())
        assert.Equal(t, http.StatusOK, rec.Code, "role=%s", role)
    }
}

func TestCurrentUserIDParsesClaimForms(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

    assert.Equal(t, uint64(0), CurrentUserID(c))
    c.Set("user_id", "42")
    assert.Equal(t, uint64(42), CurrentUserID(c))
    c.Set("user_id", float64(7))
    assert.Equal(t, uint64(7), CurrentUserID(c))
}
