package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"
    at, err := NewAccessToken(secret, 42, "SUB_ADMIN", 15)
    require.NoError(t, err)
    assert.True(t, at.Exp.After(time.Now().UTC()))

    tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "SUB_ADMIN", claims["role"])
}

func TestRefreshTokenHashing(t *testing.T) {
    rt, err := NewRefreshToken(7)
    require.NoError(t, err)
    assert.Len(t, rt.Raw, 96) // 48 random bytes hex-encoded

    h1 := HashRefreshRaw(rt.Raw)
    h2 := HashRefreshRaw(rt.Raw)
    assert.Equal(t, h1, h2)
    assert.NotEqual(t, rt.Raw, h1)

    other, err := NewRefreshToken(7)
    require.NoError(t, err)
    assert.NotEqual(t, HashRefreshRaw(other.Raw), h1)
}

func TestVerifyPassword(t *testing.T) {
    hash, err := HashPassword("hunter2", 4) // minimal cost keeps the test fast
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "hunter2"))
    assert.False(t, VerifyPassword(hash, "hunter3"))
}
