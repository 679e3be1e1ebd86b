package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestCanDecide(t *testing.T) {
    cases := []struct {
        from, to ReservationStatus
        want     bool
    }{
        {StatusPending, StatusConfirmed, true},
        {StatusPending, StatusCancelled, true},
        {StatusConfirmed, StatusCancelled, true}, // admin override
        {StatusConfirmed, StatusConfirmed, false},
        {StatusConfirmed, StatusPending, false},
        {StatusCancelled, StatusConfirmed, false},
        {StatusCancelled, StatusCancelled, false},
        {StatusPending, StatusPending, false},
    }
    for _, tc := range cases {
        assert.Equal(t, tc.want, CanDecide(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
    }
}

func TestCanCancelOwn(t *testing.T) {
    assert.True(t, CanCancelOwn(StatusPending))
    assert.False(t, CanCancelOwn(StatusConfirmed))
    assert.False(t, CanCancelOwn(StatusCancelled))
}

func TestParseReservationStatus(t *testing.T) {
    for raw, want := range map[string]ReservationStatus{
        "PENDING":     StatusPending,
        "confirmed":   StatusConfirmed,
        " cancelled ": StatusCancelled,
    } {
        got, ok := ParseReservationStatus(raw)
        assert.True(t, ok, raw)
        assert.Equal(t, want, got)
    }
    _, ok := ParseReservationStatus("HELD")
    assert.False(t, ok)
}
