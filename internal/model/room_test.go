package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestValidRoomStatus(t *testing.T) {
    // Statuses arrive as raw request strings and are converted before
    // the check, as the handler does.
    for _, raw := range []string{"AVAILABLE", "BOOKED", "MAINTENANCE"} {
        status := RoomStatus(raw)
        assert.True(t, ValidRoomStatus(status), raw)
    }
    assert.False(t, ValidRoomStatus(RoomStatus("RESERVED")))
    assert.False(t, ValidRoomStatus(RoomStatus("")))
    assert.False(t, ValidRoomStatus(RoomStatus("available")))
}
