package pricing

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
    n, err := Nights(date(2024, 6, 1), date(2024, 6, 3))
    require.NoError(t, err)
    assert.Equal(t, 2, n)

    n, err = Nights(date(2024, 6, 1), date(2024, 6, 2))
    require.NoError(t, err)
    assert.Equal(t, 1, n)

    // time-of-day noise is truncated before counting
    n, err = Nights(
        time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC),
        time.Date(2024, 6, 3, 1, 0, 0, 0, time.UTC),
    )
    require.NoError(t, err)
    assert.Equal(t, 2, n)

    _, err = Nights(date(2024, 6, 3), date(2024, 6, 3))
    assert.ErrorIs(t, err, ErrInvalidRange)

    _, err = Nights(date(2024, 6, 3), date(2024, 6, 1))
    assert.ErrorIs(t, err, ErrInvalidRange)
}

// Room at $100/night, 2024-06-01 to 2024-06-03: two nights, $200.
func TestHotelTotalCents(t *testing.T) {
    total, err := HotelTotalCents(10000, date(2024, 6, 1), date(2024, 6, 3))
    require.NoError(t, err)
    assert.Equal(t, int64(20000), total)

    _, err = HotelTotalCents(10000, date(2024, 6, 3), date(2024, 6, 3))
    assert.ErrorIs(t, err, ErrInvalidRange)
}

// Trip priced $50 per guest, 3 guests: $150.
func TestTripTotalCents(t *testing.T) {
    assert.Equal(t, int64(15000), TripTotalCents(5000, 3))
    assert.Equal(t, int64(0), TripTotalCents(5000, 0))
}
