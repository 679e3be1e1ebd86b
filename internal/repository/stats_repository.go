package repository

import (
    "context"
    "database/sql"
)

// DashboardStats aggregates the counters shown on the staff dashboard.
type DashboardStats struct {
    Users                int64 `json:"users"`
    Hotels               int64 `json:"hotels"`
    Trips                int64 `json:"trips"`
    PendingReservations  int64 `json:"pending_reservations"`
    ConfirmedRevenue     int64 `json:"confirmed_revenue_cents"`
    TripConfirmedRevenue int64 `json:"trip_confirmed_revenue_cents"`
}

// GuestStats aggregates the public catalog counters shown to
// unauthenticated visitors.
type GuestStats struct {
    Countries  int64 `json:"countries"`
    Cities     int64 `json:"cities"`
    Places     int64 `json:"places"`
    Activities int64 `json:"activities"`
    Hotels     int64 `json:"hotels"`
    Trips      int64 `json:"trips"`
}

// StatsRepo answers aggregate dashboard queries.  Counts are cheap
// enough to run per request; the handler layer fronts them with the
// shared response cache.
type StatsRepo struct {
    db *sql.DB
}

// NewStatsRepo constructs a StatsRepo with the provided DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Dashboard collects the current counters in one round of queries.
func (r *StatsRepo) Dashboard(ctx context.Context) (*DashboardStats, error) {
    var s DashboardStats
    steps := []struct {
        query string
        dest  *int64
    }{
        {`SELECT COUNT(*) FROM users`, &s.Users},
        {`SELECT COUNT(*) FROM hotels`, &s.Hotels},
        {`SELECT COUNT(*) FROM trips`, &s.Trips},
        {`SELECT COUNT(*) FROM reservations WHERE status = 'PENDING'`, &s.PendingReservations},
        {`SELECT COALESCE(SUM(total_price_cents), 0) FROM reservations WHERE status = 'CONFIRMED'`, &s.ConfirmedRevenue},
        {`SELECT COALESCE(SUM(total_price_cents), 0) FROM trip_reservations WHERE status = 'CONFIRMED'`, &s.TripConfirmedRevenue},
    }
    for _, st := range steps {
        if err := r.db.QueryRowContext(ctx, st.query).Scan(st.dest); err != nil {
            return nil, err
        }
    }
    return &s, nil
}

// GuestCounts collects the catalog counters for the public landing
// surface.
func (r *StatsRepo) GuestCounts(ctx context.Context) (*GuestStats, error) {
    var s GuestStats
    steps := []struct {
        query string
        dest  *int64
    }{
        {`SELECT COUNT(*) FROM countries`, &s.Countries},
        {`SELECT COUNT(*) FROM cities`, &s.Cities},
        {`SELECT COUNT(*) FROM places`, &s.Places},
        {`SELECT COUNT(*) FROM activities`, &s.Activities},
        {`SELECT COUNT(*) FROM hotels`, &s.Hotels},
        {`SELECT COUNT(*) FROM trips`, &s.Trips},
    }
    for _, st := range steps {
        if err := r.db.QueryRowContext(ctx, st.query).Scan(st.dest); err != nil {
            return nil, err
        }
    }
    return &s, nil
}
