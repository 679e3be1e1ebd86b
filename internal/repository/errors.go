// Package repository defines error types that are reused across
// multiple repositories.  These sentinel values let handlers
// distinguish failure scenarios and map them to HTTP statuses with
// errors.Is instead of inspecting strings.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot proceed
// because of dependent state, such as deleting a city that still has
// places or removing a room with active reservations.  Handlers
// translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrRoomUnavailable is returned when no room of the requested type
// is free for the requested date range.  It is a terminal business
// outcome, not a transient failure: retrying the same request is
// pointless until availability changes.
var ErrRoomUnavailable = errors.New("no room available for the requested dates")

// ErrInvalidTransition is returned when a reservation status change
// is not legal from the current state.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrBusy is returned when a booking transaction could not acquire
// its row locks within the database's lock-wait timeout or deadlocked
// against a concurrent booking.  No partial commit has occurred, so
// callers may safely retry with backoff.
var ErrBusy = errors.New("availability check busy, retry")

// mySQLLockWaitTimeout and mySQLDeadlock are the server error numbers
// InnoDB reports for lock contention.
const (
    mySQLLockWaitTimeout = 1205
    mySQLDeadlock        = 1213
)

// mySQLDuplicateEntry is the server error number for a unique index
// violation.
const mySQLDuplicateEntry = 1062

// mapLockErr converts InnoDB lock contention errors into ErrBusy and
// passes everything else through unchanged.
func mapLockErr(err error) error {
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        if me.Number == mySQLLockWaitTimeout || me.Number == mySQLDeadlock {
            return ErrBusy
        }
    }
    return err
}
