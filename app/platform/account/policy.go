package account

import (
	"time"

	"accounthub/app/database"
)

// MaxFailedAttempts is the per-lock-window strike threshold. The counter
// resets to zero the instant the account locks, so five strikes are
// measured per window, not over the account's lifetime.
const MaxFailedAttempts = 5

// LockState is the lock-relevant slice of a user row. Policy functions
// take and return values; callers persist the result.
type LockState struct {
	FailedAttempts int
	History        []time.Time
	Locked         bool
	LockUntil      *time.Time
}

func LockStateOf(u *database.User) LockState {
	return LockState{
		FailedAttempts: u.FailedLoginAttempts,
		History:        u.FailedLoginAttemptsHistory,
		Locked:         u.AccountLocked,
		LockUntil:      u.LockUntil,
	}
}

func (s LockState) ApplyTo(u *database.User) {
	u.FailedLoginAttempts = s.FailedAttempts
	u.FailedLoginAttemptsHistory = s.History
	u.AccountLocked = s.Locked
	u.LockUntil = s.LockUntil
}

// RecordFailedAttempt increments the counter and appends now to the
// attempt history. Reaching the threshold locks the account for lockFor
// and resets the counter. A counter already at or past the threshold
// (possible if a lock failed to persist) locks on this attempt instead
// of growing without bound.
func RecordFailedAttempt(s LockState, now time.Time, lockFor time.Duration) LockState {
	next := s
	next.History = append(append([]time.Time(nil), s.History...), now)
	next.FailedAttempts = s.FailedAttempts + 1

	if next.FailedAttempts >= MaxFailedAttempts {
		until := now.Add(lockFor)
		next.Locked = true
		next.LockUntil = &until
		next.FailedAttempts = 0
	}

	return next
}

func IsLocked(s LockState, now time.Time) bool {
	return s.Locked && s.LockUntil != nil && s.LockUntil.After(now)
}

// RemainingLockMinutes reports how long until the lock window ends,
// rounded up to whole minutes. Zero when no lock deadline is set.
func RemainingLockMinutes(s LockState, now time.Time) int {
	if s.LockUntil == nil {
		return 0
	}

	remaining := s.LockUntil.Sub(now)
	if remaining <= 0 {
		return 0
	}

	return int((remaining + time.Minute - 1) / time.Minute)
}

// Unlock clears the lock and the counter. Idempotent: unlocking an
// already-unlocked state yields the same state.
func Unlock(s LockState) LockState {
	next := s
	next.Locked = false
	next.FailedAttempts = 0
	next.LockUntil = nil
	return next
}
