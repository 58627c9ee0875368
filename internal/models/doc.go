// Package models defines the core domain models for Caddie.
//
// # Models
//
//   - Club: A golf club in the bag with its recorded shot history
//   - Shot: A single recorded swing (distance plus context)
//   - Coordinate: A GPS fix used as a shot's start or end pin
//
// # Design Principles
//
// 1. **Value semantics**: Club operations return a new Club and never mutate the receiver
// 2. **One unit**: Shot distances are always stored in yards; GPS meters are converted at the boundary
// 3. **Derived statistics**: Average yardage is computed from shots, never stored
// 4. **Sentinel errors**: Validation failures are reported with the Err* values below and leave state unchanged
package models

import "errors"

var (
	// ErrEmptyName is returned when a club is created without a name.
	ErrEmptyName = errors.New("club name must not be empty")

	// ErrInvalidYardage is returned when a supplied yardage is not a non-negative integer.
	ErrInvalidYardage = errors.New("yardage must be a non-negative integer")

	// ErrNonPositiveDistance is returned when a shot with distance <= 0 is appended.
	ErrNonPositiveDistance = errors.New("shot distance must be positive")

	// ErrHoleOutOfRange is returned when a shot's hole is set but outside 1-18.
	ErrHoleOutOfRange = errors.New("hole must be between 1 and 18")

	// ErrShotNumberOutOfRange is returned when a shot number is set but outside 1-10.
	ErrShotNumberOutOfRange = errors.New("shot number must be between 1 and 10")

	// ErrUnknownSource is returned when a shot's source is neither manual nor gps.
	ErrUnknownSource = errors.New("shot source must be manual or gps")
)
