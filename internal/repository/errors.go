// Package repository contains the data access layer for the sakila
// schema. This file defines error values shared across repositories.
// Sentinel errors let the service and handler layers distinguish
// failure scenarios without parsing driver messages: ErrConflict marks
// operations blocked by dependent rows (e.g. deleting a film whose
// copies are still rented out) and maps to HTTP 409, ErrForbidden marks
// operations on someone else's resource and maps to HTTP 403.
package repository

import "errors"

// ErrConflict is returned when a delete or update cannot proceed because
// of conflicting state, such as removing an inventory copy that is
// currently rented out.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as returning another customer's rental.
var ErrForbidden = errors.New("forbidden")
