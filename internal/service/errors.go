package service

import "fmt"

// ConflictError: the operator tried to open a session while one is already
// active. Not retried — the caller must close the existing session first.
type ConflictError struct {
	Operador string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ya existe una caja abierta para el operador %s", e.Operador)
}

// StateError: an operation was attempted on a session in the wrong state
// (closing a non-active session, acting on a closed one). Hard stop.
type StateError struct {
	Motivo string
}

func (e *StateError) Error() string { return e.Motivo }

// DataUnavailableError: an underlying query failed or timed out. The whole
// reconciliation is aborted — a silently wrong balance is worse than a visible
// failure, so partial totals are never returned.
type DataUnavailableError struct {
	Consulta string
	Err      error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("consulta %s no disponible: %v", e.Consulta, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }
