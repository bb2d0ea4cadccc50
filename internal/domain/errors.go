package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Kind classifies a failure so callers can branch without inspecting messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindDuplicateName
	KindCycle
	KindProtected
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicateName:
		return "duplicate_name"
	case KindCycle:
		return "cycle"
	case KindProtected:
		return "protected_folder"
	case KindStorage:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
	ErrCycle      = errors.New("would create a cycle")
	ErrProtected  = errors.New("protected folder")
	ErrStorage    = errors.New("storage failure")
)

type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError represents a sibling name collision, carrying the id of the
// folder that already holds the name.
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   int64
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) StatusCode() int      { return http.StatusConflict }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// CycleError reports a move that would place a folder under itself.
type CycleError struct {
	FolderID int64
	TargetID int64
}

func (e *CycleError) Error() string {
	if e.FolderID == e.TargetID {
		return fmt.Sprintf("cannot move folder %d into itself", e.FolderID)
	}
	return fmt.Sprintf("cannot move folder %d into its descendant %d", e.FolderID, e.TargetID)
}
func (e *CycleError) StatusCode() int      { return http.StatusConflict }
func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// ProtectedFolderError is returned for any attempt to delete, move or rename
// the default folder.
type ProtectedFolderError struct {
	FolderID int64
	Op       string
}

func (e *ProtectedFolderError) Error() string {
	return fmt.Sprintf("cannot %s the default folder (id %d)", e.Op, e.FolderID)
}
func (e *ProtectedFolderError) StatusCode() int      { return http.StatusForbidden }
func (e *ProtectedFolderError) Is(target error) bool { return target == ErrProtected }

// StorageError wraps a persistence engine failure. The underlying error is
// kept for logging and is reachable through errors.Unwrap.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err as a storage failure of the given operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrStorage.Error()
	}
	return e.Op + ": " + e.Err.Error()
}
func (e *StorageError) Unwrap() error        { return e.Err }
func (e *StorageError) StatusCode() int      { return http.StatusInternalServerError }
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// KindOf returns the kind of err. Storage is checked last so that a business
// error wrapped by a storage layer keeps its own kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindDuplicateName
	case errors.Is(err, ErrCycle):
		return KindCycle
	case errors.Is(err, ErrProtected):
		return KindProtected
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindUnknown
	}
}
