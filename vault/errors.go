// Package vault implements Bifrost's log-structured account store: an
// append-only sequence of segment files per slot, an in-memory index
// mapping public keys to byte ranges, and a trash/compaction cycle that
// reclaims space from overwritten accounts.
package vault

import "fmt"

type ErrorCode string

const (
	ErrIndexFileNotFound      ErrorCode = "VAULT_ERR_INDEX_FILE_NOT_FOUND"
	ErrTrashFileNotFound      ErrorCode = "VAULT_ERR_TRASH_FILE_NOT_FOUND"
	ErrOutOfBounds            ErrorCode = "VAULT_ERR_OUT_OF_BOUNDS"
	ErrDuplicateLocationTrash ErrorCode = "VAULT_ERR_DUPLICATE_LOCATION_IN_TRASH"
	ErrFileSystem             ErrorCode = "VAULT_ERR_FILESYSTEM"
	ErrResourceLock           ErrorCode = "VAULT_ERR_RESOURCE_LOCK"
)

type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Msg == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func vaultErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

func vaultErrf(code ErrorCode, format string, args ...any) error {
	return vaultErr(code, fmt.Sprintf(format, args...))
}
