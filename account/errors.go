// Package account defines Bifrost's account model: the type and
// writability metadata instructions declare for the accounts they touch,
// the on-chain wallet payload, and the mutable working-set view the
// executor hands to programs during a transaction.
package account

import "fmt"

type ErrorCode string

const (
	ErrArithmeticOverflow         ErrorCode = "ACCOUNT_ERR_ARITHMETIC_OVERFLOW"
	ErrMetaAccountCreation        ErrorCode = "ACCOUNT_ERR_META_CREATION"
	ErrMergeIncompatibleTypes     ErrorCode = "ACCOUNT_ERR_MERGE_INCOMPATIBLE_TYPES"
	ErrMissingAccounts            ErrorCode = "ACCOUNT_ERR_MISSING_ACCOUNTS"
	ErrModificationOfReadOnlyAcct ErrorCode = "ACCOUNT_ERR_READ_ONLY_MODIFICATION"
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

func accountErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
