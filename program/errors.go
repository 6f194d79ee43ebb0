// Package program implements Bifrost's fixed, built-in program table: the
// system program (balance transfers) and the testing program used to
// exercise the executor's conservation check.
package program

import (
	"fmt"

	"bifrost.dev/node/crypto"
)

type ErrorCode string

const (
	ErrMissingAccounts  ErrorCode = "PROGRAM_ERR_MISSING_ACCOUNTS"
	ErrInvalidPayload   ErrorCode = "PROGRAM_ERR_INVALID_PAYLOAD"
	ErrUnknownProgram   ErrorCode = "PROGRAM_ERR_UNKNOWN_PROGRAM"
	ErrAccountViolation ErrorCode = "PROGRAM_ERR_ACCOUNT_VIOLATION"
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

func programErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

func unknownProgram(key crypto.Pubkey) error {
	return programErr(ErrUnknownProgram, fmt.Sprintf("no program registered for %s", key))
}
