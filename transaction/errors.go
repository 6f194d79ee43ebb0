// Package transaction assembles instructions into messages and
// transactions: the signed, self-contained units the validator admits,
// queues and executes.
package transaction

import "fmt"

type ErrorCode string

const (
	ErrNoSigners           ErrorCode = "TX_ERR_NO_SIGNERS"
	ErrWrongSignatureCount ErrorCode = "TX_ERR_WRONG_SIGNATURE_COUNT"
	ErrSignaturesMismatch  ErrorCode = "TX_ERR_SIGNATURES_MISMATCH"
	ErrUnexpectedSigner    ErrorCode = "TX_ERR_UNEXPECTED_SIGNER"
	ErrNoInstructions      ErrorCode = "TX_ERR_NO_INSTRUCTIONS"
	ErrNoAccounts          ErrorCode = "TX_ERR_NO_ACCOUNTS"
	ErrMalformedPayload    ErrorCode = "TX_ERR_MALFORMED_PAYLOAD"
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

func txErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
