// Package validator ties the vault, the transaction pipeline and the
// built-in programs together into a running node: a transaction queue, an
// executor loop that applies transactions to a working set under a
// conservation check, and the append-only chain of finalized blocks.
package validator

import "fmt"

type ErrorCode string

const (
	ErrInvalidTransactionSignatures ErrorCode = "VALIDATOR_ERR_INVALID_TX_SIGNATURES"
	ErrPrismTotalChanged            ErrorCode = "VALIDATOR_ERR_PRISM_TOTAL_CHANGED"
	ErrSendMessage                  ErrorCode = "VALIDATOR_ERR_SEND_MESSAGE"
	ErrVaultLock                    ErrorCode = "VALIDATOR_ERR_VAULT_LOCK"
	ErrWrongHashLength              ErrorCode = "VALIDATOR_ERR_WRONG_HASH_LENGTH"
	ErrHashParse                    ErrorCode = "VALIDATOR_ERR_HASH_PARSE"
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

func validatorErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

func validatorErrf(code ErrorCode, format string, args ...any) error {
	return validatorErr(code, fmt.Sprintf(format, args...))
}
