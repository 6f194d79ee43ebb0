// Package crypto wraps ed25519 key material, signatures and the seed-based
// off-curve public key derivation Bifrost uses for program addresses.
package crypto

import "fmt"

type ErrorCode string

const (
	ErrNoOffcurveKeyForSeeds ErrorCode = "CRYPTO_ERR_NO_OFFCURVE_KEY"
	ErrTooManySeeds          ErrorCode = "CRYPTO_ERR_TOO_MANY_SEEDS"
	ErrWrongKeyLength        ErrorCode = "CRYPTO_ERR_WRONG_KEY_LENGTH"
	ErrWrongSignatureLength  ErrorCode = "CRYPTO_ERR_WRONG_SIGNATURE_LENGTH"
	ErrBase58Decoding        ErrorCode = "CRYPTO_ERR_BASE58_DECODING"
	ErrSignatureInvalid      ErrorCode = "CRYPTO_ERR_SIGNATURE_INVALID"
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

func cryptoErr(code ErrorCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}
