package program

import (
	"bifrost.dev/node/crypto"
	"bifrost.dev/node/wire"
)

// SystemProgram is the id of Bifrost's built-in transfer program: a
// fixed, off-curve key whose base58 form reads
// "BifrostSystemProgram111111111111111111111114".
var SystemProgram = crypto.Pubkey{
	159, 65, 158, 196, 5, 83, 96, 13, 242, 56, 2, 138, 167, 225, 20, 157,
	169, 199, 82, 249, 248, 91, 220, 170, 46, 53, 235, 98, 98, 0, 0, 3,
}

const systemInstructionTransfer byte = 0

// EncodeTransfer returns the payload for a SystemProgram Transfer
// instruction moving amount prisms from the first account the program
// receives to the second.
func EncodeTransfer(amount uint64) []byte {
	w := wire.NewWriter()
	w.WriteU8(systemInstructionTransfer)
	w.WriteU64(amount)
	return w.Bytes()
}

// executeSystem runs the system program against accounts with the given
// payload: accounts[0] is the payer (must be a signer), accounts[1] is the
// receiver.
func executeSystem(accounts *Accounts, payload []byte) error {
	r := wire.NewReader(payload)
	discriminant, err := r.ReadU8()
	if err != nil {
		return programErr(ErrInvalidPayload, err.Error())
	}
	switch discriminant {
	case systemInstructionTransfer:
		return executeTransfer(accounts, r)
	default:
		return programErr(ErrInvalidPayload, "unknown system instruction")
	}
}

func executeTransfer(accounts *Accounts, r *wire.Reader) error {
	amount, err := r.ReadU64()
	if err != nil {
		return programErr(ErrInvalidPayload, err.Error())
	}

	payer, err := accounts.Next()
	if err != nil {
		return err
	}
	if !payer.IsSigner {
		return programErr(ErrAccountViolation, "transfer payer must sign the transaction")
	}
	receiver, err := accounts.Next()
	if err != nil {
		return err
	}

	if err := payer.SubPrisms(amount); err != nil {
		return err
	}
	if err := receiver.AddPrisms(amount); err != nil {
		return err
	}
	return nil
}
