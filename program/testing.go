package program

import (
	"bifrost.dev/node/crypto"
	"bifrost.dev/node/wire"
)

// TestingProgram is a built-in program that exists solely to violate
// prisms conservation on demand, so the executor's conservation check has
// something real to catch. Its id is a fixed off-curve key whose base58
// form reads "BifrostTestingSystemProgram11111111111111111".
var TestingProgram = crypto.Pubkey{
	159, 65, 158, 196, 5, 88, 89, 176, 224, 101, 212, 80, 151, 14, 225, 182,
	96, 196, 131, 59, 87, 252, 174, 1, 124, 135, 56, 32, 33, 180, 0, 0,
}

const testingInstructionBurnPrisms byte = 0

// EncodeBurnPrisms returns the payload for a TestingProgram BurnPrisms
// instruction.
func EncodeBurnPrisms(amount uint64) []byte {
	w := wire.NewWriter()
	w.WriteU8(testingInstructionBurnPrisms)
	w.WriteU64(amount)
	return w.Bytes()
}

// executeTesting runs the testing program: BurnPrisms subtracts amount
// from the payer and, unlike a transfer, never credits anyone. The
// executor's conservation check is what's supposed to catch this.
func executeTesting(accounts *Accounts, payload []byte) error {
	r := wire.NewReader(payload)
	discriminant, err := r.ReadU8()
	if err != nil {
		return programErr(ErrInvalidPayload, err.Error())
	}
	switch discriminant {
	case testingInstructionBurnPrisms:
		amount, err := r.ReadU64()
		if err != nil {
			return programErr(ErrInvalidPayload, err.Error())
		}
		payer, err := accounts.Next()
		if err != nil {
			return err
		}
		// No matching credit anywhere: the burned amount just vanishes.
		return payer.SubPrisms(amount)
	default:
		return programErr(ErrInvalidPayload, "unknown testing instruction")
	}
}
