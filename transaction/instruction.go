package transaction

import (
	"fmt"

	"bifrost.dev/node/account"
	"bifrost.dev/node/crypto"
)

// Instruction is the user-facing description of one call into a program:
// which program, which accounts it touches, and the opaque payload the
// program will decode. It is compiled into a CompiledInstruction once its
// accounts are folded into a Message's shared account list.
type Instruction struct {
	ProgramID crypto.Pubkey
	Accounts  []account.Meta
	Data      []byte
}

// NewInstruction builds an Instruction from a program id, account list and
// a pre-serialized payload.
func NewInstruction(programID crypto.Pubkey, accounts []account.Meta, data []byte) Instruction {
	return Instruction{ProgramID: programID, Accounts: accounts, Data: data}
}

// CompiledInstruction is an Instruction after its accounts (and program
// id) have been resolved to indices into the owning Message's account
// list, the form that actually gets wire-encoded and hashed.
type CompiledInstruction struct {
	ProgramAccountID uint32
	Accounts         []uint32
	Data             []byte
}

// checkBounds verifies every index the compiled instruction carries falls
// inside the owning message's account table.
func (ci CompiledInstruction) checkBounds(accountCount uint32) error {
	if ci.ProgramAccountID >= accountCount {
		return txErr(ErrMalformedPayload, fmt.Sprintf("program index %d out of range (%d accounts)", ci.ProgramAccountID, accountCount))
	}
	for _, idx := range ci.Accounts {
		if idx >= accountCount {
			return txErr(ErrMalformedPayload, fmt.Sprintf("account index %d out of range (%d accounts)", idx, accountCount))
		}
	}
	return nil
}
