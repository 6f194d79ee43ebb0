package program

import "bifrost.dev/node/crypto"

// Dispatch routes an instruction's payload to the program identified by
// id, passing it a cursor over the accounts the instruction declared.
func Dispatch(id crypto.Pubkey, accounts *Accounts, payload []byte) error {
	switch id {
	case SystemProgram:
		return executeSystem(accounts, payload)
	case TestingProgram:
		return executeTesting(accounts, payload)
	default:
		return unknownProgram(id)
	}
}
