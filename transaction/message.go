package transaction

import (
	"bifrost.dev/node/account"
	"bifrost.dev/node/crypto"
	"bifrost.dev/node/wire"
)

// Message is the unsigned body of a transaction: the slot it targets, the
// account metadata every instruction refers to (deduplicated and merged
// into one shared list), and the instructions compiled against that list.
type Message struct {
	Slot         uint64
	Accounts     []account.Meta
	Instructions []CompiledInstruction
}

// NewMessage starts an empty Message targeting slot.
func NewMessage(slot uint64) *Message {
	return &Message{Slot: slot}
}

// findOrAddAccount returns the index of meta's key within m.Accounts,
// merging meta into the existing entry if one is found, or appending a new
// entry otherwise.
func (m *Message) findOrAddAccount(meta account.Meta) (uint32, error) {
	for i := range m.Accounts {
		if m.Accounts[i].Key() == meta.Key() {
			if err := m.Accounts[i].Merge(meta); err != nil {
				return 0, err
			}
			return uint32(i), nil
		}
	}
	m.Accounts = append(m.Accounts, meta)
	return uint32(len(m.Accounts) - 1), nil
}

// AddInstruction compiles ix against the message's shared account list,
// resolving the program id and every referenced account to an index,
// merging metadata for accounts already present.
func (m *Message) AddInstruction(ix Instruction) error {
	programMeta, err := account.NewProgramMeta(ix.ProgramID)
	if err != nil {
		return err
	}
	programIdx, err := m.findOrAddAccount(programMeta)
	if err != nil {
		return err
	}

	accountIdx := make([]uint32, 0, len(ix.Accounts))
	for _, meta := range ix.Accounts {
		idx, err := m.findOrAddAccount(meta)
		if err != nil {
			return err
		}
		accountIdx = append(accountIdx, idx)
	}

	m.Instructions = append(m.Instructions, CompiledInstruction{
		ProgramAccountID: programIdx,
		Accounts:         accountIdx,
		Data:             ix.Data,
	})
	return nil
}

// GetPayer returns the key of the first signing account in the message:
// the account whose signature the validator treats as paying the
// transaction fee.
func (m *Message) GetPayer() (crypto.Pubkey, error) {
	for _, meta := range m.Accounts {
		if meta.IsSigning() {
			return meta.Key(), nil
		}
	}
	return crypto.Pubkey{}, txErr(ErrNoSigners, "message has no signing account to act as payer")
}

// IsValid reports whether the message has at least one instruction and at
// least one account, the only structural requirements a message must
// satisfy before it can be signed.
func (m *Message) IsValid() bool {
	return len(m.Instructions) > 0 && len(m.Accounts) > 0
}

// ToVec returns the canonical byte image of the message, the exact bytes
// that get signed and hashed.
func (m *Message) ToVec() []byte {
	w := wire.NewWriter()
	w.WriteU64(m.Slot)

	w.WriteU32(uint32(len(m.Accounts)))
	for _, meta := range m.Accounts {
		meta.EncodeTo(w)
	}

	w.WriteU32(uint32(len(m.Instructions)))
	for _, ci := range m.Instructions {
		w.WriteU32(ci.ProgramAccountID)
		w.WriteU32(uint32(len(ci.Accounts)))
		for _, idx := range ci.Accounts {
			w.WriteU32(idx)
		}
		w.WriteBytes(ci.Data)
	}

	return w.Bytes()
}

// decodeMessageFrom parses one Message written by ToVec, leaving the
// reader positioned just past it.
func decodeMessageFrom(r *wire.Reader) (Message, error) {
	slot, err := r.ReadU64()
	if err != nil {
		return Message{}, err
	}
	m := Message{Slot: slot}

	accountCount, err := r.ReadU32()
	if err != nil {
		return Message{}, err
	}
	for i := uint32(0); i < accountCount; i++ {
		meta, err := account.DecodeMetaFrom(r)
		if err != nil {
			return Message{}, err
		}
		m.Accounts = append(m.Accounts, meta)
	}

	ixCount, err := r.ReadU32()
	if err != nil {
		return Message{}, err
	}
	for i := uint32(0); i < ixCount; i++ {
		programIdx, err := r.ReadU32()
		if err != nil {
			return Message{}, err
		}
		accIdxCount, err := r.ReadU32()
		if err != nil {
			return Message{}, err
		}
		var accIdx []uint32
		for j := uint32(0); j < accIdxCount; j++ {
			idx, err := r.ReadU32()
			if err != nil {
				return Message{}, err
			}
			accIdx = append(accIdx, idx)
		}
		data, err := r.ReadBytes()
		if err != nil {
			return Message{}, err
		}
		ci := CompiledInstruction{ProgramAccountID: programIdx, Accounts: accIdx, Data: data}
		if err := ci.checkBounds(uint32(len(m.Accounts))); err != nil {
			return Message{}, err
		}
		m.Instructions = append(m.Instructions, ci)
	}
	return m, nil
}

// DecodeMessage parses the canonical byte image produced by ToVec. The
// whole buffer must be consumed; trailing bytes mean a tampered image.
func DecodeMessage(b []byte) (Message, error) {
	r := wire.NewReader(b)
	m, err := decodeMessageFrom(r)
	if err != nil {
		return Message{}, err
	}
	if !r.Done() {
		return Message{}, txErr(ErrMalformedPayload, "trailing bytes after message")
	}
	return m, nil
}
