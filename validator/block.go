package validator

import (
	"crypto/sha512"
	"encoding/binary"

	"bifrost.dev/node/crypto"
)

// GenesisParent is the fixed base58 parent hash every Bifrost chain
// descends from. It has no corresponding block; it exists only so the
// genesis block has a well-defined Parent field.
const GenesisParent = "4n1FyWzYPeGUndCLBAaWVMKZ5gCv1EJvgKwTrLSpnz8uJQ7E3zdhTXaFg4UaiLP9aPK5dmccZK2qKfZjYgc16kzd"

// Block is one finalized slot: its own hash, its parent's hash, the slot
// number, and the signatures of every transaction committed during that
// slot.
type Block struct {
	Hash         BlockHash
	Parent       BlockHash
	Slot         uint64
	Transactions []crypto.Signature
}

// Genesis returns the chain's starting block: slot 1, a zero hash, and
// GenesisParent as its parent.
func Genesis() (*Block, error) {
	parent, err := ParseBlockHash(GenesisParent)
	if err != nil {
		return nil, err
	}
	return &Block{Parent: parent, Slot: 1}, nil
}

// Equal reports whether b and other identify the same block: hash
// equality is block equality.
func (b *Block) Equal(other *Block) bool {
	return b.Hash == other.Hash
}

// AddTransaction records sig as committed during this block's slot.
func (b *Block) AddTransaction(sig crypto.Signature) {
	b.Transactions = append(b.Transactions, sig)
}

// computeHash is SHA-512(parent || slot as little-endian u64 || every
// transaction signature concatenated in commit order).
func computeHash(parent BlockHash, slot uint64, txs []crypto.Signature) BlockHash {
	h := sha512.New()
	h.Write(parent[:])
	var slotBytes [8]byte
	binary.LittleEndian.PutUint64(slotBytes[:], slot)
	h.Write(slotBytes[:])
	for _, sig := range txs {
		h.Write(sig[:])
	}
	var out BlockHash
	copy(out[:], h.Sum(nil))
	return out
}

// Finalize computes this block's hash over its current transactions,
// returns a snapshot of the block as it stood at that moment (hash set,
// transactions intact), then advances the live block to the next slot
// with an empty transaction list and this hash as its new parent.
func (b *Block) Finalize() Block {
	hash := computeHash(b.Parent, b.Slot, b.Transactions)

	emitted := Block{
		Hash:         hash,
		Parent:       b.Parent,
		Slot:         b.Slot,
		Transactions: b.Transactions,
	}

	b.Slot++
	b.Transactions = nil
	b.Parent = hash

	return emitted
}
