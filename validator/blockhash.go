package validator

import "github.com/mr-tron/base58"

const BlockHashSize = 64

// BlockHash is the SHA-512 digest identifying a finalized block or, for
// the genesis block, the fixed parent constant it points at.
type BlockHash [BlockHashSize]byte

func BlockHashFromBytes(b []byte) (BlockHash, error) {
	var h BlockHash
	if len(b) != BlockHashSize {
		return h, validatorErrf(ErrWrongHashLength, "expected %d bytes, got %d", BlockHashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func ParseBlockHash(s string) (BlockHash, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return BlockHash{}, validatorErrf(ErrHashParse, "%v", err)
	}
	return BlockHashFromBytes(b)
}

func (h BlockHash) String() string {
	return base58.Encode(h[:])
}

func (h BlockHash) Bytes() []byte {
	return h[:]
}
