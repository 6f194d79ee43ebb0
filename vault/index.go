package vault

import (
	"os"
	"path/filepath"

	"bifrost.dev/node/crypto"
	"bifrost.dev/node/wire"
)

// Index is the in-memory map from a public key to its current on-disk
// location. It is the vault's one source of truth for "where is this
// account right now".
type Index struct {
	accounts map[crypto.Pubkey]AccountDiskLocation
}

func newIndex() *Index {
	return &Index{accounts: make(map[crypto.Pubkey]AccountDiskLocation)}
}

// loadOrCreateIndex reads the index blob at path, or returns an empty
// Index if the file does not exist.
func loadOrCreateIndex(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newIndex(), nil
	}
	if err != nil {
		return nil, vaultErrf(ErrFileSystem, "reading index: %v", err)
	}
	return decodeIndex(b)
}

func (idx *Index) find(key crypto.Pubkey) (AccountDiskLocation, bool) {
	loc, ok := idx.accounts[key]
	return loc, ok
}

func (idx *Index) set(key crypto.Pubkey, loc AccountDiskLocation) {
	idx.accounts[key] = loc
}

// accountsOnFile returns every key currently indexed into the given
// segment file, used by compaction to decide what must be relocated
// before the file can be deleted.
func (idx *Index) accountsOnFile(file AccountFile) []crypto.Pubkey {
	var keys []crypto.Pubkey
	for key, loc := range idx.accounts {
		if loc.File == file {
			keys = append(keys, key)
		}
	}
	return keys
}

func (idx *Index) encode() []byte {
	w := wire.NewWriter()
	w.WriteU32(uint32(len(idx.accounts)))
	for key, loc := range idx.accounts {
		w.WriteRaw(key[:])
		w.WriteU64(loc.File.Slot)
		w.WriteU64(loc.File.ID)
		w.WriteU64(loc.Offset)
		w.WriteU64(loc.Size)
	}
	return w.Bytes()
}

func decodeIndex(b []byte) (*Index, error) {
	r := wire.NewReader(b)
	count, err := r.ReadU32()
	if err != nil {
		return nil, vaultErrf(ErrFileSystem, "decoding index: %v", err)
	}
	idx := newIndex()
	for i := uint32(0); i < count; i++ {
		keyBytes, err := r.ReadRaw(crypto.PubkeySize)
		if err != nil {
			return nil, vaultErrf(ErrFileSystem, "decoding index entry %d: %v", i, err)
		}
		key, err := crypto.PubkeyFromBytes(keyBytes)
		if err != nil {
			return nil, err
		}
		slot, err1 := r.ReadU64()
		id, err2 := r.ReadU64()
		offset, err3 := r.ReadU64()
		size, err4 := r.ReadU64()
		if err := firstErr(err1, err2, err3, err4); err != nil {
			return nil, vaultErrf(ErrFileSystem, "decoding index entry %d: %v", i, err)
		}
		idx.set(key, AccountDiskLocation{File: AccountFile{Slot: slot, ID: id}, Offset: offset, Size: size})
	}
	return idx, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func indexPath(root string) string {
	return filepath.Join(root, "index")
}
