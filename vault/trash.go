package vault

import (
	"os"

	"bifrost.dev/node/wire"
)

// Trash catalogs obsolete byte ranges per segment file: the input
// compaction walks to decide which segments are worth reclaiming. Ranges
// are unique per file; inserting the same range twice is an error.
type Trash struct {
	byFile map[AccountFile]map[rangeKey]struct{}
}

func newTrash() *Trash {
	return &Trash{byFile: make(map[AccountFile]map[rangeKey]struct{})}
}

func loadOrCreateTrash(path string) (*Trash, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newTrash(), nil
	}
	if err != nil {
		return nil, vaultErrf(ErrFileSystem, "reading trash: %v", err)
	}
	return decodeTrash(b)
}

// insert enrolls loc's byte range as obsolete. Inserting the same range
// twice fails with DuplicateLocationInTrash rather than silently merging:
// the same byte range going stale twice means the index and trash have
// fallen out of sync somewhere upstream.
func (t *Trash) insert(loc AccountDiskLocation) error {
	set, ok := t.byFile[loc.File]
	if !ok {
		set = make(map[rangeKey]struct{})
		t.byFile[loc.File] = set
	}
	rk := rangeKey{Offset: loc.Offset, Size: loc.Size}
	if _, dup := set[rk]; dup {
		return vaultErrf(ErrDuplicateLocationTrash, "%s offset=%d size=%d already trashed", loc.File.FileName(), loc.Offset, loc.Size)
	}
	set[rk] = struct{}{}
	return nil
}

// obsoleteBytes sums the size of every range trashed for file.
func (t *Trash) obsoleteBytes(file AccountFile) uint64 {
	var total uint64
	for rk := range t.byFile[file] {
		total += rk.Size
	}
	return total
}

// files returns every AccountFile with at least one trashed range.
func (t *Trash) files() []AccountFile {
	files := make([]AccountFile, 0, len(t.byFile))
	for f := range t.byFile {
		files = append(files, f)
	}
	return files
}

// forget drops all trashed ranges recorded against file, used once the
// file itself has been deleted by compaction.
func (t *Trash) forget(file AccountFile) {
	delete(t.byFile, file)
}

// prune removes any AccountFile entry whose backing segment no longer
// exists on disk (idempotent cleanup after a crash between persist() and
// the segment delete it was supposed to follow).
func (t *Trash) prune(exists func(AccountFile) bool) {
	for f := range t.byFile {
		if !exists(f) {
			delete(t.byFile, f)
		}
	}
}

func (t *Trash) encode() []byte {
	w := wire.NewWriter()
	w.WriteU32(uint32(len(t.byFile)))
	for file, ranges := range t.byFile {
		w.WriteU64(file.Slot)
		w.WriteU64(file.ID)
		w.WriteU32(uint32(len(ranges)))
		for rk := range ranges {
			w.WriteU64(rk.Offset)
			w.WriteU64(rk.Size)
		}
	}
	return w.Bytes()
}

func decodeTrash(b []byte) (*Trash, error) {
	r := wire.NewReader(b)
	fileCount, err := r.ReadU32()
	if err != nil {
		return nil, vaultErrf(ErrFileSystem, "decoding trash: %v", err)
	}
	t := newTrash()
	for i := uint32(0); i < fileCount; i++ {
		slot, e1 := r.ReadU64()
		id, e2 := r.ReadU64()
		rangeCount, e3 := r.ReadU32()
		if err := firstErr(e1, e2, e3); err != nil {
			return nil, vaultErrf(ErrFileSystem, "decoding trash entry %d: %v", i, err)
		}
		file := AccountFile{Slot: slot, ID: id}
		for j := uint32(0); j < rangeCount; j++ {
			offset, e4 := r.ReadU64()
			size, e5 := r.ReadU64()
			if err := firstErr(e4, e5); err != nil {
				return nil, vaultErrf(ErrFileSystem, "decoding trash range %d/%d: %v", i, j, err)
			}
			if err := t.insert(AccountDiskLocation{File: file, Offset: offset, Size: size}); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
