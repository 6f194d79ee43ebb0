package vault

import "fmt"

// AccountFile identifies one segment file on disk: `<slot>.<id>` under the
// vault's accounts directory.
type AccountFile struct {
	Slot uint64
	ID   uint64
}

func (f AccountFile) FileName() string {
	return fmt.Sprintf("%d.%d", f.Slot, f.ID)
}

// AccountDiskLocation identifies a byte range holding one serialized
// account record within a segment file.
type AccountDiskLocation struct {
	File   AccountFile
	Offset uint64
	Size   uint64
}

// rangeKey is the (offset, size) half of an AccountDiskLocation, used as
// the dedup key within a single Trash bucket.
type rangeKey struct {
	Offset uint64
	Size   uint64
}
