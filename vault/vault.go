package vault

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"bifrost.dev/node/account"
	"bifrost.dev/node/crypto"
)

// DefaultMaxSegmentSize is the production segment-rotation threshold.
const DefaultMaxSegmentSize = 10 * 1024 * 1024

const (
	accountsDir     = "accounts"
	transactionsDir = "transactions"
	blocksDir       = "blocks"
)

var segmentFileRe = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// Vault is Bifrost's account store: a log-structured sequence of segment
// files per slot, guarded by a reader-writer lease. Get takes a shared
// lease; Save, Persist and Compact take an exclusive one, so segment
// rotation and compaction never race with each other or with a read.
type Vault struct {
	mu sync.RWMutex

	root           string
	maxSegmentSize uint64
	index          *Index
	trash          *Trash
	activeID       map[uint64]uint64 // slot -> current segment id
	activeSize     map[AccountFile]uint64
}

// LoadOrCreate opens the vault rooted at dir, creating its directory
// layout and an empty Index/Trash if this is the first run.
func LoadOrCreate(dir string, maxSegmentSize uint64) (*Vault, error) {
	if maxSegmentSize == 0 {
		maxSegmentSize = DefaultMaxSegmentSize
	}
	for _, sub := range []string{accountsDir, transactionsDir, blocksDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, vaultErrf(ErrFileSystem, "creating %s: %v", sub, err)
		}
	}
	idx, err := loadOrCreateIndex(indexPath(dir))
	if err != nil {
		return nil, err
	}
	trash, err := loadOrCreateTrash(trashPath(dir))
	if err != nil {
		return nil, err
	}
	v := &Vault{
		root:           dir,
		maxSegmentSize: maxSegmentSize,
		index:          idx,
		trash:          trash,
		activeID:       make(map[uint64]uint64),
		activeSize:     make(map[AccountFile]uint64),
	}
	if err := v.scanExistingSegments(); err != nil {
		return nil, err
	}
	v.trash.prune(v.segmentExists)
	return v, nil
}

// scanExistingSegments derives each slot's next segment id and every
// existing segment's current size by listing the accounts directory,
// so a reopened vault resumes append where it left off.
func (v *Vault) scanExistingSegments() error {
	entries, err := os.ReadDir(filepath.Join(v.root, accountsDir))
	if err != nil {
		return vaultErrf(ErrFileSystem, "listing accounts dir: %v", err)
	}
	for _, entry := range entries {
		m := segmentFileRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		slot, _ := strconv.ParseUint(m[1], 10, 64)
		id, _ := strconv.ParseUint(m[2], 10, 64)
		if cur, ok := v.activeID[slot]; !ok || id > cur {
			v.activeID[slot] = id
		}
		info, err := entry.Info()
		if err != nil {
			return vaultErrf(ErrFileSystem, "stat %s: %v", entry.Name(), err)
		}
		v.activeSize[AccountFile{Slot: slot, ID: id}] = uint64(info.Size())
	}
	return nil
}

func (v *Vault) segmentExists(file AccountFile) bool {
	_, err := os.Stat(v.segmentPath(file))
	return err == nil
}

func (v *Vault) segmentPath(file AccountFile) string {
	return filepath.Join(v.root, accountsDir, file.FileName())
}

// Get looks up key in the Index and returns its Wallet, or the zero
// Wallet if the key has never been saved.
func (v *Vault) Get(key crypto.Pubkey) (account.Wallet, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.getLocked(key)
}

func (v *Vault) getLocked(key crypto.Pubkey) (account.Wallet, error) {
	loc, ok := v.index.find(key)
	if !ok {
		return account.Wallet{}, nil
	}
	return v.readAt(loc)
}

func (v *Vault) readAt(loc AccountDiskLocation) (account.Wallet, error) {
	f, err := os.Open(v.segmentPath(loc.File))
	if err != nil {
		return account.Wallet{}, vaultErrf(ErrFileSystem, "opening %s: %v", loc.File.FileName(), err)
	}
	defer f.Close()

	buf := make([]byte, loc.Size)
	if _, err := f.ReadAt(buf, int64(loc.Offset)); err != nil {
		return account.Wallet{}, vaultErrf(ErrOutOfBounds, "reading %s at %d+%d: %v", loc.File.FileName(), loc.Offset, loc.Size, err)
	}
	return account.DecodeWallet(buf)
}

// Save writes wallet's serialized form to the active segment for slot,
// trashes key's previous location (if any), and installs the new one in
// the Index.
func (v *Vault) Save(key crypto.Pubkey, wallet account.Wallet, slot uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if prev, ok := v.index.find(key); ok {
		if err := v.trash.insert(prev); err != nil {
			return err
		}
	}

	data := wallet.Encode()
	loc, err := v.appendLocked(slot, data)
	if err != nil {
		return err
	}
	v.index.set(key, loc)
	return nil
}

// appendLocked writes data to the active segment for slot, rolling to a
// new segment id first if an earlier append already left the active
// segment over maxSegmentSize.
func (v *Vault) appendLocked(slot uint64, data []byte) (AccountDiskLocation, error) {
	id := v.activeID[slot]
	file := AccountFile{Slot: slot, ID: id}
	size := v.activeSize[file]

	if size > v.maxSegmentSize {
		id++
		v.activeID[slot] = id
		file = AccountFile{Slot: slot, ID: id}
		size = 0
	}

	f, err := os.OpenFile(v.segmentPath(file), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return AccountDiskLocation{}, vaultErrf(ErrFileSystem, "opening %s: %v", file.FileName(), err)
	}
	defer f.Close()

	n, err := f.Write(data)
	if err != nil {
		return AccountDiskLocation{}, vaultErrf(ErrFileSystem, "appending to %s: %v", file.FileName(), err)
	}
	if err := f.Sync(); err != nil {
		return AccountDiskLocation{}, vaultErrf(ErrFileSystem, "fsync %s: %v", file.FileName(), err)
	}

	loc := AccountDiskLocation{File: file, Offset: size, Size: uint64(n)}
	v.activeSize[file] = size + uint64(n)
	return loc, nil
}

// Persist writes the Index and Trash to their fixed paths atomically
// (write temp, fsync, rename, fsync dir), so a reader never observes a
// half-written blob.
func (v *Vault) Persist() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := writeFileAtomic(indexPath(v.root), v.index.encode()); err != nil {
		return err
	}
	return writeFileAtomic(trashPath(v.root), v.trash.encode())
}

// Compact reclaims segment files whose trashed bytes cross half the
// segment size threshold, skipping any segment that belongs to
// currentSlot (still being actively appended to).
func (v *Vault) Compact(currentSlot uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	threshold := v.maxSegmentSize / 2
	for _, file := range v.trash.files() {
		if file.Slot == currentSlot {
			continue
		}
		obsolete := v.trash.obsoleteBytes(file)
		if obsolete < threshold {
			continue
		}
		log.Printf("vault: compacting segment %s (%d obsolete bytes)", file.FileName(), obsolete)
		if err := v.relocateAndDeleteLocked(file); err != nil {
			return err
		}
	}
	return nil
}

// relocateAndDeleteLocked re-appends every account still indexed into
// file onto the active segment for file's own slot, then deletes file and
// forgets its trash entry.
func (v *Vault) relocateAndDeleteLocked(file AccountFile) error {
	// If this is the slot's active segment, roll to a fresh id first so the
	// relocated records don't land in the file we are about to delete.
	if v.activeID[file.Slot] == file.ID {
		v.activeID[file.Slot] = file.ID + 1
	}
	for _, key := range v.index.accountsOnFile(file) {
		loc, ok := v.index.find(key)
		if !ok || loc.File != file {
			continue
		}
		wallet, err := v.readAt(loc)
		if err != nil {
			return err
		}
		newLoc, err := v.appendLocked(file.Slot, wallet.Encode())
		if err != nil {
			return err
		}
		v.index.set(key, newLoc)
	}

	if err := os.Remove(v.segmentPath(file)); err != nil && !os.IsNotExist(err) {
		return vaultErrf(ErrFileSystem, "deleting %s: %v", file.FileName(), err)
	}
	delete(v.activeSize, file)
	v.trash.forget(file)
	return nil
}

func trashPath(root string) string {
	return filepath.Join(root, "trash")
}

func writeFileAtomic(final string, data []byte) error {
	tmp := final + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return vaultErrf(ErrFileSystem, "open tmp %s: %v", tmp, err)
	}
	_, werr := f.Write(data)
	serr := f.Sync()
	cerr := f.Close()
	if werr != nil {
		return vaultErrf(ErrFileSystem, "write tmp %s: %v", tmp, werr)
	}
	if serr != nil {
		return vaultErrf(ErrFileSystem, "fsync tmp %s: %v", tmp, serr)
	}
	if cerr != nil {
		return vaultErrf(ErrFileSystem, "close tmp %s: %v", tmp, cerr)
	}
	if err := os.Rename(tmp, final); err != nil {
		return vaultErrf(ErrFileSystem, "rename %s: %v", tmp, err)
	}

	dir, err := os.Open(filepath.Dir(final))
	if err != nil {
		return vaultErrf(ErrFileSystem, "open dir for fsync: %v", err)
	}
	defer dir.Close()
	if err := dir.Sync(); err != nil {
		return vaultErrf(ErrFileSystem, "fsync dir: %v", err)
	}
	return nil
}
