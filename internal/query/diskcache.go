package query

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"wgsla/internal/diag"
	"wgsla/internal/infer"
	"wgsla/internal/itemtree"
	"wgsla/internal/source"
)

// diskCacheSchemaVersion guards against decoding a payload shape from a
// previous build; bump on any DiskPayload field change.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists per-definition inference *summaries* — diagnostics
// and the call-resolution table, never arenas — keyed by a content hash.
// It exists for the one-shot `wgsla check` CLI invocation, which pays a
// cold parse+infer cost on every process start; the interactive engine
// itself stays memory-resident with no persisted state, since only this
// summary — not the arenas a live session's hover/completions need — is
// ever written here.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiagnosticSummary is one persisted diagnostic, stripped of Notes/Fixes
// (quick-fix text is cheap to recompute and not needed for `check`'s
// plain pass/fail + listing output).
type DiagnosticSummary struct {
	Severity uint8
	Code     uint8
	Message  string
	Start    uint32
	End      uint32
}

// CallSummary is one persisted call-resolution entry.
type CallSummary struct {
	Expr          uint32
	Kind          uint8
	FunctionIndex uint32
	TypeID        uint32
}

// DiskPayload is the unit stored per (file content hash, item index).
type DiskPayload struct {
	Schema      uint16
	Diagnostics []DiagnosticSummary
	Calls       []CallSummary
}

// OpenDiskCache opens (creating if needed) the standard cache directory
// for app, honoring XDG_CACHE_HOME before falling back to the
// user-level cache dir.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// ContentKey hashes file content together with an item index so two
// items in the same file land at different cache entries.
func ContentKey(content []byte, itemIndex uint32) [32]byte {
	h := sha256.New()
	h.Write(content)
	var idx [4]byte
	idx[0] = byte(itemIndex)
	idx[1] = byte(itemIndex >> 8)
	idx[2] = byte(itemIndex >> 16)
	idx[3] = byte(itemIndex >> 24)
	h.Write(idx[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "sum", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes payload under key.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // best-effort cleanup of a temp file

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get deserializes the payload stored under key, reporting false (no
// error) on a cache miss or a schema mismatch from an older build.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close() //nolint:errcheck

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// summarize reduces a full inference Result down to the disk-cacheable
// slice: diagnostics and call resolutions, dropping ExprTypes/
// BindingTypes/FieldResolutions since those key off arena indices that
// are meaningless once the producing Body is gone.
func summarize(result *infer.Result) *DiskPayload {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion}
	for _, d := range result.Diagnostics.Items() {
		payload.Diagnostics = append(payload.Diagnostics, DiagnosticSummary{
			Severity: uint8(d.Severity),
			Code:     uint8(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	for exprID, cr := range result.CallResolutions {
		payload.Calls = append(payload.Calls, CallSummary{
			Expr:          uint32(exprID),
			Kind:          uint8(cr.Kind),
			FunctionIndex: cr.Function.Index,
			TypeID:        uint32(cr.Type),
		})
	}
	return payload
}

// toBag renders a persisted summary back into a Bag suitable for `check`'s
// plain diagnostic listing. file supplies the FileID the original spans
// belonged to, since DiagnosticSummary does not carry one (a disk cache
// entry is always looked up by a specific file's content hash already).
func toBag(file source.FileID, payload *DiskPayload) *diag.Bag {
	bag := diag.NewBag()
	for _, d := range payload.Diagnostics {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file, Start: d.Start, End: d.End},
		})
	}
	return bag
}

// SaveSummary persists item's last-computed inference result for reuse by
// a future `check` invocation over unchanged content. A nil Disk or a
// write failure is silently ignored: the summary cache is strictly an
// optimization, never a correctness dependency.
func (db *Database) SaveSummary(file source.FileID, item itemtree.ItemID, result *infer.Result) {
	if db.Disk == nil || result == nil {
		return
	}
	content := db.Files.Get(file).Content
	key := ContentKey(content, item.Index)
	_ = db.Disk.Put(key, summarize(result))
}

// LoadSummary looks up a previously saved summary for item, returning the
// diagnostics it contained as a Bag. No command in cmd/wgsla calls it;
// the interactive Database.Infer query never consults it,
// since IDE features need the full in-memory Result a summary does not
// carry.
func (db *Database) LoadSummary(file source.FileID, item itemtree.ItemID) (*diag.Bag, bool) {
	if db.Disk == nil {
		return nil, false
	}
	content := db.Files.Get(file).Content
	key := ContentKey(content, item.Index)
	var payload DiskPayload
	ok, err := db.Disk.Get(key, &payload)
	if err != nil || !ok {
		return nil, false
	}
	return toBag(file, &payload), true
}
