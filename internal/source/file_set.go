package source

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Revision is a monotonic counter attached to the engine's inputs. Query
// results are valid across a contiguous revision range.
type Revision uint64

// File holds the text and metadata for one loaded source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n' bytes, for LineCol resolution
	Hash    [sha256.Size]byte
	Rev     Revision
}

// LineCol is a 1-based line/column position.
type LineCol struct {
	Line, Col uint32
}

// FileSet owns every loaded file and hands out stable FileIDs. Edits bump
// the shared revision counter; a consumer holding a revision can still read
// the file content it observed via the (unchanged) File value, since File
// is replaced wholesale on edit rather than mutated in place.
type FileSet struct {
	mu       sync.RWMutex
	files    []File
	index    map[string]FileID
	revision Revision
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 1), // index 0 reserved, mirrors NoFileID
		index: make(map[string]FileID),
	}
}

// Revision returns the FileSet's current global revision.
func (fs *FileSet) Revision() Revision {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.revision
}

// Open adds a new file or replaces the content of an existing path,
// bumping the file's (and the FileSet's) revision. Returns the FileID.
func (fs *FileSet) Open(path string, content []byte) FileID {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.revision++
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)

	if id, ok := fs.index[path]; ok {
		fs.files[id] = File{
			ID:      id,
			Path:    path,
			Content: content,
			LineIdx: lineIdx,
			Hash:    hash,
			Rev:     fs.revision,
		}
		return id
	}

	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file count overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Rev:     fs.revision,
	})
	fs.index[path] = id
	return id
}

// Get returns the file metadata for id. Panics on an out-of-range id, which
// indicates a structural bug (an ID minted by this FileSet must remain
// valid for its lifetime).
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	f := fs.files[id]
	return &f
}

// Lookup returns the FileID for path, if loaded.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.index[path]
	return id, ok
}

// Resolve converts a span into 1-based line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	f := &fs.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Offset converts a 1-based line/column position back into a byte offset.
func (fs *FileSet) Offset(file FileID, pos LineCol) uint32 {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	f := &fs.files[file]
	if pos.Line == 0 {
		return 0
	}
	var lineStart uint32
	if pos.Line > 1 && int(pos.Line-2) < len(f.LineIdx) {
		lineStart = f.LineIdx[pos.Line-2] + 1
	}
	return lineStart + (pos.Col - 1)
}

func buildLineIndex(content []byte) []uint32 {
	var idx []uint32
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)) //nolint:gosec // file sizes bound by practical editor limits
		}
	}
	return idx
}

func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	// binary search for the first newline at or after offset
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) / 2
		if lineIdx[mid] < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := uint32(lo) + 1 //nolint:gosec
	var lineStart uint32
	if lo > 0 {
		lineStart = lineIdx[lo-1] + 1
	}
	return LineCol{Line: line, Col: offset - lineStart + 1}
}
