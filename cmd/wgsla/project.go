package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"wgsla/internal/query"
	"wgsla/internal/source"
)

// newDatabase constructs a fresh query.Database, wiring in a disk cache
// when requested.
func newDatabase(enableDiskCache bool) (*query.Database, error) {
	var disk *query.DiskCache
	if enableDiskCache {
		d, err := query.OpenDiskCache("wgsla")
		if err != nil {
			return nil, fmt.Errorf("opening disk cache: %w", err)
		}
		disk = d
	}
	return query.New(disk), nil
}

// openFile reads path and registers it with db, returning its FileID.
func openFile(db *query.Database, path string) (source.FileID, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return db.Files.Open(path, content), nil
}

// parsePosition parses a "line:col" position argument (1-based, matching
// source.LineCol's convention) into a byte offset within file, via the
// FileSet's Offset helper. Any text after a second colon makes the column
// fail to parse.
func parsePosition(db *query.Database, file source.FileID, pos string) (uint32, error) {
	parts := strings.SplitN(pos, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid position %q, expected line:col", pos)
	}
	line, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid line in %q: %w", pos, err)
	}
	col, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid column in %q: %w", pos, err)
	}
	return db.Files.Offset(file, source.LineCol{Line: uint32(line), Col: uint32(col)}), nil
}
