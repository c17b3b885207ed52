package archive

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Resource limits for untrusted archives. The raw payload cap is enforced at
// the transport boundary before decoding is attempted; the rest apply to the
// decoded entry list before any entry content is read.
const (
	MaxEntries      = 100
	MaxEntrySize    = 20 << 20
	MaxTotalSize    = 200 << 20
	MaxArchiveBytes = 50 << 20
)

var (
	ErrTooManyEntries      = errors.New("archive contains too many entries")
	ErrAbsolutePath        = errors.New("archive entry name is an absolute path")
	ErrPathTraversal       = errors.New("archive entry name contains a path traversal segment")
	ErrUnsupportedFileType = errors.New("archive entry is not a csv file")
	ErrFileTooLarge        = errors.New("archive entry exceeds the per-file size limit")
	ErrArchiveTooLarge     = errors.New("archive exceeds the total size limit")
)

// Entry is the metadata the validator inspects: the entry name and its
// declared uncompressed size. Contents are never touched here.
type Entry struct {
	Name string
	Size uint64
}

// ValidateEntries rejects unsafe or oversized archives by metadata alone.
// Entry names pass through unchanged on success and are later used as
// in-memory map keys, so path traversal is rejected even though nothing is
// ever written to a filesystem.
func ValidateEntries(entries []Entry) error {
	if len(entries) > MaxEntries {
		return fmt.Errorf("%w: %d entries (limit %d)", ErrTooManyEntries, len(entries), MaxEntries)
	}

	var total uint64
	for _, entry := range entries {
		if err := validateEntryName(entry.Name); err != nil {
			return err
		}
		if entry.Size > MaxEntrySize {
			return fmt.Errorf("%w: %q declares %d bytes (limit %d)", ErrFileTooLarge, entry.Name, entry.Size, MaxEntrySize)
		}
		total += entry.Size
		if total > MaxTotalSize {
			return fmt.Errorf("%w: declared total exceeds %d bytes", ErrArchiveTooLarge, MaxTotalSize)
		}
	}

	return nil
}

func validateEntryName(name string) error {
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") || hasDrivePrefix(name) {
		return fmt.Errorf("%w: %q", ErrAbsolutePath, name)
	}

	// Normalize separators before looking for ".." segments so that archives
	// built on Windows cannot smuggle traversal through backslashes.
	normalized := strings.ReplaceAll(name, "\\", "/")
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return fmt.Errorf("%w: %q", ErrPathTraversal, name)
		}
	}

	if !strings.EqualFold(path.Ext(normalized), ".csv") {
		return fmt.Errorf("%w: %q", ErrUnsupportedFileType, name)
	}

	return nil
}

func hasDrivePrefix(name string) bool {
	if len(name) < 2 || name[1] != ':' {
		return false
	}
	c := name[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
