package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Open decodes raw ZIP bytes, validates the entry list, and reads every entry
// into memory keyed by its validated name. No entry content is read until the
// whole entry list has passed validation.
func Open(raw []byte) (map[string]string, error) {
	if len(raw) > MaxArchiveBytes {
		return nil, fmt.Errorf("%w: %d raw bytes (limit %d)", ErrArchiveTooLarge, len(raw), MaxArchiveBytes)
	}

	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode archive: %w", err)
	}

	entries := make([]Entry, 0, len(reader.File))
	for _, file := range reader.File {
		entries = append(entries, Entry{Name: file.Name, Size: file.UncompressedSize64})
	}
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}

	contents := make(map[string]string, len(reader.File))
	for _, file := range reader.File {
		text, err := readEntry(file)
		if err != nil {
			return nil, err
		}
		contents[file.Name] = text
	}

	return contents, nil
}

// readEntry caps actual decompressed output at the per-file limit so a
// declared size lying below the limit cannot smuggle a zip bomb past the
// metadata check.
func readEntry(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open archive entry %q: %w", file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxEntrySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read archive entry %q: %w", file.Name, err)
	}
	if len(data) > MaxEntrySize {
		return "", fmt.Errorf("%w: %q decompressed past %d bytes", ErrFileTooLarge, file.Name, MaxEntrySize)
	}

	return string(data), nil
}
