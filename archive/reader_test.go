package archive

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"hash/crc32"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func TestOpenReadsValidatedEntries(t *testing.T) {
	raw := buildZip(t, map[string]string{
		"votes.csv":  "Spotify URI,Voter ID\n",
		"rounds.csv": "ID,Name\n",
	})

	contents, err := Open(raw)
	require.NoError(t, err)
	require.Len(t, contents, 2)
	require.Equal(t, "Spotify URI,Voter ID\n", contents["votes.csv"])
	require.Equal(t, "ID,Name\n", contents["rounds.csv"])
}

func TestOpenRejectsUnsafeArchiveWithoutReadingContents(t *testing.T) {
	raw := buildZip(t, map[string]string{
		"../evil.csv": "ID,Name\nu1,Mallory\n",
	})

	contents, err := Open(raw)
	require.ErrorIs(t, err, ErrPathTraversal)
	require.Nil(t, contents)
}

func TestOpenRejectsNonCSVEntry(t *testing.T) {
	raw := buildZip(t, map[string]string{
		"votes.csv":  "Spotify URI\n",
		"readme.txt": "hello",
	})

	_, err := Open(raw)
	require.ErrorIs(t, err, ErrUnsupportedFileType)
}

func TestOpenRejectsGarbageBytes(t *testing.T) {
	_, err := Open([]byte("definitely not a zip archive"))
	require.Error(t, err)
}

func TestOpenRejectsOversizedRawPayload(t *testing.T) {
	_, err := Open(make([]byte, MaxArchiveBytes+1))
	require.ErrorIs(t, err, ErrArchiveTooLarge)
}

// buildLyingZip writes one entry whose header declares a tiny uncompressed
// size while the deflate stream actually expands past the per-file limit.
func buildLyingZip(t *testing.T, name string) []byte {
	t.Helper()

	payload := bytes.Repeat([]byte{'a'}, MaxEntrySize+1)

	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, flate.BestCompression)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.CreateRaw(&zip.FileHeader{
		Name:               name,
		Method:             zip.Deflate,
		CRC32:              crc32.ChecksumIEEE(payload),
		CompressedSize64:   uint64(compressed.Len()),
		UncompressedSize64: 1024,
	})
	require.NoError(t, err)
	_, err = entry.Write(compressed.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func TestOpenRejectsEntryDecompressingPastLimit(t *testing.T) {
	raw := buildLyingZip(t, "votes.csv")

	contents, err := Open(raw)
	require.ErrorIs(t, err, ErrFileTooLarge)
	require.Nil(t, contents)
}
