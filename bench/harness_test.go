package bench

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	compressor "github.com/joaogasparp/compressor-system"
)

func writeCorpusFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunProducesRowsForEveryRegisteredCodecAndBaseline(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 4096)

	for i := range data {
		data[i] = byte(i % 7)
	}

	writeCorpusFile(t, dir, "sample.bin", data)

	rows, err := Run(dir, compressor.DefaultConfig())
	require.NoError(t, err)

	wantCodecs := len(compressor.List()) + 3 // + flate, zstd, lz4 baselines
	require.Equal(t, wantCodecs, len(rows))

	for _, r := range rows {
		require.NoError(t, r.Err, "codec %s failed on %s", r.Codec, r.File)
		require.Equal(t, len(data), r.OriginalSize)
	}
}

func TestRunOnDirectorySkipsDotFiles(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, ".hidden", []byte("should be skipped"))
	writeCorpusFile(t, dir, "visible.txt", []byte("hello world, hello world, hello world"))

	rows, err := Run(dir, compressor.DefaultConfig())
	require.NoError(t, err)

	for _, r := range rows {
		require.NotContains(t, r.File, ".hidden")
	}
}

func TestFormatTableRendersErrorsAndSuccesses(t *testing.T) {
	rows := []Row{
		{File: "a.bin", Codec: "rle", OriginalSize: 100, CompressedSize: 10, Ratio: 0.1},
		{File: "b.bin", Codec: "huffman", Err: errors.New("boom")},
	}

	out := FormatTable(rows)
	require.Contains(t, out, "a.bin")
	require.Contains(t, out, "error:")
}
