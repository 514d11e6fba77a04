/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bench

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	compressor "github.com/joaogasparp/compressor-system"

	// Registering sub-packages: each codec lives behind registry.Create,
	// wired up by its own init(). Nothing in this package names rle,
	// huffman, lz77 or hybrid directly beyond this import.
	_ "github.com/joaogasparp/compressor-system/huffman"
	_ "github.com/joaogasparp/compressor-system/hybrid"
	_ "github.com/joaogasparp/compressor-system/lz77"
	_ "github.com/joaogasparp/compressor-system/rle"
)

// Row is one line of the benchmark report: a single codec (ours or a
// baseline) run against a single file.
type Row struct {
	File         string
	Codec        string
	OriginalSize int
	CompressedSize int
	Ratio        float64
	CompressMs   float64
	DecompressMs float64
	Identity     uint64 // xxhash of the file contents, for result caching
	Err          error
}

// Run walks target (file or directory) and runs every registered codec,
// plus the flate/zstd/lz4 baselines, against every file found. A non-nil
// error on a Row means that codec failed on that file; it does not abort
// the run.
func Run(target string, cfg compressor.Config) ([]Row, error) {
	files, err := discoverCorpus(target)
	if err != nil {
		return nil, err
	}

	var rows []Row

	for _, f := range files {
		data, err := os.ReadFile(f.FullPath)
		if err != nil {
			rows = append(rows, Row{File: f.FullPath, Err: err})
			continue
		}

		identity := xxhash.Sum64(data)

		for _, name := range compressor.List() {
			rows = append(rows, runCodec(f.FullPath, name, identity, data, cfg))
		}

		rows = append(rows, runBaseline(f.FullPath, "flate", identity, data, flateCompress, flateDecompress))
		rows = append(rows, runBaseline(f.FullPath, "zstd", identity, data, zstdCompress, zstdDecompress))
		rows = append(rows, runBaseline(f.FullPath, "lz4", identity, data, lz4Compress, lz4Decompress))
	}

	return rows, nil
}

func runCodec(file, name string, identity uint64, data []byte, cfg compressor.Config) Row {
	codec, err := compressor.CreateOrError(name)
	if err != nil {
		return Row{File: file, Codec: name, Identity: identity, Err: err}
	}

	start := time.Now()
	res := codec.Compress(data, cfg)
	compressMs := float64(time.Since(start).Microseconds()) / 1000.0

	if !res.Ok() {
		return Row{File: file, Codec: name, Identity: identity, Err: res.Err}
	}

	start = time.Now()
	dres := codec.Decompress(res.Data, cfg)
	decompressMs := float64(time.Since(start).Microseconds()) / 1000.0

	if !dres.Ok() {
		return Row{File: file, Codec: name, Identity: identity, Err: dres.Err}
	}

	if !bytes.Equal(dres.Data, data) {
		return Row{File: file, Codec: name, Identity: identity, Err: fmt.Errorf("%s: round trip mismatch on %s", name, file)}
	}

	return Row{
		File:           file,
		Codec:          name,
		OriginalSize:   len(data),
		CompressedSize: len(res.Data),
		Ratio:          res.Stats.Ratio(),
		CompressMs:     compressMs,
		DecompressMs:   decompressMs,
		Identity:       identity,
	}
}

type baselineFunc func([]byte) ([]byte, error)

func runBaseline(file, name string, identity uint64, data []byte, compress, decompress baselineFunc) Row {
	start := time.Now()
	out, err := compress(data)
	compressMs := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		return Row{File: file, Codec: name, Identity: identity, Err: err}
	}

	start = time.Now()
	back, err := decompress(out)
	decompressMs := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		return Row{File: file, Codec: name, Identity: identity, Err: err}
	}

	if !bytes.Equal(back, data) {
		return Row{File: file, Codec: name, Identity: identity, Err: fmt.Errorf("%s: round trip mismatch on %s", name, file)}
	}

	ratio := 0.0
	if len(data) > 0 {
		ratio = float64(len(out)) / float64(len(data))
	}

	return Row{
		File:           file,
		Codec:          name,
		OriginalSize:   len(data),
		CompressedSize: len(out),
		Ratio:          ratio,
		CompressMs:     compressMs,
		DecompressMs:   decompressMs,
		Identity:       identity,
	}
}

func flateCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func flateDecompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}

func zstdCompress(data []byte) ([]byte, error) {
	w, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer w.Close()
	return w.EncodeAll(data, nil), nil
}

func zstdDecompress(data []byte) ([]byte, error) {
	r, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.DecodeAll(data, nil)
}

func lz4Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func lz4Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	return io.ReadAll(r)
}

// FormatTable renders rows as a simple fixed-width text table, one line per
// row; a row with an error prints the error instead of its numbers.
func FormatTable(rows []Row) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%-40s %-10s %10s %10s %8s %10s %10s\n", "file", "codec", "original", "compressed", "ratio", "comp(ms)", "decomp(ms)")

	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(&buf, "%-40s %-10s error: %v\n", r.File, r.Codec, r.Err)
			continue
		}

		fmt.Fprintf(&buf, "%-40s %-10s %10d %10d %8.3f %10.3f %10.3f\n",
			r.File, r.Codec, r.OriginalSize, r.CompressedSize, r.Ratio, r.CompressMs, r.DecompressMs)
	}

	return buf.String()
}
