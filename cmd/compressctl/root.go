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

package main

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	verbose  bool
	noVerify bool
)

var rootCmd = &cobra.Command{
	Use:   "compressctl",
	Short: "Run, compare and benchmark the codecs in this module",
	Long: `compressctl is a front-end over a pluggable lossless compression
engine (RLE, Huffman, LZ77, Hybrid).

Examples:
  # Compress a file with a named codec
  compressctl compress --codec hybrid --in report.csv --out report.csv.bin

  # Reverse it
  compressctl decompress --codec hybrid --in report.csv.bin --out report.csv

  # List the registered codecs
  compressctl list

  # Run every codec against a corpus and report a ratio/time table
  compressctl bench --in corpus/`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report progress events to stderr")
	rootCmd.PersistentFlags().BoolVar(&noVerify, "no-verify", false, "skip CRC-32 integrity verification")
}
