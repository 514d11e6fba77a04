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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	compressor "github.com/joaogasparp/compressor-system"
)

var (
	decompressCodec string
	decompressIn    string
	decompressOut   string
)

var decompressCmd = &cobra.Command{
	Use:   "decompress",
	Short: "Decompress a file with a named codec",
	RunE:  runDecompress,
}

func init() {
	decompressCmd.Flags().StringVar(&decompressCodec, "codec", "", "codec name (see 'compressctl list')")
	decompressCmd.Flags().StringVar(&decompressIn, "in", "", "input file path")
	decompressCmd.Flags().StringVar(&decompressOut, "out", "", "output file path")
	decompressCmd.MarkFlagRequired("codec")
	decompressCmd.MarkFlagRequired("in")
	decompressCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(decompressCmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	codec, err := compressor.CreateOrError(decompressCodec)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(decompressIn)
	if err != nil {
		return fmt.Errorf("reading %s: %w", decompressIn, err)
	}

	res := codec.Decompress(data, buildConfig())
	if !res.Ok() {
		return res.Err
	}

	if err := os.WriteFile(decompressOut, res.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", decompressOut, err)
	}

	fmt.Printf("%s: %d -> %d bytes\n", decompressIn, res.Stats.CompressedSize, res.Stats.OriginalSize)
	return nil
}
