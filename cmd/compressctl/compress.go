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
	compressCodec string
	compressIn    string
	compressOut   string
)

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Compress a file with a named codec",
	RunE:  runCompress,
}

func init() {
	compressCmd.Flags().StringVar(&compressCodec, "codec", "", "codec name (see 'compressctl list')")
	compressCmd.Flags().StringVar(&compressIn, "in", "", "input file path")
	compressCmd.Flags().StringVar(&compressOut, "out", "", "output file path")
	compressCmd.MarkFlagRequired("codec")
	compressCmd.MarkFlagRequired("in")
	compressCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	codec, err := compressor.CreateOrError(compressCodec)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(compressIn)
	if err != nil {
		return fmt.Errorf("reading %s: %w", compressIn, err)
	}

	res := codec.Compress(data, buildConfig())
	if !res.Ok() {
		return res.Err
	}

	if err := os.WriteFile(compressOut, res.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", compressOut, err)
	}

	fmt.Printf("%s: %d -> %d bytes (ratio %.4f)\n", compressIn, res.Stats.OriginalSize, res.Stats.CompressedSize, res.Stats.Ratio())
	return nil
}
