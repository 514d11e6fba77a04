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

	"github.com/spf13/cobra"

	"github.com/joaogasparp/compressor-system/bench"
)

var benchIn string

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run every registered codec (plus flate/zstd/lz4 baselines) over a corpus",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchIn, "in", "", "corpus file or directory")
	benchCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	rows, err := bench.Run(benchIn, buildConfig())
	if err != nil {
		return err
	}

	fmt.Print(bench.FormatTable(rows))
	return nil
}
