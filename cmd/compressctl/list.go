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

	compressor "github.com/joaogasparp/compressor-system"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered codecs",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	for _, name := range compressor.List() {
		codec, err := compressor.CreateOrError(name)
		if err != nil {
			return err
		}

		info := codec.Info()
		fmt.Printf("%-10s %s (min block %d bytes)\n", info.Name, info.Description, info.MinBlockSize)
	}

	return nil
}
