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

	compressor "github.com/joaogasparp/compressor-system"
)

// stderrListener writes every Event as a human-readable line to stderr,
// the CLI's default listener when -verbose is set.
type stderrListener struct{}

func (stderrListener) ProcessEvent(evt *compressor.Event) {
	fmt.Fprintln(os.Stderr, evt.String())
}

// buildConfig assembles the Config every subcommand hands to a Codec,
// wiring the global -verbose/-no-verify flags into it.
func buildConfig() compressor.Config {
	cfg := compressor.DefaultConfig()
	cfg.VerifyIntegrity = !noVerify
	cfg.Verbose = verbose

	if verbose {
		cfg.Listener = stderrListener{}
	}

	return cfg
}
