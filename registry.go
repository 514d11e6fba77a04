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

package compressor

import "strings"

// ctor builds a fresh, ready-to-use Codec instance.
type ctor func() Codec

// registry is the process-wide name -> constructor map. Collapsed into a
// single map (unlike kanzi's separate transform.Factory and
// entropy.EntropyCodecFactory switches) because this module has a closed
// set of four codec names rather than kanzi's ~20 transform/entropy types.
// registryOrder records registration order so List() can return a
// stable-for-the-process sequence; a bare map range would reshuffle on
// every call.
var (
	registry      = map[string]ctor{}
	registryOrder []string
)

// Register adds name (lower-cased) to the registry. Intended to be called
// from each codec sub-package's init(), mirroring how kanzi's per-package
// factories are wired into its top-level Factory switch statements, but
// avoiding an import cycle: this package cannot import rle/huffman/lz77/
// hybrid (they import this package for Codec/Config/Result), so those
// packages import this one and call Register from their own init().
func Register(name string, c ctor) {
	name = strings.ToLower(name)

	if _, exists := registry[name]; !exists {
		registryOrder = append(registryOrder, name)
	}

	registry[name] = c
}

// Create returns a fresh instance of the named codec, or ok=false if the
// name is not registered.
func Create(name string) (Codec, bool) {
	c, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, false
	}

	return c(), true
}

// CreateOrError is the Result-returning form used by collaborators that
// want a CodecError instead of a bool.
func CreateOrError(name string) (Codec, error) {
	c, ok := Create(name)
	if !ok {
		return nil, NewError(UnknownCodec, "no codec registered under name %q", name)
	}

	return c, nil
}

// List returns the registered codec names. The order is stable for the
// process but otherwise unspecified, matching the contract in §4.C.
func List() []string {
	names := make([]string, len(registryOrder))
	copy(names, registryOrder)
	return names
}
