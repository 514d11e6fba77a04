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

// Package bench runs every registered codec, plus a handful of third-party
// baselines, over a corpus of files and reports a ratio/time table.
package bench

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var pathSeparator = string([]byte{os.PathSeparator})

// corpusFile pairs a file's path with its size, the same shape kanzi's own
// command-line tools walk a target directory into before processing.
type corpusFile struct {
	FullPath string
	Size     int64
}

// discoverCorpus walks target (a single file or a directory) and returns
// every regular file found, sorted by path. Directories are walked
// recursively; dot-files are skipped, matching the ignoreDotFiles behavior
// kanzi's CLI exposes as --no-dot-file.
func discoverCorpus(target string) ([]corpusFile, error) {
	fi, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	var files []corpusFile

	if fi.Mode().IsRegular() {
		files = append(files, corpusFile{FullPath: target, Size: fi.Size()})
		return files, nil
	}

	if target[len(target)-1] != os.PathSeparator {
		target += pathSeparator
	}

	err = filepath.Walk(target, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := info.Name()

		if strings.HasPrefix(name, ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if info.Mode().IsRegular() {
			files = append(files, corpusFile{FullPath: path, Size: info.Size()})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].FullPath < files[j].FullPath
	})

	return files, nil
}
