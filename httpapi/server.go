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

// Package httpapi exposes the codec registry over HTTP: POST a file to
// /compress/{codec} or /decompress/{codec} and get the transformed bytes
// back, with a stats summary in a response header. No byte-format logic
// lives here; every handler is a thin adapter onto registry.Create and the
// Codec interface, matching the core's own collaborator boundary.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	compressor "github.com/joaogasparp/compressor-system"

	_ "github.com/joaogasparp/compressor-system/huffman"
	_ "github.com/joaogasparp/compressor-system/hybrid"
	_ "github.com/joaogasparp/compressor-system/lz77"
	_ "github.com/joaogasparp/compressor-system/rle"
)

// _STATS_HEADER carries a JSON-encoded compressor.Stats on every successful
// response.
const _STATS_HEADER = "X-Compression-Stats"

// NewMux builds the HTTP handler this package exposes: POST /compress/{codec}
// and POST /decompress/{codec}, each taking a multipart form with a single
// "file" field.
func NewMux(cfg compressor.Config) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/compress/", route(cfg, operationCompress))
	mux.HandleFunc("/decompress/", route(cfg, operationDecompress))
	return mux
}

type operation int

const (
	operationCompress operation = iota
	operationDecompress
)

func route(cfg compressor.Config, op operation) http.HandlerFunc {
	prefix := "/compress/"
	if op == operationDecompress {
		prefix = "/decompress/"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, prefix)

		if name == "" {
			http.Error(w, "missing codec name in path", http.StatusBadRequest)
			return
		}

		codec, err := compressor.CreateOrError(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		data, err := readUploadedFile(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var res compressor.Result

		if op == operationCompress {
			res = codec.Compress(data, cfg)
		} else {
			res = codec.Decompress(data, cfg)
		}

		if !res.Ok() {
			http.Error(w, res.Err.Error(), http.StatusUnprocessableEntity)
			return
		}

		statsJSON, err := json.Marshal(res.Stats)
		if err == nil {
			w.Header().Set(_STATS_HEADER, string(statsJSON))
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		w.Write(res.Data)
	}
}

// readUploadedFile accepts either a multipart form with a "file" field or a
// raw request body, so curl -T works as well as a browser form upload.
func readUploadedFile(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}

	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
