package httpapi

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	compressor "github.com/joaogasparp/compressor-system"
)

func multipartUpload(t *testing.T, fieldData []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "input.bin")
	require.NoError(t, err)
	_, err = part.Write(fieldData)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCompressDecompressRoundTripThroughHTTP(t *testing.T) {
	mux := NewMux(compressor.DefaultConfig())
	srv := httptest.NewServer(mux)
	defer srv.Close()

	payload := bytes.Repeat([]byte("abcabcabcabc"), 200)

	body, contentType := multipartUpload(t, payload)
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/compress/lz77", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Compression-Stats"))

	compressed, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	req2, err := http.NewRequest(http.MethodPost, srv.URL+"/decompress/lz77", bytes.NewReader(compressed))
	require.NoError(t, err)
	req2.Header.Set("Content-Type", "application/octet-stream")

	resp2, err := http.DefaultClient.Do(req2)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	decompressed, err := io.ReadAll(resp2.Body)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestUnknownCodecReturns404(t *testing.T) {
	mux := NewMux(compressor.DefaultConfig())
	srv := httptest.NewServer(mux)
	defer srv.Close()

	body, contentType := multipartUpload(t, []byte("hello"))
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/compress/not-a-codec", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmptyUploadReturnsUnprocessable(t *testing.T) {
	mux := NewMux(compressor.DefaultConfig())
	srv := httptest.NewServer(mux)
	defer srv.Close()

	body, contentType := multipartUpload(t, []byte{})
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/compress/rle", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
