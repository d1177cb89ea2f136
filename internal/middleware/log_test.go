package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	inHttp "github.com/danisworo/storefront/internal/http"
	"github.com/danisworo/storefront/internal/log"
)

func TestLoggingPassesMultipartBodyThrough(t *testing.T) {
	// well past any buffered-reader boundary
	imageBytes := bytes.Repeat([]byte("x"), 64*1024)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "keyboard.png")
	assert.NoError(t, err)
	_, err = part.Write(imageBytes)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "keyboard.png", header.Filename)

		received, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Len(t, received, len(imageBytes))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/products/upload", body)
	req.Header.Set(inHttp.KEY_HEADER_CONTENT_TYPE, writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestLoggingPreservesJsonBody(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decoded := map[string]interface{}{}
		err := json.NewDecoder(r.Body).Decode(&decoded)
		assert.NoError(t, err)
		assert.Equal(t, "Mechanical Keyboard", decoded["name"])
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(
		http.MethodPost,
		"/products",
		bytes.NewReader([]byte(`{"name":"Mechanical Keyboard"}`)),
	)
	req.Header.Set(inHttp.KEY_HEADER_CONTENT_TYPE, inHttp.VALUE_HEADER_APPLICATION_JSON)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestLoggingAttachesRequestID(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", log.RequestIDFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set(inHttp.KEY_HEADER_REQUEST_ID, "req-42")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
