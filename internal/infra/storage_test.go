package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danisworo/storefront/internal/config"
)

func TestUploadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "keyboard.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(map[string]string{
			"imageUrl": "https://storage.example.com/keyboard.png",
		})
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := NewStorageClient(config.Storage{BaseURL: server.URL})
	imageUrl, err := client.UploadImage(
		context.Background(),
		"keyboard.png",
		strings.NewReader("fake image bytes"),
	)
	assert.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/keyboard.png", imageUrl)
}

func TestUploadImageFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewStorageClient(config.Storage{BaseURL: server.URL})
	_, err := client.UploadImage(
		context.Background(),
		"keyboard.png",
		strings.NewReader("fake image bytes"),
	)
	assert.Error(t, err)
}
