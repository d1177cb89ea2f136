package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/danisworo/storefront/internal/config"
	"github.com/danisworo/storefront/internal/log"
)

// StorageClient talks to the external image storage service, which stores an
// uploaded file and answers with its public URL.
type StorageClient struct {
	baseUrl string
}

func NewStorageClient(cfg config.Storage) *StorageClient {
	return &StorageClient{baseUrl: cfg.BaseURL}
}

func (s *StorageClient) UploadImage(
	c context.Context,
	filename string,
	file io.Reader,
) (string, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "StorageClient UploadImage").
		Str("filename", filename).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "creating upload request").Logger()
	logger.Info().Msg("creating upload request")
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed creating form file with error=%w", err)
	}
	if _, err = io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed copying file to form with error=%w", err)
	}
	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("failed closing multipart writer with error=%w", err)
	}

	req, err := http.NewRequestWithContext(c, http.MethodPost, s.baseUrl+"/upload", body)
	if err != nil {
		return "", fmt.Errorf("failed creating upload request with error=%w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	requestId := log.RequestIDFromContext(c)
	req.Header.Add(log.KeyRequestID, requestId)
	logger.Info().Msg("created upload request")

	logger = logger.With().Str(log.KeyProcess, "sending upload request").Logger()
	logger.Info().Msg("sending upload request")
	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed uploading image with error=%w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage service returned status code=%d", resp.StatusCode)
	}
	logger.Info().Msg("sent upload request")

	respBody := struct {
		ImageUrl string `json:"imageUrl"`
	}{}
	if err = json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", fmt.Errorf("failed decoding upload response with error=%w", err)
	}
	logger = logger.With().Str(log.KeyImageURL, respBody.ImageUrl).Logger()
	logger.Info().Msg("uploaded image")

	return respBody.ImageUrl, nil
}
