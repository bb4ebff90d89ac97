package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	domainerrors "osrs-bingo.backend/internal/domain/errors"
)

// ImageHost uploads proof images to Cloudflare Images and returns a
// permanent delivery URL. Discord attachment URLs expire, so proofs are
// rehosted at submission time.
type ImageHost struct {
	baseURL    string
	accountID  string
	apiToken   string
	httpClient *http.Client
}

func NewImageHost(baseURL, accountID, apiToken string) *ImageHost {
	return &ImageHost{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountID:  accountID,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type cloudflareUploadResponse struct {
	Success bool `json:"success"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Result struct {
		ID       string   `json:"id"`
		Variants []string `json:"variants"`
	} `json:"result"`
}

// Upload stores the image and returns its first delivery variant URL.
func (h *ImageHost) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/accounts/%s/images/v1", h.baseURL, h.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", domainerrors.Upstream("Could not upload the proof image.", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domainerrors.Upstream("Could not upload the proof image.", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domainerrors.Upstream("Could not upload the proof image.",
			fmt.Errorf("cloudflare upload failed: status=%d body=%s", resp.StatusCode, raw))
	}

	var parsed cloudflareUploadResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", domainerrors.Upstream("Could not upload the proof image.", err)
	}
	if !parsed.Success || len(parsed.Result.Variants) == 0 {
		msg := "no variants returned"
		if len(parsed.Errors) > 0 {
			msg = parsed.Errors[0].Message
		}
		return "", domainerrors.Upstream("Could not upload the proof image.",
			fmt.Errorf("cloudflare upload rejected: %s", msg))
	}
	return parsed.Result.Variants[0], nil
}
