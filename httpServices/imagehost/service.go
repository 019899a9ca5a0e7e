package imagehost

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

// uploadResponse is the subset of the image host's response we care about.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Uploader stores binary image data and returns a stable URL. Upload failure
// never blocks pass creation; callers warn and continue without an image.
type Uploader interface {
	Upload(data []byte, filename string) (string, error)
}

// Client uploads images to a Cloudinary-style unsigned upload endpoint.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	uploadPreset string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:      strings.TrimRight(os.Getenv("IMAGE_HOST_URL"), "/"),
		uploadPreset: os.Getenv("IMAGE_HOST_UPLOAD_PRESET"),
	}
}

func (c *Client) Upload(data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("no image data provided for upload")
	}
	if c.baseURL == "" {
		return "", errors.New("IMAGE_HOST_URL is not set")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write image data: %w", err)
	}
	if c.uploadPreset != "" {
		if err := writer.WriteField("upload_preset", c.uploadPreset); err != nil {
			return "", fmt.Errorf("write upload preset: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/image/upload", &body)
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("image host error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var uResp uploadResponse
	if err := json.Unmarshal(respBody, &uResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if uResp.SecureURL == "" {
		return "", errors.New("image host returned no URL")
	}

	return uResp.SecureURL, nil
}
