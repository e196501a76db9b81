package utils

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"societypro-be/complaints"
)

// CloudinaryClient uploads complaint images to Cloudinary's REST API using
// signed requests. It satisfies complaints.ObjectStorage.
type CloudinaryClient struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	HTTP      *http.Client
}

// NewCloudinaryClient reads credentials from the environment.
func NewCloudinaryClient() *CloudinaryClient {
	return &CloudinaryClient{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		Folder:    "complaints",
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}
}

// sign produces the Cloudinary request signature: SHA-1 over the sorted
// parameter string with the API secret appended.
func (c *CloudinaryClient) sign(params url.Values) string {
	// url.Values.Encode sorts by key, which is exactly the signing order.
	sum := sha1.Sum([]byte(params.Encode() + c.APISecret))
	return hex.EncodeToString(sum[:])
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload pushes one image and returns its hosted URL and public id.
func (c *CloudinaryClient) Upload(ctx context.Context, file complaints.UploadFile) (complaints.UploadResult, error) {
	publicID := c.Folder + "/" + uuid.NewString()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	signed := url.Values{}
	signed.Set("public_id", publicID)
	signed.Set("timestamp", timestamp)
	signature := c.sign(signed)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return complaints.UploadResult{}, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return complaints.UploadResult{}, err
	}
	_ = writer.WriteField("public_id", publicID)
	_ = writer.WriteField("timestamp", timestamp)
	_ = writer.WriteField("api_key", c.APIKey)
	_ = writer.WriteField("signature", signature)
	if err := writer.Close(); err != nil {
		return complaints.UploadResult{}, err
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return complaints.UploadResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return complaints.UploadResult{}, err
	}
	defer resp.Body.Close()

	var parsed cloudinaryUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return complaints.UploadResult{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return complaints.UploadResult{}, fmt.Errorf("cloudinary upload failed: %s", parsed.Error.Message)
	}

	return complaints.UploadResult{URL: parsed.SecureURL, PublicID: parsed.PublicID}, nil
}

// Delete destroys one object by public id. Cloudinary answers "not found"
// with a 200, which suits the idempotent detach contract.
func (c *CloudinaryClient) Delete(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	signed := url.Values{}
	signed.Set("public_id", publicID)
	signed.Set("timestamp", timestamp)
	signature := c.sign(signed)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.APIKey)
	form.Set("signature", signature)

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("cloudinary destroy failed: %s", string(raw))
	}
	return nil
}
