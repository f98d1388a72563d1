package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text_trans_api/config"
	"text_trans_api/pkg/httpclient"

	"github.com/google/uuid"
)

// Supabase object storage. Translated documents live in the configured
// bucket; callers get capability-bearing signed URLs with a bounded
// lifetime instead of direct object access.

func setServiceHeaders(req *http.Request) {
	req.Header.Set("apikey", config.Cfg.Supabase.SupabaseSecretKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", config.Cfg.Supabase.SupabaseSecretKey))
}

// NewObjectKey returns a collision-free per-user object key.
func NewObjectKey(userid string, filename string) string {
	return fmt.Sprintf("%s/%s-%s", userid, uuid.New().String(), filename)
}

func Upload(ctx context.Context, bucket string, key string, data []byte, contentType string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", config.Cfg.Supabase.SupabaseUrl, bucket, key)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	setServiceHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload %s/%s failed: %s, %s", bucket, key, resp.Status, string(bodyBytes))
	}

	return nil
}

func Download(ctx context.Context, bucket string, key string) ([]byte, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", config.Cfg.Supabase.SupabaseUrl, bucket, key)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	setServiceHeaders(req)

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s/%s failed: %s", bucket, key, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// CreateSignedURL asks the platform for a time-limited download URL.
func CreateSignedURL(ctx context.Context, bucket string, key string, expirySeconds int) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{"expiresIn": expirySeconds})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", config.Cfg.Supabase.SupabaseUrl, bucket, key)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	setServiceHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sign %s/%s failed: %s, %s", bucket, key, resp.Status, string(bodyBytes))
	}

	var signed struct {
		SignedURL string `json:"signedURL"`
	}
	if err := json.Unmarshal(bodyBytes, &signed); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/storage/v1%s", config.Cfg.Supabase.SupabaseUrl, signed.SignedURL), nil
}

// FetchURL downloads an arbitrary URL through the shared client. The
// extract handler uses it for previously uploaded files referenced by
// signed URL.
func FetchURL(ctx context.Context, fileURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fileURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
