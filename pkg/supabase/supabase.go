package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"text_trans_api/config"
	"text_trans_api/pkg/httpclient"
)

// Thin access layer over the Supabase REST interface. Every table the
// service touches goes through these four calls with the service-role
// key; row-level security is bypassed on purpose, authorization happens
// in the handlers.

func restURL(table string, query url.Values) string {
	baseURL := fmt.Sprintf("%s/rest/v1/%s", config.Cfg.Supabase.SupabaseUrl, table)
	if len(query) == 0 {
		return baseURL
	}
	return fmt.Sprintf("%s?%s", baseURL, query.Encode())
}

func setServiceHeaders(req *http.Request) {
	req.Header.Set("apikey", config.Cfg.Supabase.SupabaseSecretKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", config.Cfg.Supabase.SupabaseSecretKey))
	req.Header.Set("Accept", "application/json")
}

// Select runs a filtered query and returns the raw JSON array.
func Select(ctx context.Context, table string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", restURL(table, query), nil)
	if err != nil {
		return nil, err
	}
	setServiceHeaders(req)

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("select %s failed: %s, %s", table, resp.Status, string(bodyBytes))
	}

	return bodyBytes, nil
}

// SelectInto unmarshals a Select result into dest (a slice pointer).
func SelectInto(ctx context.Context, table string, query url.Values, dest interface{}) error {
	bodyBytes, err := Select(ctx, table, query)
	if err != nil {
		return err
	}
	return json.Unmarshal(bodyBytes, dest)
}

// Insert creates a row. The payload is any JSON-marshalable value.
func Insert(ctx context.Context, table string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", restURL(table, nil), bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	setServiceHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("insert %s failed: %s, %s", table, resp.Status, string(bodyBytes))
	}

	return nil
}

// Update patches every row matching the query.
func Update(ctx context.Context, table string, query url.Values, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "PATCH", restURL(table, query), bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	setServiceHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("update %s failed: %s, %s", table, resp.Status, string(bodyBytes))
	}

	return nil
}

// Delete removes every row matching the query.
func Delete(ctx context.Context, table string, query url.Values) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", restURL(table, query), nil)
	if err != nil {
		return err
	}
	setServiceHeaders(req)

	resp, err := httpclient.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete %s failed: %s, %s", table, resp.Status, string(bodyBytes))
	}

	return nil
}
