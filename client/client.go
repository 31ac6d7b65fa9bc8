package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/theossalmeida/front-great-people/log"
	"github.com/theossalmeida/front-great-people/model"
)

// Client talks to the pesquisas backend. It never retries and sets no
// timeout of its own: callers get the backend outcome as is.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
	}
}

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	if body := bytes.TrimSpace(e.Body); len(body) > 0 {
		msg += ": " + string(body)
	}
	return msg
}

func (c *Client) ListRecords(ctx context.Context) ([]model.Pesquisa, error) {
	body, err := c.do(ctx, http.MethodGet, "pesquisas", "", nil)
	if err != nil {
		return nil, err
	}

	records := []model.Pesquisa{}
	if len(bytes.TrimSpace(body)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode pesquisas: %w", err)
	}
	return records, nil
}

func (c *Client) UpsertRecord(ctx context.Context, record model.Pesquisa) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode pesquisa: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "pesquisas", "application/json", bytes.NewReader(payload))
	return err
}

func (c *Client) DeleteRecord(ctx context.Context, id model.RecordID) error {
	_, err := c.do(ctx, http.MethodDelete, "pesquisas/"+url.PathEscape(id.String()), "", nil)
	return err
}

func (c *Client) UploadFile(ctx context.Context, filename string, file io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	_, err = c.do(ctx, http.MethodPost, "upload", writer.FormDataContentType(), &body)
	return err
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	target := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Debugf("api.%s %s: %s", method, target, err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	log.Debugf("api.%s %s: %d", method, target, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}
	return respBody, nil
}
