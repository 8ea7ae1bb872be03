package screener

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"go.uber.org/zap"
)

const contentType = "application/json"

// errorResponse is the body the service sends alongside a non-2xx status.
type errorResponse struct {
	Detail string `json:"detail"`
}

// ServiceError is a reply from the screening service with a non-success
// status. Detail is empty when the body carried no machine-readable detail.
type ServiceError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("bad status: %s", e.Status)
}

// postMultipart makes a single multipart POST request with the given text
// fields and one file part, and returns the decoded JSON response body.
func (c *Client) postMultipart(ctx context.Context, url string, fields map[string]string, fileField string, file *ResumeFile) (map[string]any, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	for key, val := range fields {
		field, err := w.CreateFormField(key)
		if err != nil {
			return nil, err
		}

		_, err = io.Copy(field, strings.NewReader(val))
		if err != nil {
			return nil, err
		}
	}

	part, err := createFilePart(w, fileField, file)
	if err != nil {
		return nil, err
	}

	if _, err = part.Write(file.Data); err != nil {
		return nil, err
	}
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &b)
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newServiceError(resp, data)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	return payload, nil
}

// createFilePart adds a file part carrying the resume's original filename and
// declared media type. multipart.CreateFormFile is not used because it pins
// the part's Content-Type to application/octet-stream.
func createFilePart(w *multipart.Writer, fieldName string, file *ResumeFile) (io.Writer, error) {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, file.Name))
	header.Set("Content-Type", file.ContentType)

	return w.CreatePart(header)
}

func (c *Client) getJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return newServiceError(resp, data)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return err
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)

	return req
}

func newServiceError(resp *http.Response, body []byte) *ServiceError {
	serviceErr := &ServiceError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		serviceErr.Detail = strings.TrimSpace(parsed.Detail)
	}

	return serviceErr
}
