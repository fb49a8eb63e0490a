package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/imago-ui/imago/pkg/imagebutton"
)

// Client posts files to an upload handler and reports transfer
// progress. Its Func method plugs directly into
// imagebutton.Config.OnImageUpload.
type Client struct {
	// Endpoint is the full URL of the upload handler.
	Endpoint string

	// HTTPClient is used for requests. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// NewClient creates a Client posting to endpoint.
func NewClient(endpoint string) *Client {
	return &Client{Endpoint: endpoint}
}

// Func returns an upload function for imagebutton.Config.OnImageUpload.
// On success it resolves to the decoded *Response.
func (c *Client) Func() imagebutton.UploadFunc {
	return func(ctx context.Context, file imagebutton.File, report imagebutton.ReportProgress) (any, error) {
		return c.Upload(ctx, file.Name, file.Data, report)
	}
}

// Upload posts one file as a multipart form, invoking report with the
// transfer percentage as the request body is consumed. A nil report is
// allowed.
func (c *Client) Upload(ctx context.Context, filename string, data []byte, report imagebutton.ReportProgress) (*Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	pr := &progressReader{
		r:      &body,
		total:  int64(body.Len()),
		report: report,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = pr.total

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("upload: server returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("upload: decode response: %w", err)
	}
	return &out, nil
}

// progressReader reports the percentage of the body consumed by the
// transport. Percentages are deduplicated so report fires at most once
// per distinct value.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report imagebutton.ReportProgress
	last   int
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)

	if p.report != nil && p.total > 0 {
		percent := int(p.read * 100 / p.total)
		if percent > 100 {
			percent = 100
		}
		if percent != p.last {
			p.last = percent
			p.report(percent)
		}
	}
	return n, err
}
