package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// ProgressFunc receives upload progress as a percentage in [0, 100].
type ProgressFunc func(percent float64)

// UploadPhoto sends p as multipart field "file". Uploads are never retried.
func (c *Client) UploadPhoto(ctx context.Context, p Photo, onProgress ProgressFunc) (*UploadResponse, error) {
	start := time.Now()
	resp, err := c.uploadPhoto(ctx, p, onProgress)
	c.obs.observe(EndpointUpload, start, err)
	if err != nil {
		c.log.Error("photo upload failed", "file", p.FileName, "size", len(p.Content), "err", err)
	}
	return resp, err
}

func (c *Client) uploadPhoto(ctx context.Context, p Photo, onProgress ProgressFunc) (*UploadResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(p.FileName)))
	ct := p.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := part.Write(p.Content); err != nil {
		return nil, fmt.Errorf("writing multipart part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	total := int64(buf.Len())
	body := &progressReader{r: &buf, total: total, fn: onProgress, last: -1}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+EndpointUpload, body)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body.report(0)
	resp, err := c.upload.Do(req)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, fmt.Errorf("uploading photo: %w", ctx.Err())
		case isTimeout(err):
			return nil, ErrUploadTimeout
		default:
			c.log.Warn("upload transport failure", "err", err)
			return nil, ErrUploadNetwork
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrUploadTimeout
		}
		return nil, ErrUploadNetwork
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Detail any `json:"detail"`
		}
		msg := fmt.Sprintf("Upload failed: %d", resp.StatusCode)
		if json.Unmarshal(raw, &e) == nil {
			if s, ok := e.Detail.(string); ok && s != "" {
				msg = s
			}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}

	var out UploadResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, ErrInvalidResponse
	}
	return &out, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

// progressReader reports how much of the body the transport has consumed.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	fn    ProgressFunc
	last  float64
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 {
		p.report(float64(p.read) / float64(p.total) * 100)
	}
	return n, err
}

// report forwards pct when it moved forward.
func (p *progressReader) report(pct float64) {
	if p.fn == nil || pct <= p.last {
		return
	}
	if pct > 100 {
		pct = 100
	}
	p.last = pct
	p.fn(pct)
}
