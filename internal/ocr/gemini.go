package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"timecard-service/internal/timecard/model"
)

// Options configure the Gemini generateContent client.
type Options struct {
	BaseURL    string        // default https://generativelanguage.googleapis.com
	Model      string        // default gemini-2.5-flash
	APIKey     string        // required
	Timeout    time.Duration // per-request; default 60s
	Retries    int           // extra attempts after the first; default 2
	RetryDelay time.Duration // attempt n waits n*RetryDelay; default 2s
}

func (o *Options) defaults() {
	if o.BaseURL == "" {
		o.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if o.Model == "" {
		o.Model = "gemini-2.5-flash"
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = 2 * time.Second
	}
}

// ErrNoAPIKey means the collaborator is not configured; the rest of the
// service still works without it.
var ErrNoAPIKey = errors.New("ocr: missing api key")

// Gemini is the production OCR client.
type Gemini struct {
	hc      *http.Client
	url     string
	key     string
	retries int
	delay   time.Duration
}

func NewGemini(opts Options) (*Gemini, error) {
	opts.defaults()
	if opts.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	u := strings.TrimRight(opts.BaseURL, "/") +
		"/v1beta/models/" + url.PathEscape(opts.Model) + ":generateContent"
	return &Gemini{
		hc:      &http.Client{Timeout: opts.Timeout},
		url:     u,
		key:     opts.APIKey,
		retries: opts.Retries,
		delay:   opts.RetryDelay,
	}, nil
}

// Request/response DTOs, minimal fields only.
type gmInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}
type gmPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *gmInlineData `json:"inline_data,omitempty"`
}
type gmContent struct {
	Parts []gmPart `json:"parts"`
}
type gmReq struct {
	Contents []gmContent `json:"contents"`
}
type gmResp struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// upstreamError maps HTTP 5xx/408 to a retryable network-class error.
type upstreamError struct {
	status int
	msg    string
}

func (e upstreamError) Error() string   { return fmt.Sprintf("gemini upstream %d: %s", e.status, e.msg) }
func (e upstreamError) Timeout() bool   { return e.status == http.StatusRequestTimeout }
func (e upstreamError) Temporary() bool { return e.status/100 == 5 }

// ExtractPage sends one page inline and decodes the returned record array.
// Temporary upstream failures are retried a fixed number of times with a
// linearly growing delay.
func (g *Gemini) ExtractPage(ctx context.Context, p Page) ([]model.RawRecord, error) {
	req := gmReq{Contents: []gmContent{{Parts: []gmPart{
		{InlineData: &gmInlineData{
			MIMEType: p.MIME,
			Data:     base64.StdEncoding.EncodeToString(p.Data),
		}},
		{Text: pagePrompt(p.Name)},
	}}}}

	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * g.delay):
			}
		}
		text, err := g.generate(ctx, &req)
		if err == nil {
			return DecodeRecords(text)
		}
		lastErr = err
		if ctx.Err() != nil || !temporary(err) {
			break
		}
	}
	return nil, lastErr
}

func (g *Gemini) generate(ctx context.Context, body *gmReq) (string, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	u := g.url + "?key=" + url.QueryEscape(g.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", upstreamError{status: resp.StatusCode, msg: truncate(string(raw), 512)}
	}

	var out gmResp
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	var sb strings.Builder
	for _, c := range out.Candidates {
		for _, part := range c.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: response contained no text")
	}
	return sb.String(), nil
}

func temporary(err error) bool {
	var ue upstreamError
	if errors.As(err, &ue) {
		return ue.Temporary() || ue.Timeout()
	}
	var ne net.Error
	return errors.As(err, &ne) // transport hiccup, worth another try
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
