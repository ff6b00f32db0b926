package repositoryImp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"indash/pkg/metrics"
	"indash/pkg/query/repository"
)

const maxResponseBytes = 32 << 20

type httpExecutor struct {
	client  *http.Client
	urls    map[repository.Source]string
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewHTTP posts statements as {"query": sql} to the proxy URL of each source.
func NewHTTP(urls map[repository.Source]string, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) repository.Executor {
	return &httpExecutor{
		client:  &http.Client{Timeout: timeout},
		urls:    urls,
		log:     log.Named("query.http"),
		metrics: m,
	}
}

func (h *httpExecutor) Execute(ctx context.Context, sql string, src repository.Source) (*repository.Response, error) {
	if err := repository.CheckReadOnly(sql); err != nil {
		h.metrics.ObserveQuery(string(src), "rejected", 0)
		return nil, err
	}
	u, ok := h.urls[src]
	if !ok || u == "" {
		return nil, fmt.Errorf("no endpoint for source %q", src)
	}
	body, err := json.Marshal(map[string]string{"query": sql})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", src, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.metrics.ObserveQuery(string(src), "error", time.Since(start))
		return nil, fmt.Errorf("%s query: %w", src, err)
	}
	defer resp.Body.Close()

	out, err := decodeResponse(resp)
	h.metrics.ObserveQuery(string(src), outcome(err), time.Since(start))
	if err != nil {
		h.log.Debug("query failed", zap.String("source", string(src)), zap.Int("http_status", resp.StatusCode), zap.Error(err))
		return nil, fmt.Errorf("%s query: %w", src, err)
	}
	h.log.Debug("query ok", zap.String("source", string(src)), zap.Int("rows", len(out.Data)), zap.Duration("took", time.Since(start)))
	return out, nil
}

func decodeResponse(resp *http.Response) (*repository.Response, error) {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	trimmed := bytes.TrimSpace(b)
	if strings.Contains(ct, "text/html") || (len(trimmed) > 0 && trimmed[0] == '<') {
		return nil, fmt.Errorf("%w: http %d: %s", repository.ErrQueryFailed, resp.StatusCode, htmlMessage(b))
	}

	var out repository.Response
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: http %d: undecodable body: %v", repository.ErrQueryFailed, resp.StatusCode, err)
	}
	if out.Status == "error" || resp.StatusCode >= http.StatusBadRequest {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: http %d: %s", repository.ErrQueryFailed, resp.StatusCode, msg)
	}
	if out.Count == 0 {
		out.Count = len(out.Data)
	}
	return &out, nil
}

// htmlMessage pulls a short readable message out of a proxy error page.
func htmlMessage(b []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return truncate(string(b))
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		if h := strings.TrimSpace(doc.Find("h1").First().Text()); h != "" && h != t {
			return truncate(t + ": " + h)
		}
		return truncate(t)
	}
	return truncate(strings.Join(strings.Fields(doc.Find("body").Text()), " "))
}

func truncate(s string) string {
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
