package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"portfolio/internal/domain"
	"portfolio/internal/domain/entities"
	"portfolio/internal/ports/output"
)

var _ output.FormGateway = (*Client)(nil)

// Client forwards contact form submissions to a hosted form endpoint. Each
// call performs exactly one request.
type Client struct {
	http   *http.Client
	logger *zap.Logger
}

func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Submit posts fields as multipart/form-data and asks for a JSON answer.
// Only a 2xx status counts as delivered.
func (c *Client) Submit(ctx context.Context, destination string, fields entities.Fields) error {
	body, contentType, err := encode(fields)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destination, body)
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post form: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("form endpoint rejected submission",
			zap.String("destination", destination), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", domain.ErrRelayRejected, resp.StatusCode)
	}
	c.logger.Debug("form relayed", zap.String("destination", destination), zap.Int("status", resp.StatusCode))
	return nil
}

func encode(fields entities.Fields) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range fields[name] {
			if err := w.WriteField(name, v); err != nil {
				return nil, "", fmt.Errorf("encode field %q: %w", name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
