package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gazesim/internal/modules/tracking/domain"
	trackingdto "gazesim/internal/modules/tracking/dto"
	trackingout "gazesim/internal/modules/tracking/port/out"
	apperrors "gazesim/internal/platform/errors"
)

type HTTPSubmitter struct {
	client   *http.Client
	endpoint string
}

// NewHTTPSubmitter posts summaries to baseURL+path. A zero timeout means the
// request is bounded only by the caller's context.
func NewHTTPSubmitter(baseURL, path string, timeout time.Duration) trackingout.Submitter {
	return &HTTPSubmitter{
		client:   &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(baseURL, "/") + path,
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, summary domain.AttentionSummary) error {
	body, err := json.Marshal(trackingdto.FromSummary(summary))
	if err != nil {
		return fmt.Errorf("%w: encode summary: %v", apperrors.ErrSubmissionFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", apperrors.ErrSubmissionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post %s: %v", apperrors.ErrSubmissionFailed, s.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", apperrors.ErrSubmissionFailed, s.endpoint, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	var ack json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("%w: decode response: %v", apperrors.ErrSubmissionFailed, err)
	}
	return nil
}
