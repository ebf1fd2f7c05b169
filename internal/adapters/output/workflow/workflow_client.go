package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"chat-relay/configs"
	"chat-relay/internal/domain"
	"chat-relay/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure WorkflowClientAdapter implements WorkflowClient interface
var _ output.WorkflowClient = (*WorkflowClientAdapter)(nil)

// maxReplyBytes caps how much of a reply body is read
const maxReplyBytes = 4 << 20

// ErrReplyTooLarge is the cause of a reply longer than maxReplyBytes
var ErrReplyTooLarge = fmt.Errorf("reply exceeds %d bytes", maxReplyBytes)

// WorkflowClientAdapter struct - Output adapter for the remote automation workflow webhook
type WorkflowClientAdapter struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

// NewWorkflowClientAdapter func - Creates new workflow client adapter.
// The endpoint URL is required; a zero timeout falls back to 30 seconds.
func NewWorkflowClientAdapter(config configs.Workflow) (*WorkflowClientAdapter, error) {
	url := strings.TrimSpace(config.URL)
	if url == "" {
		return nil, configs.ErrMissingWorkflowURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = configs.DefaultWorkflowTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	adapter := &WorkflowClientAdapter{
		httpClient: httpClient,
		url:        url,
		timeout:    timeout,
	}

	logrus.Infof("Workflow client adapter initialized with URL: %s, timeout: %v", url, timeout)

	return adapter, nil
}

// Send posts one message to the workflow webhook.
// A single attempt is made; failures come back as *domain.WorkflowError.
func (a *WorkflowClientAdapter) Send(ctx context.Context, request domain.OutboundRequest) (domain.JSONValue, error) {
	bodyBytes, err := json.Marshal(request)
	if err != nil {
		return domain.JSONValue{}, domain.NewUnknownError(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return domain.JSONValue{}, domain.NewTransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return domain.JSONValue{}, a.classify(err)
	}
	defer resp.Body.Close()

	log := logrus.WithFields(logrus.Fields{
		"session_id": request.SessionID,
		"status":     resp.StatusCode,
		"elapsed":    time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxReplyBytes))
		log.Warn("Workflow returned non-success status")
		return domain.JSONValue{}, domain.NewTransportError(statusError(resp.StatusCode, a.url))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes+1))
	if err != nil {
		return domain.JSONValue{}, a.classify(fmt.Errorf("failed to read response: %w", err))
	}
	if len(body) > maxReplyBytes {
		log.Warn("Workflow reply exceeds size cap")
		return domain.JSONValue{}, domain.NewOversizeError(ErrReplyTooLarge)
	}

	var payload domain.JSONValue
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Warnf("Workflow reply is not valid JSON: %v", err)
		return domain.JSONValue{}, domain.NewMalformedError(err)
	}

	log.Infof("Workflow reply received, shape: %s", payload.Kind)

	return payload, nil
}

// classify maps a transport-level error onto a failure kind
func (a *WorkflowClientAdapter) classify(err error) *domain.WorkflowError {
	if isTimeout(err) {
		logrus.Warnf("Workflow request timed out after %v: %v", a.timeout, err)
		return domain.NewTimeoutError(err)
	}
	if errors.Is(err, context.Canceled) {
		return domain.NewUnknownError(err)
	}
	logrus.Warnf("Workflow request failed: %v", err)
	return domain.NewTransportError(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusError describes a non-2xx reply the way HTTP client libraries usually do
func statusError(code int, url string) error {
	class := "Server"
	if code < 500 {
		class = "Client"
	}
	return fmt.Errorf("%d %s Error: %s for url: %s", code, class, http.StatusText(code), url)
}
