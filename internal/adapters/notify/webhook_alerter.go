package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
	"strings"
	"time"
)

// SignatureHeader carries "sha256=<hex HMAC of the body>" when a secret is configured.
const SignatureHeader = "X-Signature"

type alertPayload struct {
	Target         []float64 `json:"target"`
	Threshold      float64   `json:"threshold"`
	BelowThreshold []string  `json:"below_threshold"`
	Replaced       int       `json:"replaced"`
	Unreplaced     []string  `json:"unreplaced"`
	RequestID      string    `json:"request_id,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}

// WebhookAlerter implements CommanderAlerter by POSTing alerts as JSON.
// It is safe for concurrent use.
type WebhookAlerter struct {
	session       *http.Client
	url           string
	secret        string
	maxAttempts   int
	backoff       time.Duration
	maxRetryAfter time.Duration
}

// Option tunes a WebhookAlerter's delivery policy.
type Option func(*WebhookAlerter)

// WithMaxAttempts caps delivery attempts per alert; values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(w *WebhookAlerter) {
		if n >= 1 {
			w.maxAttempts = n
		}
	}
}

// WithBackoff sets the delay before the first retry; it doubles on each further retry.
func WithBackoff(d time.Duration) Option {
	return func(w *WebhookAlerter) {
		if d > 0 {
			w.backoff = d
		}
	}
}

// WithMaxRetryAfter caps how long a receiver's Retry-After header may delay a retry.
func WithMaxRetryAfter(d time.Duration) Option {
	return func(w *WebhookAlerter) { w.maxRetryAfter = d }
}

func NewWebhookAlerter(url, secret string, opts ...Option) (*WebhookAlerter, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("webhook alerter: url is empty")
	}

	w := &WebhookAlerter{
		session:       &http.Client{Timeout: 10 * time.Second},
		url:           url,
		secret:        secret,
		maxAttempts:   4,
		backoff:       200 * time.Millisecond,
		maxRetryAfter: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Sign returns the signature header value for body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func (w *WebhookAlerter) AlertCommander(ctx context.Context, alert domain.Alert) (err error) {
	defer obs.Time(ctx, "webhook.AlertCommander")(&err)

	payload, err := json.Marshal(alertPayload{
		Target:         alert.Target.ToList(),
		Threshold:      alert.Threshold,
		BelowThreshold: alert.BelowThreshold,
		Replaced:       alert.Replaced,
		Unreplaced:     alert.Unreplaced,
		RequestID:      obs.RequestID(ctx),
		SentAt:         time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	resp, err := w.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := w.newRequest(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		if w.secret != "" {
			req.Header.Set(SignatureHeader, Sign(w.secret, payload))
		}
		return req, nil
	})
	if err != nil {
		return fmt.Errorf("alert webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
