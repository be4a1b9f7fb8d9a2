package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CheckoutSession is what the processor returns for a started payment.
type CheckoutSession struct {
	ID          string
	CheckoutURL string
}

// SessionStatus is the processor's view of a session.
type SessionStatus struct {
	ID   string
	Paid bool
}

// Processor abstracts the external payment provider.
type Processor interface {
	CreateSession(ctx context.Context, userID string, pack Pack, reference string) (CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (SessionStatus, error)
}

// HTTPProcessor talks to the payment provider's REST API with form-encoded
// requests and bearer auth.
type HTTPProcessor struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewHTTPProcessor constructs an HTTPProcessor.
func NewHTTPProcessor(baseURL, secretKey string) (*HTTPProcessor, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("PAYMENT_API_URL is required")
	}
	if strings.TrimSpace(secretKey) == "" {
		return nil, fmt.Errorf("PAYMENT_SECRET_KEY is required")
	}
	return &HTTPProcessor{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type sessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	Error         *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// CreateSession starts a checkout session for one pack. The reference is our
// transaction ID, echoed back by the provider so confirmations can be tied
// to the originating purchase.
func (p *HTTPProcessor) CreateSession(ctx context.Context, userID string, pack Pack, reference string) (CheckoutSession, error) {
	form := url.Values{}
	form.Set("amount", strconv.Itoa(pack.PriceCents))
	form.Set("currency", pack.Currency)
	form.Set("client_reference_id", reference)
	form.Set("metadata[user_id]", userID)
	form.Set("metadata[pack_id]", pack.ID)

	resp, err := p.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return CheckoutSession{}, err
	}
	if resp.ID == "" || resp.URL == "" {
		return CheckoutSession{}, fmt.Errorf("payment session response incomplete")
	}
	return CheckoutSession{ID: resp.ID, CheckoutURL: resp.URL}, nil
}

// GetSession fetches the current status of a checkout session.
func (p *HTTPProcessor) GetSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	resp, err := p.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return SessionStatus{}, err
	}
	return SessionStatus{
		ID:   resp.ID,
		Paid: resp.PaymentStatus == "paid",
	}, nil
}

func (p *HTTPProcessor) do(ctx context.Context, method, path string, body io.Reader) (sessionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return sessionResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return sessionResponse{}, fmt.Errorf("payment api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return sessionResponse{}, err
	}

	var parsed sessionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return sessionResponse{}, fmt.Errorf("payment api response parse: %w", err)
	}
	if parsed.Error != nil {
		return sessionResponse{}, fmt.Errorf("payment api error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return sessionResponse{}, fmt.Errorf("payment api status %d", resp.StatusCode)
	}
	return parsed, nil
}

var _ Processor = (*HTTPProcessor)(nil)
