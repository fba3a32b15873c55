// Package tracking talks to the external delivery-tracking service. The
// office does not run its own courier integration; an upstream system owns
// the real delivery state and is polled on demand.
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// StatusUpdate is what the tracker knows about one delivery. A nil update
// means the tracker has no data, which is not an error.
type StatusUpdate struct {
	Status      string     // Lifecycle status as reported upstream
	DeliveredAt *time.Time // Set once the recipient received the item
}

// API is the subset of the tracker used by the bill lifecycle
type API interface {
	// CheckDeliveryStatus polls the tracker for one tracking number
	CheckDeliveryStatus(ctx context.Context, trackingNumber string) (*StatusUpdate, error)
	// PushStatus informs the tracker that a dispatch happened
	PushStatus(ctx context.Context, trackingNumber, status string) error
}

// Client is the HTTP implementation of API
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a tracker client with a bounded request timeout
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type statusPayload struct {
	Status      string `json:"status"`
	DeliveredAt string `json:"delivered_at"`
}

// CheckDeliveryStatus polls the tracker for one tracking number
func (c *Client) CheckDeliveryStatus(ctx context.Context, trackingNumber string) (*StatusUpdate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/deliveries/"+trackingNumber, nil)
	if err != nil {
		return nil, err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusNoContent:
		return nil, nil // Tracker has nothing for this number
	case http.StatusOK:
		// fall through to decode
	default:
		return nil, fmt.Errorf("tracking api returned %d", resp.StatusCode)
	}

	var payload statusPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tracking api response: %w", err)
	}
	if payload.Status == "" {
		return nil, nil
	}
	update := &StatusUpdate{Status: payload.Status}
	if payload.DeliveredAt != "" {
		t, err := time.Parse(time.RFC3339, payload.DeliveredAt)
		if err != nil {
			return nil, fmt.Errorf("tracking api delivered_at: %w", err)
		}
		update.DeliveredAt = &t
	}
	return update, nil
}

// PushStatus informs the tracker that a dispatch happened. Callers treat
// this as best-effort; the send itself already succeeded.
func (c *Client) PushStatus(ctx context.Context, trackingNumber, status string) error {
	body := strings.NewReader(fmt.Sprintf(`{"status":%q}`, status))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.BaseURL+"/v1/deliveries/"+trackingNumber, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("tracking api returned %d", resp.StatusCode)
	}
	logrus.WithFields(logrus.Fields{
		"tracking_number": trackingNumber,
		"status":          status,
	}).Debug("Pushed delivery status upstream")
	return nil
}
