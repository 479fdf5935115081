package smsgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"marketer/internal/domain"
)

// Client talks to the bulk-SMS gateway. One call carries a message and
// up to the provider's batch limit of recipients; the response reports
// a status per recipient.
type Client struct {
	APIKey   string
	SenderID string
	BaseURL  string
	HTTP     *http.Client
}

type sendPayload struct {
	SenderID   string   `json:"senderId"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"`
}

// RecipientStatus is the gateway's per-recipient outcome.
type RecipientStatus struct {
	Number    string `json:"number"`
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
	Code      int    `json:"code"`
}

// Delivered reports whether the gateway accepted the message for this
// recipient. Anything it did not accept counts as failed.
func (r RecipientStatus) Delivered() bool {
	if r.Code == 200 {
		return true
	}
	switch strings.ToLower(r.Status) {
	case "sent", "queued", "success":
		return true
	}
	return false
}

type BatchResponse struct {
	Message    string            `json:"message"`
	Recipients []RecipientStatus `json:"recipients"`
}

func (c *Client) Configured() bool {
	return c != nil && c.APIKey != "" && c.SenderID != ""
}

func (c *Client) SendBatch(ctx context.Context, message string, recipients []string) (BatchResponse, error) {
	body, err := json.Marshal(sendPayload{
		SenderID:   c.SenderID,
		Message:    message,
		Recipients: recipients,
	})
	if err != nil {
		return BatchResponse{}, err
	}

	baseURL := strings.TrimRight(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.smsleopard.com"
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/sms/send", bytes.NewReader(body))
	if err != nil {
		return BatchResponse{}, &domain.UpstreamError{Provider: "sms gateway", Detail: err.Error(), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Basic "+c.APIKey)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return BatchResponse{}, &domain.UpstreamError{Provider: "sms gateway", Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	var out BatchResponse
	_ = json.Unmarshal(b, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := out.Message
		if detail == "" {
			detail = "unexpected status " + resp.Status
		}
		return out, &domain.UpstreamError{Provider: "sms gateway", Detail: detail}
	}
	return out, nil
}

// SendOne sends a single SMS through the same batch endpoint.
func (c *Client) SendOne(ctx context.Context, to, body string) (RecipientStatus, error) {
	resp, err := c.SendBatch(ctx, body, []string{to})
	if err != nil {
		return RecipientStatus{}, err
	}
	if len(resp.Recipients) == 0 {
		return RecipientStatus{}, &domain.UpstreamError{Provider: "sms gateway", Detail: "no recipient status in response"}
	}
	rs := resp.Recipients[0]
	if !rs.Delivered() {
		return rs, &domain.UpstreamError{Provider: "sms gateway", Detail: rs.Status}
	}
	return rs, nil
}
