package twilio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"marketer/internal/domain"
)

// Client sends WhatsApp-channel messages through Twilio's Messages
// API. Addresses use the "whatsapp:+<number>" form; the prefix is
// added when the caller leaves it off.
type Client struct {
	AccountSID string
	AuthToken  string
	HTTP       *http.Client

	FromNumber string
	BaseURL    string
}

type SendResponse struct {
	Sid       string `json:"sid"`
	Status    string `json:"status"`
	ErrorCode *int   `json:"error_code"`
	Message   string `json:"message"`
}

func (c *Client) Configured() bool {
	return c != nil && c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

func (c *Client) SendWhatsApp(ctx context.Context, to, body string) (SendResponse, error) {
	form := url.Values{}
	form.Set("From", whatsAppAddress(c.FromNumber))
	form.Set("To", whatsAppAddress(to))
	form.Set("Body", body)

	baseURL := strings.TrimRight(c.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	endpoint := baseURL + "/2010-04-01/Accounts/" + c.AccountSID + "/Messages.json"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return SendResponse{}, &domain.UpstreamError{Provider: "twilio", Detail: err.Error(), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.SetBasicAuth(c.AccountSID, c.AuthToken)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return SendResponse{}, &domain.UpstreamError{Provider: "twilio", Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)

	var out SendResponse
	_ = json.Unmarshal(b, &out)

	// Twilio returns 201 for created; treat 2xx as success
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := out.Message
		if detail == "" {
			detail = "unexpected status " + resp.Status
		}
		return out, &domain.UpstreamError{Provider: "twilio", Detail: detail}
	}
	return out, nil
}

func whatsAppAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
