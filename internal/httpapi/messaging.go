package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"marketer/internal/domain"
	"marketer/internal/observability"
)

func (a *API) handleSendTest(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validation("invalid json"))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}
	if !a.WhatsApp.Configured() {
		respondError(w, &domain.ConfigurationError{
			Provider: "twilio",
			Hint:     "set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_WHATSAPP_FROM",
		})
		return
	}

	resp, err := a.WhatsApp.SendWhatsApp(r.Context(), req.To, req.Body)
	if err != nil {
		observability.ProviderSend.WithLabelValues("twilio", "error").Inc()
		slog.Error("whatsapp test send failed", "err", err, "to", req.To)
		respondError(w, err)
		return
	}

	observability.ProviderSend.WithLabelValues("twilio", "ok").Inc()
	respondOK(w, map[string]any{"sid": resp.Sid, "status": resp.Status})
}

func (a *API) handleSendSMS(w http.ResponseWriter, r *http.Request) {
	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validation("invalid json"))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}
	if !a.SMS.Configured() {
		respondError(w, &domain.ConfigurationError{
			Provider: "sms gateway",
			Hint:     "set SMS_API_KEY and SMS_SENDER_ID",
		})
		return
	}

	rs, err := a.SMS.SendOne(r.Context(), req.To, req.Body)
	if err != nil {
		observability.ProviderSend.WithLabelValues("smsgateway", "error").Inc()
		slog.Error("sms test send failed", "err", err, "to", req.To)
		respondError(w, err)
		return
	}

	observability.ProviderSend.WithLabelValues("smsgateway", "ok").Inc()
	respondOK(w, map[string]any{"sid": rs.MessageID, "status": rs.Status})
}
