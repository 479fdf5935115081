package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"marketer/internal/domain"
	"marketer/internal/observability"
	"marketer/internal/providers/smsgateway"
	"marketer/internal/store"
)

// DefaultBatchSize is the gateway's per-call recipient limit.
const DefaultBatchSize = 100

type BatchSender interface {
	SendBatch(ctx context.Context, message string, recipients []string) (smsgateway.BatchResponse, error)
}

// DispatchResult reports the accounting of one campaign send.
type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// Dispatcher drives a campaign through the gateway in fixed-size
// batches. A failed batch counts all its members as failed and the
// remaining batches still go out; there are no retries.
type Dispatcher struct {
	Campaigns *store.CampaignStore
	Contacts  *store.ContactStore
	Gateway   BatchSender
	Limiter   *rate.Limiter
	Breaker   *gobreaker.CircuitBreaker
	BatchSize int
}

func (d *Dispatcher) Send(ctx context.Context, id int) (DispatchResult, error) {
	if d.Gateway == nil {
		return DispatchResult{}, &domain.ConfigurationError{
			Provider: "sms gateway",
			Hint:     "set SMS_API_KEY and SMS_SENDER_ID",
		}
	}

	c, err := d.Campaigns.Get(id)
	if err != nil {
		return DispatchResult{}, err
	}
	if c.Status == domain.CampaignSent {
		return DispatchResult{}, domain.Conflict("campaign has already been sent")
	}

	recipients, err := d.resolveRecipients(c)
	if err != nil {
		return DispatchResult{}, err
	}

	batchSize := d.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var sent, failed int
	for start := 0; start < len(recipients); start += batchSize {
		end := start + batchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		batch := recipients[start:end]

		s, f := d.sendBatch(ctx, c, batch)
		sent += s
		failed += f
	}

	updated, err := d.Campaigns.MarkSent(id, sent, failed, len(recipients), time.Now().UTC())
	if err != nil {
		return DispatchResult{}, err
	}

	slog.Info("campaign dispatched",
		"campaign_id", updated.ID,
		"sent", sent,
		"failed", failed,
		"total", len(recipients),
	)
	return DispatchResult{Sent: sent, Failed: failed, Total: len(recipients)}, nil
}

func (d *Dispatcher) resolveRecipients(c domain.SMSCampaign) ([]string, error) {
	switch c.Audience {
	case domain.AudienceManual:
		// Creation validates the manual list; an empty one here means
		// the record was tampered with or predates that check.
		if len(c.ManualPhoneNumbers) == 0 {
			return nil, domain.Validation("manual campaign has no phone numbers")
		}
		return c.ManualPhoneNumbers, nil
	case domain.AudienceOptedIn:
		contacts := d.Contacts.List(domain.ContactFilter{OptInStatus: domain.OptedIn})
		if len(contacts) == 0 {
			return nil, domain.Validation("no opted-in contacts to send to")
		}
		return phonesOf(contacts), nil
	default:
		return phonesOf(d.Contacts.List(domain.ContactFilter{})), nil
	}
}

// sendBatch issues a single gateway call for one batch and classifies
// every member as sent or failed. A transport error, or the breaker
// refusing the call, fails the whole batch.
func (d *Dispatcher) sendBatch(ctx context.Context, c domain.SMSCampaign, batch []string) (sent, failed int) {
	if d.Limiter != nil {
		waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := d.Limiter.Wait(waitCtx)
		cancel()
		if err != nil {
			observability.CampaignBatches.WithLabelValues("rate_limited").Inc()
			return 0, len(batch)
		}
	}

	start := time.Now()
	resp, err := d.execute(ctx, c.Message, batch)
	if err != nil {
		observability.CampaignBatches.WithLabelValues("error").Inc()
		observability.ProviderSend.WithLabelValues("smsgateway", "error").Inc()
		slog.Warn("campaign batch failed",
			"campaign_id", c.ID,
			"batch_size", len(batch),
			"err", err,
		)
		return 0, len(batch)
	}

	observability.CampaignBatches.WithLabelValues("ok").Inc()
	observability.ProviderSend.WithLabelValues("smsgateway", "ok").Inc()
	observability.ProviderLatency.Observe(time.Since(start).Seconds())

	for _, rs := range resp.Recipients {
		if rs.Delivered() {
			sent++
		}
	}
	if sent > len(batch) {
		sent = len(batch)
	}
	// Recipients the gateway did not report as accepted count as failed.
	return sent, len(batch) - sent
}

func (d *Dispatcher) execute(ctx context.Context, message string, batch []string) (smsgateway.BatchResponse, error) {
	if d.Breaker == nil {
		return d.Gateway.SendBatch(ctx, message, batch)
	}
	res, err := d.Breaker.Execute(func() (any, error) {
		return d.Gateway.SendBatch(ctx, message, batch)
	})
	if err != nil {
		return smsgateway.BatchResponse{}, err
	}
	return res.(smsgateway.BatchResponse), nil
}

func phonesOf(contacts []domain.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Phone)
	}
	return out
}
