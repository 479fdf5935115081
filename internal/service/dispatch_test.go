package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"marketer/internal/domain"
	"marketer/internal/providers/smsgateway"
	"marketer/internal/store"
)

type fakeGateway struct {
	calls  [][]string
	failOn map[int]bool // 1-indexed call number
}

func (g *fakeGateway) SendBatch(ctx context.Context, message string, recipients []string) (smsgateway.BatchResponse, error) {
	g.calls = append(g.calls, recipients)
	if g.failOn[len(g.calls)] {
		return smsgateway.BatchResponse{}, errors.New("gateway timeout")
	}
	out := smsgateway.BatchResponse{}
	for _, r := range recipients {
		out.Recipients = append(out.Recipients, smsgateway.RecipientStatus{
			Number: r, Status: "queued", Code: 200,
		})
	}
	return out, nil
}

func newDispatchFixture(t *testing.T) (*Dispatcher, *store.CampaignStore, *store.ContactStore) {
	t.Helper()
	contacts := store.NewContactStore(filepath.Join(t.TempDir(), "contacts.json"))
	if err := contacts.Load(); err != nil {
		t.Fatalf("load contacts: %v", err)
	}
	campaigns := store.NewCampaignStore()
	d := &Dispatcher{Campaigns: campaigns, Contacts: contacts, Gateway: &fakeGateway{}}
	return d, campaigns, contacts
}

func manualNumbers(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("+25470000%04d", i)
	}
	return out
}

func TestDispatchBatchAccountingAllSuccess(t *testing.T) {
	d, campaigns, _ := newDispatchFixture(t)
	gw := d.Gateway.(*fakeGateway)
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceManual,
		ManualPhoneNumbers: manualNumbers(250), TotalCount: 250,
		Status: domain.CampaignDraft, CreatedAt: time.Now().UTC(),
	})

	res, err := d.Send(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(gw.calls) != 3 {
		t.Fatalf("batches = %d, want 3", len(gw.calls))
	}
	if got := []int{len(gw.calls[0]), len(gw.calls[1]), len(gw.calls[2])}; got[0] != 100 || got[1] != 100 || got[2] != 50 {
		t.Fatalf("batch sizes = %v, want [100 100 50]", got)
	}
	if res.Sent != 250 || res.Failed != 0 || res.Total != 250 {
		t.Fatalf("result = %+v, want 250/0/250", res)
	}

	updated, _ := campaigns.Get(c.ID)
	if updated.Status != domain.CampaignSent || updated.SentCount != 250 || updated.SentAt == nil {
		t.Fatalf("campaign not marked sent: %+v", updated)
	}
}

func TestDispatchFailedBatchDoesNotAbortRest(t *testing.T) {
	d, campaigns, _ := newDispatchFixture(t)
	d.Gateway = &fakeGateway{failOn: map[int]bool{2: true}}
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceManual,
		ManualPhoneNumbers: manualNumbers(250), TotalCount: 250,
		Status: domain.CampaignDraft, CreatedAt: time.Now().UTC(),
	})

	res, err := d.Send(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Sent != 150 || res.Failed != 100 {
		t.Fatalf("result = %+v, want sent=150 failed=100", res)
	}
	if res.Sent+res.Failed > res.Total {
		t.Fatalf("sent+failed exceeds total: %+v", res)
	}
}

func TestDispatchPartialRecipientReport(t *testing.T) {
	d, campaigns, _ := newDispatchFixture(t)
	// Gateway accepts the call but only reports on some recipients.
	d.Gateway = gatewayFunc(func(ctx context.Context, msg string, recipients []string) (smsgateway.BatchResponse, error) {
		return smsgateway.BatchResponse{Recipients: []smsgateway.RecipientStatus{
			{Number: recipients[0], Status: "queued", Code: 200},
			{Number: recipients[1], Status: "rejected", Code: 403},
		}}, nil
	})
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceManual,
		ManualPhoneNumbers: manualNumbers(5), TotalCount: 5,
		Status: domain.CampaignDraft, CreatedAt: time.Now().UTC(),
	})

	res, err := d.Send(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Sent != 1 || res.Failed != 4 {
		t.Fatalf("unreported recipients must count failed: %+v", res)
	}
}

type gatewayFunc func(ctx context.Context, message string, recipients []string) (smsgateway.BatchResponse, error)

func (f gatewayFunc) SendBatch(ctx context.Context, message string, recipients []string) (smsgateway.BatchResponse, error) {
	return f(ctx, message, recipients)
}

func TestDispatchOptedInAudience(t *testing.T) {
	d, campaigns, contacts := newDispatchFixture(t)
	now := time.Now().UTC()
	if _, err := contacts.MergeBatch([]store.ContactUpsert{
		{Name: "Amy", Phone: "+1", OptInStatus: domain.OptedIn},
		{Name: "Bob", Phone: "+2", OptInStatus: domain.OptedOut},
	}, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceOptedIn,
		TotalCount: 1, Status: domain.CampaignDraft, CreatedAt: now,
	})

	res, err := d.Send(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Total != 1 || res.Sent != 1 {
		t.Fatalf("opted-in audience should only reach Amy: %+v", res)
	}
	gw := d.Gateway.(*fakeGateway)
	if len(gw.calls) != 1 || gw.calls[0][0] != "+1" {
		t.Fatalf("wrong recipients: %v", gw.calls)
	}
}

func TestDispatchRefreshesTotalForGrownAudience(t *testing.T) {
	d, campaigns, contacts := newDispatchFixture(t)
	now := time.Now().UTC()
	if _, err := contacts.MergeBatch([]store.ContactUpsert{
		{Name: "Amy", Phone: "+1", OptInStatus: domain.OptedIn},
	}, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceOptedIn,
		TotalCount: 1, Status: domain.CampaignDraft, CreatedAt: now,
	})

	// Bob opts in after the campaign was created but before dispatch.
	if _, err := contacts.MergeBatch([]store.ContactUpsert{
		{Name: "Bob", Phone: "+2", OptInStatus: domain.OptedIn},
	}, now); err != nil {
		t.Fatalf("second opt-in: %v", err)
	}

	res, err := d.Send(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if res.Sent != 2 || res.Failed != 0 || res.Total != 2 {
		t.Fatalf("result = %+v, want 2/0/2", res)
	}

	got, _ := campaigns.Get(c.ID)
	if got.TotalCount != 2 {
		t.Fatalf("stored total = %d, want the send-time count 2", got.TotalCount)
	}
	if got.SentCount+got.FailedCount > got.TotalCount {
		t.Fatalf("stored counts violate sent+failed <= total: %+v", got)
	}
}

func TestDispatchEmptyOptedInAudience(t *testing.T) {
	d, campaigns, _ := newDispatchFixture(t)
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceOptedIn,
		Status: domain.CampaignDraft, CreatedAt: time.Now().UTC(),
	})

	_, err := d.Send(context.Background(), c.ID)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for empty audience, got %v", err)
	}
	got, _ := campaigns.Get(c.ID)
	if got.Status != domain.CampaignDraft {
		t.Fatalf("failed dispatch must not mutate campaign: %+v", got)
	}
}

func TestDispatchManualWithoutNumbers(t *testing.T) {
	d, campaigns, _ := newDispatchFixture(t)
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceManual,
		Status: domain.CampaignDraft, CreatedAt: time.Now().UTC(),
	})

	_, err := d.Send(context.Background(), c.ID)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for missing manual numbers, got %v", err)
	}
}

func TestDispatchRejectsResend(t *testing.T) {
	d, campaigns, _ := newDispatchFixture(t)
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceManual,
		ManualPhoneNumbers: manualNumbers(1), TotalCount: 1,
		Status: domain.CampaignDraft, CreatedAt: time.Now().UTC(),
	})

	if _, err := d.Send(context.Background(), c.ID); err != nil {
		t.Fatalf("first send: %v", err)
	}
	_, err := d.Send(context.Background(), c.ID)
	var cerr *domain.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected conflict on re-send, got %v", err)
	}
}

func TestDispatchUnconfiguredGateway(t *testing.T) {
	d, campaigns, _ := newDispatchFixture(t)
	d.Gateway = nil
	c := campaigns.Add(domain.SMSCampaign{
		Name: "promo", Message: "hi", Audience: domain.AudienceManual,
		ManualPhoneNumbers: manualNumbers(1), TotalCount: 1,
		Status: domain.CampaignDraft, CreatedAt: time.Now().UTC(),
	})

	_, err := d.Send(context.Background(), c.ID)
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	got, _ := campaigns.Get(c.ID)
	if got.Status != domain.CampaignDraft {
		t.Fatalf("unconfigured send must not mutate campaign: %+v", got)
	}
}

func TestDispatchMissingCampaign(t *testing.T) {
	d, _, _ := newDispatchFixture(t)
	_, err := d.Send(context.Background(), 42)
	var nfErr *domain.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected not-found, got %v", err)
	}
}
