package service

import (
	"time"

	"marketer/internal/domain"
	"marketer/internal/store"
	"marketer/internal/util"
)

// CampaignService creates and lists SMS campaigns. Creation resolves
// the audience size up front; dispatch is a separate, explicit step.
type CampaignService struct {
	Campaigns   *store.CampaignStore
	Contacts    *store.ContactStore
	CountryCode string
}

func (s *CampaignService) Create(req domain.CreateCampaignRequest, now time.Time) (domain.SMSCampaign, error) {
	if err := req.Validate(); err != nil {
		return domain.SMSCampaign{}, err
	}

	audience := req.Audience
	if audience == "" {
		audience = domain.AudienceAll
	}

	c := domain.SMSCampaign{
		Name:          req.Name,
		Message:       req.Message,
		Audience:      audience,
		ScheduledTime: req.ScheduledTime,
		Status:        domain.CampaignDraft,
		CreatedAt:     now,
	}
	if req.ScheduledTime != "" {
		// Descriptive only: nothing dispatches a scheduled campaign
		// at its scheduled time.
		c.Status = domain.CampaignScheduled
	}

	switch audience {
	case domain.AudienceManual:
		numbers := util.ParsePhoneList(req.PhoneNumbers, s.CountryCode)
		if len(numbers) == 0 {
			return domain.SMSCampaign{}, domain.Validation("manual audience requires at least one valid phone number")
		}
		c.ManualPhoneNumbers = numbers
		c.TotalCount = len(numbers)
	case domain.AudienceOptedIn:
		c.TotalCount = len(s.Contacts.List(domain.ContactFilter{OptInStatus: domain.OptedIn}))
	default:
		c.TotalCount = s.Contacts.Count()
	}

	return s.Campaigns.Add(c), nil
}

func (s *CampaignService) List() []domain.SMSCampaign {
	return s.Campaigns.List()
}
