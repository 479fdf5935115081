package domain

import (
	"strings"
	"time"
)

type OptInStatus string

const (
	OptedIn      OptInStatus = "opted-in"
	OptedOut     OptInStatus = "opted-out"
	OptInUnknown OptInStatus = "unknown"
)

// ParseOptInStatus maps free-form spreadsheet values onto the enum.
// Anything unrecognized lands on "unknown".
func ParseOptInStatus(raw string) OptInStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "opted-in", "opted in", "optedin", "yes", "true":
		return OptedIn
	case "opted-out", "opted out", "optedout", "no", "false":
		return OptedOut
	default:
		return OptInUnknown
	}
}

// Contact is one entry in the contact book. Phone is stored normalized
// and acts as the natural dedup key: at most one contact per number.
type Contact struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	OptInStatus OptInStatus `json:"optInStatus"`
	OptInDate   *time.Time  `json:"optInDate,omitempty"`
	OptOutDate  *time.Time  `json:"optOutDate,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ContactFilter carries the query parameters of the contact list
// endpoint. Search matches name, phone or email as a case-insensitive
// substring; OptInStatus is an exact match applied on top.
type ContactFilter struct {
	Search      string
	OptInStatus OptInStatus
}

type Audience string

const (
	AudienceAll     Audience = "all"
	AudienceOptedIn Audience = "opted-in"
	AudienceManual  Audience = "manual"
)

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSent      CampaignStatus = "sent"
)

// SMSCampaign is a mass-SMS campaign. ScheduledTime is descriptive
// metadata only; dispatch happens exclusively through the send
// endpoint. Status is monotonic: once sent it never reverts.
type SMSCampaign struct {
	ID                 int            `json:"id"`
	Name               string         `json:"name"`
	Message            string         `json:"message"`
	Audience           Audience       `json:"audience"`
	ManualPhoneNumbers []string       `json:"manualPhoneNumbers,omitempty"`
	ScheduledTime      string         `json:"scheduledTime,omitempty"`
	Status             CampaignStatus `json:"status"`
	TotalCount         int            `json:"totalCount"`
	SentCount          int            `json:"sentCount"`
	FailedCount        int            `json:"failedCount"`
	CreatedAt          time.Time      `json:"createdAt"`
	SentAt             *time.Time     `json:"sentAt,omitempty"`
}

// ScheduledPost is an inert social-post record. Nothing ever executes
// it; status stays "scheduled" for the record's whole life.
type ScheduledPost struct {
	ID            int       `json:"id"`
	Content       string    `json:"content"`
	Platforms     []string  `json:"platforms"`
	ScheduledTime string    `json:"scheduledTime"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type SendMessageRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func (r SendMessageRequest) Validate() error {
	if r.To == "" || r.Body == "" {
		return Validation("missing `to` or `body` in request")
	}
	return nil
}

type CreateCampaignRequest struct {
	Name          string   `json:"name"`
	Message       string   `json:"message"`
	Audience      Audience `json:"audience"`
	PhoneNumbers  string   `json:"phoneNumbers"`
	ScheduledTime string   `json:"scheduledTime"`
}

func (r CreateCampaignRequest) Validate() error {
	if r.Name == "" || r.Message == "" {
		return Validation("missing campaign name or message")
	}
	switch r.Audience {
	case AudienceAll, AudienceOptedIn, AudienceManual, "":
	default:
		return Validation("unknown audience: " + string(r.Audience))
	}
	return nil
}

type SchedulePostRequest struct {
	Content       string   `json:"content"`
	Platforms     []string `json:"platforms"`
	ScheduledTime string   `json:"scheduledTime"`
	ImageURL      string   `json:"imageUrl"`
}

func (r SchedulePostRequest) Validate() error {
	if r.Content == "" || len(r.Platforms) == 0 || r.ScheduledTime == "" {
		return Validation("missing content, platforms or scheduledTime")
	}
	return nil
}

type GenerateContentRequest struct {
	BusinessType string `json:"businessType"`
	ContentType  string `json:"contentType"`
	Tone         string `json:"tone"`
}

func (r GenerateContentRequest) Validate() error {
	if r.BusinessType == "" || r.ContentType == "" {
		return Validation("missing businessType or contentType")
	}
	return nil
}

type CampaignIdeasRequest struct {
	BusinessType string `json:"businessType"`
	Budget       string `json:"budget"`
}

func (r CampaignIdeasRequest) Validate() error {
	if r.BusinessType == "" {
		return Validation("missing businessType")
	}
	return nil
}
