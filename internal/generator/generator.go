package generator

import (
	"fmt"
	"strings"

	"marketer/internal/domain"
)

// Content builds deterministic marketing copy for a business. It is a
// pure template expansion: the same input always yields the same
// variations, and the only failure mode is missing input fields.
func Content(req domain.GenerateContentRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tone := strings.ToLower(strings.TrimSpace(req.Tone))
	if tone == "" {
		tone = "friendly"
	}
	opener := toneOpeners[tone]
	if opener == "" {
		opener = toneOpeners["friendly"]
	}

	tmpl, ok := contentTemplates[strings.ToLower(strings.TrimSpace(req.ContentType))]
	if !ok {
		tmpl = contentTemplates["promo"]
	}

	out := make([]string, 0, len(tmpl))
	for _, t := range tmpl {
		out = append(out, opener+" "+fmt.Sprintf(t, req.BusinessType))
	}
	return out, nil
}

var toneOpeners = map[string]string{
	"friendly":     "Hi {{name}}!",
	"professional": "Dear {{name}},",
	"playful":      "Hey {{name}} 🎉",
	"urgent":       "{{name}}, don't miss out:",
}

var contentTemplates = map[string][]string{
	"promo": {
		"We're running a special at our %s just for you. Use code WELCOME10 for 10%% off your next order.",
		"As one of our favorite %s customers, you get first pick of this week's offers. Reply YES to hear more.",
		"Our %s has a deal with your name on it. Valid this week only — come see us!",
	},
	"announcement": {
		"Big news from your local %s: we've got something new and you're among the first to know.",
		"Our %s is growing! Stop by this week to see what's changed.",
		"A quick update from the %s team — new arrivals are in and selling fast.",
	},
	"follow-up": {
		"Thanks for visiting our %s! We'd love to hear how we did — reply with a rating from 1 to 5.",
		"It's been a while since your last visit to our %s. Here's a little something to bring you back.",
		"Your %s team here — just checking in. Anything we can help you with?",
	},
}

// Idea is one mock campaign suggestion.
type Idea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Channel     string `json:"channel"`
	Budget      string `json:"budget"`
}

// Ideas builds a deterministic campaign-idea list sized by budget
// tier. Unknown tiers get the smallest plan.
func Ideas(req domain.CampaignIdeasRequest) ([]Idea, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	budget := strings.ToLower(strings.TrimSpace(req.Budget))
	count, ok := ideasPerTier[budget]
	if !ok {
		budget = "low"
		count = ideasPerTier["low"]
	}

	all := []Idea{
		{
			Title:       "Welcome series",
			Description: fmt.Sprintf("Greet every new %s customer with a welcome message and a first-order discount code.", req.BusinessType),
			Channel:     "whatsapp",
		},
		{
			Title:       "Weekly specials blast",
			Description: fmt.Sprintf("A short SMS every week with your %s's current offers, sent to opted-in contacts only.", req.BusinessType),
			Channel:     "sms",
		},
		{
			Title:       "Win-back campaign",
			Description: fmt.Sprintf("Reach customers who haven't visited your %s in 30 days with a come-back offer.", req.BusinessType),
			Channel:     "sms",
		},
		{
			Title:       "Feedback loop",
			Description: fmt.Sprintf("After each sale, ask %s customers for a 1-5 rating and follow up on low scores.", req.BusinessType),
			Channel:     "whatsapp",
		},
		{
			Title:       "Social teaser posts",
			Description: fmt.Sprintf("Schedule a short weekly post teasing what's new at your %s, linked to an SMS signup.", req.BusinessType),
			Channel:     "social",
		},
	}

	if count > len(all) {
		count = len(all)
	}
	out := make([]Idea, count)
	copy(out, all[:count])
	for i := range out {
		out[i].Budget = budget
	}
	return out, nil
}

var ideasPerTier = map[string]int{
	"low":    2,
	"medium": 3,
	"high":   5,
}
