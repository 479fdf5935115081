package httpapi

import (
	"encoding/json"
	"net/http"

	"marketer/internal/domain"
	"marketer/internal/generator"
)

func (a *API) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validation("invalid json"))
		return
	}

	variations, err := generator.Content(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"variations": variations})
}

func (a *API) handleCampaignIdeas(w http.ResponseWriter, r *http.Request) {
	var req domain.CampaignIdeasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validation("invalid json"))
		return
	}

	ideas, err := generator.Ideas(req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"ideas": ideas})
}
