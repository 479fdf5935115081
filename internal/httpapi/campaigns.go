package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"marketer/internal/domain"
)

func (a *API) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validation("invalid json"))
		return
	}

	campaign, err := a.Campaigns.Create(req, a.now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"campaign": campaign})
}

func (a *API) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns := a.Campaigns.List()
	respondOK(w, map[string]any{"campaigns": campaigns, "total": len(campaigns)})
}

func (a *API) handleSendCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, domain.Validation("invalid campaign id"))
		return
	}

	res, err := a.Dispatcher.Send(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]any{"sent": res.Sent, "failed": res.Failed, "total": res.Total})
}
