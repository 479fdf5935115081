package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"marketer/internal/importer"
	"marketer/internal/providers/smsgateway"
	"marketer/internal/providers/twilio"
	"marketer/internal/service"
	"marketer/internal/store"
)

// API holds the handler dependencies. Provider clients may be nil;
// the matching endpoints then answer with a configuration error.
type API struct {
	Contacts   *store.ContactStore
	Posts      *store.PostStore
	Campaigns  *service.CampaignService
	Dispatcher *service.Dispatcher
	Importer   *importer.Importer
	WhatsApp   *twilio.Client
	SMS        *smsgateway.Client
	Now        func() time.Time
}

func (a *API) Register(r *mux.Router) {
	r.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/send-test", a.handleSendTest).Methods(http.MethodPost)
	r.HandleFunc("/api/send-sms", a.handleSendSMS).Methods(http.MethodPost)

	r.HandleFunc("/api/contacts", a.handleListContacts).Methods(http.MethodGet)
	r.HandleFunc("/api/contacts/import", a.handleImportContacts).Methods(http.MethodPost)
	r.HandleFunc("/api/contacts/export", a.handleExportContacts).Methods(http.MethodGet)
	r.HandleFunc("/api/contacts/{id}/opt-in", a.handleOptIn).Methods(http.MethodPut)
	r.HandleFunc("/api/contacts/{id}/opt-out", a.handleOptOut).Methods(http.MethodPut)
	r.HandleFunc("/api/contacts/{id}", a.handleDeleteContact).Methods(http.MethodDelete)

	r.HandleFunc("/api/generate-content", a.handleGenerateContent).Methods(http.MethodPost)
	r.HandleFunc("/api/campaign-ideas", a.handleCampaignIdeas).Methods(http.MethodPost)

	r.HandleFunc("/api/schedule-social-post", a.handleSchedulePost).Methods(http.MethodPost)
	r.HandleFunc("/api/scheduled-posts", a.handleListPosts).Methods(http.MethodGet)

	r.HandleFunc("/api/sms-campaigns", a.handleCreateCampaign).Methods(http.MethodPost)
	r.HandleFunc("/api/sms-campaigns", a.handleListCampaigns).Methods(http.MethodGet)
	r.HandleFunc("/api/sms-campaigns/{id}/send", a.handleSendCampaign).Methods(http.MethodPost)
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, map[string]any{"message": "Backend is running"})
}
