package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "marketer_api_requests_total", Help: "API requests"},
		[]string{"route", "status"},
	)
	ProviderSend = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "marketer_provider_send_total", Help: "Provider send outcomes"},
		[]string{"provider", "result"},
	)
	ProviderLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "marketer_provider_send_latency_seconds", Help: "Provider send latency"},
	)
	ImportRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "marketer_import_rows_total", Help: "Contact import row outcomes"},
		[]string{"result"},
	)
	CampaignBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "marketer_campaign_batches_total", Help: "Campaign dispatch batch outcomes"},
		[]string{"result"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(APIRequests, ProviderSend, ProviderLatency, ImportRows, CampaignBatches)
}
