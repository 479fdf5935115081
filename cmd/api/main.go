package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"marketer/internal/config"
	"marketer/internal/httpapi"
	"marketer/internal/importer"
	"marketer/internal/logging"
	"marketer/internal/observability"
	"marketer/internal/providers/smsgateway"
	"marketer/internal/providers/twilio"
	"marketer/internal/service"
	"marketer/internal/store"
	"marketer/internal/util"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, relying on OS environment")
	}

	cfg := config.LoadAPI()
	logging.Init("api", cfg.LogFormat, cfg.LogLevel)

	contacts := store.NewContactStore(cfg.ContactsFile)
	if err := contacts.Load(); err != nil {
		slog.Error("loading contacts file failed", "err", err, "path", cfg.ContactsFile)
		os.Exit(1)
	}
	slog.Info("contacts loaded", "count", contacts.Count(), "path", cfg.ContactsFile)

	campaigns := store.NewCampaignStore()
	posts := store.NewPostStore()

	var whatsApp *twilio.Client
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioWhatsAppFrom != "" {
		whatsApp = &twilio.Client{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioWhatsAppFrom,
			BaseURL:    cfg.TwilioBaseURL,
			HTTP:       &http.Client{Timeout: 8 * time.Second},
		}
	} else {
		slog.Warn("twilio credentials absent, whatsapp test sends disabled")
	}

	var sms *smsgateway.Client
	campaignSvc := &service.CampaignService{
		Campaigns:   campaigns,
		Contacts:    contacts,
		CountryCode: cfg.DefaultCountryCode,
	}
	dispatcher := &service.Dispatcher{
		Campaigns: campaigns,
		Contacts:  contacts,
		BatchSize: cfg.SMSBatchSize,
	}
	if cfg.SMSAPIKey != "" && cfg.SMSSenderID != "" {
		sms = &smsgateway.Client{
			APIKey:   cfg.SMSAPIKey,
			SenderID: cfg.SMSSenderID,
			BaseURL:  cfg.SMSBaseURL,
			HTTP:     &http.Client{Timeout: 15 * time.Second},
		}
		dispatcher.Gateway = sms
		dispatcher.Limiter = rate.NewLimiter(rate.Limit(cfg.SMSRPS), cfg.SMSBurst)
		dispatcher.Breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "smsgateway",
			MaxRequests: 3,
			Timeout:     20 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 10 },
		})
	} else {
		slog.Warn("sms gateway credentials absent, sms sends disabled")
	}

	observability.Register(prometheus.DefaultRegisterer)

	s := httpapi.New()
	api := &httpapi.API{
		Contacts:   contacts,
		Posts:      posts,
		Campaigns:  campaignSvc,
		Dispatcher: dispatcher,
		Importer:   &importer.Importer{Contacts: contacts, CountryCode: cfg.DefaultCountryCode},
		WhatsApp:   whatsApp,
		SMS:        sms,
		Now:        util.NowUTC,
	}
	api.Register(s.Mux)

	s.Mux.Use(httpapi.Metrics(observability.APIRequests))

	handler := httpapi.RequestID(httpapi.Logging(httpapi.CORS(s.Mux)))
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("api shutdown", "signal", sig.String())
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("api listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("api server failed", "err", err)
		os.Exit(1)
	}
}
