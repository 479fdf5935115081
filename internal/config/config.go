package config

import "github.com/kelseyhightower/envconfig"

type APIConfig struct {
	Port      string `envconfig:"PORT" default:"4000"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	ContactsFile       string `envconfig:"CONTACTS_FILE" default:"data/contacts.json"`
	DefaultCountryCode string `envconfig:"DEFAULT_COUNTRY_CODE" default:"+254"`

	// Twilio (WhatsApp channel). Missing credentials degrade the
	// test-send endpoint to a "not configured" error, never a crash.
	TwilioAccountSID   string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom string `envconfig:"TWILIO_WHATSAPP_FROM"`
	TwilioBaseURL      string `envconfig:"TWILIO_BASE_URL" default:"https://api.twilio.com"`

	// Bulk SMS gateway
	SMSAPIKey    string  `envconfig:"SMS_API_KEY"`
	SMSSenderID  string  `envconfig:"SMS_SENDER_ID"`
	SMSBaseURL   string  `envconfig:"SMS_BASE_URL" default:"https://api.smsleopard.com"`
	SMSBatchSize int     `envconfig:"SMS_BATCH_SIZE" default:"100"`
	SMSRPS       float64 `envconfig:"SMS_RPS" default:"5"`
	SMSBurst     int     `envconfig:"SMS_BURST" default:"10"`
}

func LoadAPI() APIConfig {
	var cfg APIConfig
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}
