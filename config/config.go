package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync-api/models"
)

// Audit log policies for status transitions. best_effort matches the shop's
// historical behavior: a failed audit append is logged and the transition
// still succeeds. strict makes the append part of the transition contract.
const (
	AuditPolicyBestEffort = "best_effort"
	AuditPolicyStrict     = "strict"
)

// Config holds the project config values, read once from the environment at
// startup and treated as read-only afterwards.
type Config struct {
	URL           string
	DatabaseName  string
	BaseURL       string
	PortalBaseURL string
	Port          string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// SMSStatusUpdatesEnabled gates the per-status transition texts. Check-in
	// confirmations and reminders are always attempted.
	SMSStatusUpdatesEnabled bool

	AuditLogPolicy string

	UnsplashAccessKey      string
	SendgridAPIKey         string
	CloudinaryUploadPreset string
	CloudinaryAPISecret    string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	policy := os.Getenv("AUDIT_LOG_POLICY")
	if policy != AuditPolicyStrict {
		policy = AuditPolicyBestEffort
	}

	return &Config{
		URL:           os.Getenv("DB_URI"),
		DatabaseName:  os.Getenv("DB_NAME"),
		BaseURL:       os.Getenv("BASE_URL"),
		PortalBaseURL: os.Getenv("PORTAL_BASE_URL"),
		Port:          os.Getenv("PORT"),

		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber: os.Getenv("TWILIO_PHONE_NUMBER"),

		SMSStatusUpdatesEnabled: os.Getenv("SMS_STATUS_UPDATES_ENABLED") == "true",

		AuditLogPolicy: policy,

		UnsplashAccessKey:      os.Getenv("UNSPLASH_ACCESS_KEY"),
		SendgridAPIKey:         os.Getenv("SENDGRID_API_KEY"),
		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}

// ErrorStatusFromErr maps the error's kind to an HTTP status and writes the
// same body shape as ErrorStatus. Errors without a kind count as internal.
func ErrorStatusFromErr(message string, w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch models.KindOf(err) {
	case models.ValidationError:
		code = http.StatusBadRequest
	case models.NotFoundError:
		code = http.StatusNotFound
	case models.PersistenceError, models.InternalError:
		code = http.StatusInternalServerError
	}
	ErrorStatus(message, code, w, err)
}
