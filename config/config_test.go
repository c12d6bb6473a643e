package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopsync/shopsync-api/models"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
}

func TestNewAuditPolicyDefaultsToBestEffort(t *testing.T) {
	os.Unsetenv("AUDIT_LOG_POLICY")
	conf := New()
	assert.Equal(t, AuditPolicyBestEffort, conf.AuditLogPolicy)

	os.Setenv("AUDIT_LOG_POLICY", "bogus")
	conf = New()
	assert.Equal(t, AuditPolicyBestEffort, conf.AuditLogPolicy)

	os.Setenv("AUDIT_LOG_POLICY", AuditPolicyStrict)
	conf = New()
	assert.Equal(t, AuditPolicyStrict, conf.AuditLogPolicy)
	os.Unsetenv("AUDIT_LOG_POLICY")
}

func TestNewSMSToggleDefaultsOff(t *testing.T) {
	os.Unsetenv("SMS_STATUS_UPDATES_ENABLED")
	conf := New()
	assert.False(t, conf.SMSStatusUpdatesEnabled)

	os.Setenv("SMS_STATUS_UPDATES_ENABLED", "true")
	conf = New()
	assert.True(t, conf.SMSStatusUpdatesEnabled)
	os.Unsetenv("SMS_STATUS_UPDATES_ENABLED")
}

func TestErrorStatus(t *testing.T) {

	ErrorStatus("error it borked", http.StatusBadRequest, httptest.NewRecorder(), errors.New("bad request"))
	assert.True(t, true)
}

func TestErrorStatusFromErr(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{models.NewValidationError("missing field", nil), http.StatusBadRequest},
		{models.NewNotFoundError("no vehicle", nil), http.StatusNotFound},
		{models.NewPersistenceError("insert failed", nil), http.StatusInternalServerError},
		{models.NewInternalError("unexpected", nil), http.StatusInternalServerError},
		{errors.New("untyped"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		ErrorStatusFromErr("operation failed", rr, c.err)
		assert.Equal(t, c.code, rr.Code)
	}
}
