package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopsync/shopsync-api/models"
)

func TestStatusMessageKnownStatuses(t *testing.T) {
	got := models.StatusMessage(models.StatusCheckedIn, "Dale")
	assert.Equal(t, "Hi Dale! Your vehicle has been checked in at Summit Trucks.", got)

	got = models.StatusMessage(models.StatusInProgress, "Dale")
	assert.Equal(t, "Update: Your vehicle service is now in progress.", got)

	got = models.StatusMessage(models.StatusReady, "Dale")
	assert.Equal(t, "Great news! Your vehicle is ready for pickup at Summit Trucks. Thank you for your business!", got)
}

func TestStatusMessageUnknownStatusFallback(t *testing.T) {
	got := models.StatusMessage("detail_buffing", "Dale")
	assert.Equal(t, "Update on your vehicle: Detail Buffing", got)
}

func TestStatusMessageKeysAreCaseSensitive(t *testing.T) {
	got := models.StatusMessage("Ready", "Dale")
	assert.Equal(t, "Update on your vehicle: Ready", got)
}
