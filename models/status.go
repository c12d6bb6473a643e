package models

import "strings"

// Vehicle statuses. The transition graph is deliberately open: any status may
// move to any other, matching the shop workflow where advisors jump steps.
const (
	StatusCheckedIn        = "checked_in"
	StatusInspection       = "inspection"
	StatusWaitingParts     = "waiting_parts"
	StatusInProgress       = "in_progress"
	StatusAwaitingWarranty = "awaiting_warranty"
	StatusQualityCheck     = "quality_check"
	StatusReady            = "ready"
)

// statusMessages maps each known status to the customer-facing text sent when
// a vehicle transitions into it. Keys are case-sensitive.
var statusMessages = map[string]string{
	StatusCheckedIn:        "Hi %s! Your vehicle has been checked in at Summit Trucks.",
	StatusInspection:       "Update: Your vehicle is now being inspected.",
	StatusWaitingParts:     "Update: Your vehicle is awaiting parts. We'll notify you when work resumes.",
	StatusInProgress:       "Update: Your vehicle service is now in progress.",
	StatusAwaitingWarranty: "Update: Your vehicle is awaiting warranty approval. We'll keep you posted.",
	StatusQualityCheck:     "Update: Your vehicle is undergoing final quality check.",
	StatusReady:            "Great news! Your vehicle is ready for pickup at Summit Trucks. Thank you for your business!",
}

// StatusMessage returns the customer-facing notification text for a
// transition into the given status. Unknown statuses fall back to a generated
// message built from the status string itself, so new statuses degrade
// gracefully instead of silencing the customer.
func StatusMessage(status, customerName string) string {
	if tmpl, ok := statusMessages[status]; ok {
		if strings.Contains(tmpl, "%s") {
			return strings.Replace(tmpl, "%s", customerName, 1)
		}
		return tmpl
	}
	return "Update on your vehicle: " + titleCase(strings.ReplaceAll(status, "_", " "))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
