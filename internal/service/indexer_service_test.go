package service

import (
	"strings"
	"testing"

	"guest-concierge-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestRenderPropertyDetailsSkipsEmptyFields(t *testing.T) {
	p := &entity.Property{
		Name:        "Seaview Loft",
		CheckInTime: "15:00",
	}

	out := renderPropertyDetails(p)

	assert.Contains(t, out, "Property: Seaview Loft")
	assert.Contains(t, out, "Check-in time: 15:00")
	assert.NotContains(t, out, "Check-out time")
	assert.NotContains(t, out, "WiFi")
}

func TestRenderPropertyDetailsIncludesFAQs(t *testing.T) {
	p := &entity.Property{
		Name: "Seaview Loft",
		FAQs: []entity.FAQEntry{
			{Question: "Is parking available?", Answer: "Street parking after 18:00."},
			{Question: "   ", Answer: "ignored"},
		},
	}

	out := renderPropertyDetails(p)

	assert.Contains(t, out, "Q: Is parking available?")
	assert.Contains(t, out, "A: Street parking after 18:00.")
	assert.NotContains(t, out, "ignored")
}

func TestRenderPropertyDetailsFullProperty(t *testing.T) {
	p := &entity.Property{
		Name:         "Seaview Loft",
		CheckInTime:  "15:00",
		CheckOutTime: "11:00",
		AccessCode:   "4821#",
		WifiName:     "SeaviewLoft",
		WifiPassword: "bluewater",
		Location:     "12 Harbour Street",
		HouseRules:   "No parties.",
		CustomNotes:  "Spare key with the neighbor.",
	}

	out := renderPropertyDetails(p)

	for _, want := range []string{"15:00", "11:00", "4821#", "SeaviewLoft", "bluewater", "12 Harbour Street", "No parties.", "Spare key with the neighbor."} {
		assert.Contains(t, out, want)
	}

	// One line per field, no blank padding lines.
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.NotEmpty(t, strings.TrimSpace(line))
	}
}
