package prompt

import (
	"strings"
	"testing"

	"guest-concierge-be/internal/entity"
)

func sampleProperty() *entity.Property {
	return &entity.Property{
		Name:         "Seaview Loft",
		CheckInTime:  "15:00",
		CheckOutTime: "11:00",
		AccessCode:   "4821#",
		WifiName:     "SeaviewLoft",
		WifiPassword: "bluewater",
		Location:     "12 Harbour Street",
		HouseRules:   "No parties.",
	}
}

func TestBuildSystemPromptOmitsEmptyFields(t *testing.T) {
	p := &entity.Property{Name: "Bare Flat", CheckInTime: "14:00"}
	out := BuildSystemPrompt(p, nil, "hello")

	if !strings.Contains(out, "Check-in time: 14:00") {
		t.Error("expected check-in time to be present")
	}
	if strings.Contains(out, "Check-out time") {
		t.Error("empty check-out time should be omitted entirely")
	}
	if strings.Contains(out, "House rules") {
		t.Error("empty house rules should be omitted entirely")
	}
}

func TestBuildSystemPromptGatesSecrets(t *testing.T) {
	tests := []struct {
		name         string
		guestMessage string
		wantCode     bool
		wantWifi     bool
	}{
		{"unrelated question", "What time is breakfast?", false, false},
		{"asks for door code", "How do I get in? Is there a door code?", true, false},
		{"asks for wifi", "What's the wifi password?", false, true},
		{"asks about internet", "Is there internet here?", false, true},
		{"asks about keys", "Where do I pick up the key?", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildSystemPrompt(sampleProperty(), nil, tt.guestMessage)

			gotCode := strings.Contains(out, "4821#")
			gotWifi := strings.Contains(out, "bluewater")
			if gotCode != tt.wantCode {
				t.Errorf("access code present = %v, want %v", gotCode, tt.wantCode)
			}
			if gotWifi != tt.wantWifi {
				t.Errorf("wifi password present = %v, want %v", gotWifi, tt.wantWifi)
			}
		})
	}
}

func TestBuildSystemPromptNonSecretsAlwaysPresent(t *testing.T) {
	out := BuildSystemPrompt(sampleProperty(), nil, "random question about nothing")

	for _, want := range []string{"15:00", "11:00", "12 Harbour Street", "No parties."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in prompt", want)
		}
	}
}

func TestBuildSystemPromptIncludesFAQs(t *testing.T) {
	p := sampleProperty()
	p.FAQs = []entity.FAQEntry{
		{Question: "Is parking available?", Answer: "Street parking after 18:00."},
		{Question: "", Answer: "orphan answer"},
	}

	out := BuildSystemPrompt(p, nil, "hello")
	if !strings.Contains(out, "Is parking available?") {
		t.Error("expected FAQ question in prompt")
	}
	if strings.Contains(out, "orphan answer") {
		t.Error("FAQ with empty question should be skipped")
	}
}

func TestBuildSystemPromptGroundingSection(t *testing.T) {
	out := BuildSystemPrompt(sampleProperty(), []string{"chunk one", "chunk two"}, "hi")
	if !strings.Contains(out, "<reference_material>") {
		t.Error("expected reference material section")
	}
	if !strings.Contains(out, "chunk one") || !strings.Contains(out, "chunk two") {
		t.Error("expected grounding chunks in prompt")
	}

	empty := BuildSystemPrompt(sampleProperty(), nil, "hi")
	if strings.Contains(empty, "<reference_material>") {
		t.Error("no grounding should mean no reference material section")
	}
}

func TestBuildUserTurnTruncatesHistory(t *testing.T) {
	history := make([]*entity.Message, 15)
	for i := range history {
		history[i] = &entity.Message{
			Content:   "turn-" + string(rune('a'+i)),
			FromGuest: i%2 == 0,
		}
	}

	out := BuildUserTurn(history, "latest question", 10)

	if strings.Contains(out, "turn-a") {
		t.Error("oldest turns should be truncated away")
	}
	if !strings.Contains(out, "turn-o") {
		t.Error("newest turn should survive truncation")
	}
	if !strings.Contains(out, "latest question") {
		t.Error("latest message should always be present")
	}
}

func TestBuildUserTurnSpeakerLabels(t *testing.T) {
	history := []*entity.Message{
		{Content: "where is the flat?", FromGuest: true},
		{Content: "12 Harbour Street", FromGuest: false},
	}

	out := BuildUserTurn(history, "thanks!", 10)

	if !strings.Contains(out, "Guest: where is the flat?") {
		t.Error("guest turns should be labeled Guest")
	}
	if !strings.Contains(out, "Host: 12 Harbour Street") {
		t.Error("host turns should be labeled Host")
	}
}

func TestBuildUserTurnNoHistory(t *testing.T) {
	out := BuildUserTurn(nil, "first message", 10)
	if strings.Contains(out, "<conversation_history>") {
		t.Error("empty history should omit the history section")
	}
	if !strings.Contains(out, "first message") {
		t.Error("expected guest message")
	}
}
