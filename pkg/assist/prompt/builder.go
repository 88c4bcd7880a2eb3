package prompt

import (
	"fmt"
	"strings"

	"guest-concierge-be/internal/constant"
	"guest-concierge-be/internal/entity"
)

// propertyField is one optional property fact. A field renders iff its value
// is non-empty; secret fields additionally require the guest's message to
// mention one of the trigger words.
type propertyField struct {
	label    string
	value    func(p *entity.Property) string
	triggers []string
}

var propertyFields = []propertyField{
	{label: "Check-in time", value: func(p *entity.Property) string { return p.CheckInTime }},
	{label: "Check-out time", value: func(p *entity.Property) string { return p.CheckOutTime }},
	{label: "Location", value: func(p *entity.Property) string { return p.Location }},
	{label: "House rules", value: func(p *entity.Property) string { return p.HouseRules }},
	{label: "Notes from the host", value: func(p *entity.Property) string { return p.CustomNotes }},
	{
		label:    "Door access code",
		value:    func(p *entity.Property) string { return p.AccessCode },
		triggers: []string{"access", "door", "code", "key", "lock", "entry", "get in"},
	},
	{
		label:    "WiFi network",
		value:    func(p *entity.Property) string { return p.WifiName },
		triggers: []string{"wifi", "wi-fi", "internet", "network", "password"},
	},
	{
		label:    "WiFi password",
		value:    func(p *entity.Property) string { return p.WifiPassword },
		triggers: []string{"wifi", "wi-fi", "internet", "network", "password"},
	},
}

func fieldRequested(triggers []string, guestMessage string) bool {
	if len(triggers) == 0 {
		return true
	}
	lower := strings.ToLower(guestMessage)
	for _, t := range triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// BuildSystemPrompt renders the persona, the property facts that are present,
// the retrieved grounding text and the non-negotiable behavioral rules.
// Pure string assembly, no I/O.
func BuildSystemPrompt(property *entity.Property, grounding []string, guestMessage string) string {
	var prompt strings.Builder

	prompt.WriteString("<persona>\n")
	fmt.Fprintf(&prompt, "You are %s, the automated guest assistant for the property \"%s\".\n", constant.AssistantProductName, property.Name)
	prompt.WriteString("You answer guest questions on behalf of the host.\n")
	prompt.WriteString("</persona>\n\n")

	writePropertyFacts(&prompt, property, guestMessage)
	writeGrounding(&prompt, grounding)
	writeRules(&prompt)

	return prompt.String()
}

func writePropertyFacts(prompt *strings.Builder, property *entity.Property, guestMessage string) {
	var lines []string
	for _, f := range propertyFields {
		v := strings.TrimSpace(f.value(property))
		if v == "" {
			continue
		}
		if !fieldRequested(f.triggers, guestMessage) {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", f.label, v))
	}
	for _, faq := range property.FAQs {
		if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- Q: %s A: %s", faq.Question, faq.Answer))
	}

	if len(lines) == 0 {
		return
	}

	prompt.WriteString("<property_facts>\n")
	for _, l := range lines {
		prompt.WriteString(l)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</property_facts>\n\n")
}

func writeGrounding(prompt *strings.Builder, grounding []string) {
	if len(grounding) == 0 {
		return
	}
	prompt.WriteString("<reference_material>\n")
	for i, g := range grounding {
		if i > 0 {
			prompt.WriteString("\n---\n")
		}
		prompt.WriteString(g)
	}
	prompt.WriteString("\n</reference_material>\n\n")
}

func writeRules(prompt *strings.Builder) {
	prompt.WriteString("<rules>\n")
	prompt.WriteString("1. Answer only from the property facts and reference material above.\n")
	prompt.WriteString("2. If you don't know the answer, say so and offer to pass the question along to the host.\n")
	prompt.WriteString("3. Stay concise and professional.\n")
	prompt.WriteString("4. Never invent details about the property.\n")
	prompt.WriteString("5. Never volunteer access codes or WiFi credentials unless the guest explicitly asked for them.\n")
	prompt.WriteString("</rules>\n")
}

// BuildUserTurn renders the recent history oldest-to-newest as Guest/Host
// lines, truncated to the newest maxTurns, followed by the new message.
// History is expected in chronological order.
func BuildUserTurn(history []*entity.Message, latestMessage string, maxTurns int) string {
	var turn strings.Builder

	if len(history) > maxTurns {
		history = history[len(history)-maxTurns:]
	}

	if len(history) > 0 {
		turn.WriteString("<conversation_history>\n")
		for _, msg := range history {
			speaker := "Host"
			if msg.FromGuest {
				speaker = "Guest"
			}
			fmt.Fprintf(&turn, "%s: %s\n", speaker, msg.Content)
		}
		turn.WriteString("</conversation_history>\n\n")
	}

	turn.WriteString("<guest_message>\n")
	turn.WriteString(latestMessage)
	turn.WriteString("\n</guest_message>\n\n")
	turn.WriteString("Reply to the guest now:")

	return turn.String()
}
