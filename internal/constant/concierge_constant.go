package constant

// Assistant identity used in every system prompt.
const (
	AssistantProductName = "StayFlow Concierge"
)

// Fixed guest-facing replies. These are sent verbatim; the pipeline never
// leaves an admitted guest without some textual response.
const (
	QuotaExceededReply = "Thanks for your message! The host's automated assistant is currently unavailable. Your message has been received and the host will get back to you directly."

	GenerationFallbackReply = "Sorry, I wasn't able to process your message just now. Please try again in a moment, or I can pass your question along to the host."
)

// Retrieval defaults used by the message pipeline.
const (
	RetrievalTopK         = 3
	RetrievalMinScore     = 0.6
	HistoryTurnLimit      = 10
	CompletionTemperature = 0.4
	CompletionMaxTokens   = 512
)

// Knowledge chunk provenance tags.
const (
	ChunkSourcePropertyDetails = "property_details"
	ChunkSourceDocument        = "document"
)

// Plan tiers mapped to monthly message limits by the billing webhook.
const (
	PlanFree    = "free"
	PlanStarter = "starter"
	PlanPro     = "pro"
)

var PlanMessageLimits = map[string]int{
	PlanFree:    100,
	PlanStarter: 1000,
	PlanPro:     10000,
}

var PlanPrices = map[string]int64{
	PlanStarter: 150000,
	PlanPro:     450000,
}
