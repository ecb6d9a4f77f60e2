package model

// GeoRecord is one coordinate pair recovered from model output.
// Country is nil when no country could be associated with the pair.
type GeoRecord struct {
	LatLon  [2]float64 `json:"latlon"`
	Country *string    `json:"country"`
}

// Opportunity is a volunteer opportunity link found by the search scraper.
type Opportunity struct {
	Name    string `json:"name"`
	Link    string `json:"link"`
	Country string `json:"country,omitempty"`
}

// GeoLocation is a GeoRecord enriched with its source opportunity.
type GeoLocation struct {
	LatLon  [2]float64 `json:"latlon"`
	Country *string    `json:"country"`
	Link    string     `json:"link"`
	Name    string     `json:"name"`
}

// Recommendation is the advisor verdict over a set of opportunities.
type Recommendation struct {
	Recommendation string `json:"recommendation"`
	AnalyzedCount  int    `json:"analyzed_count"`
}

// ChatMessage is one persisted assistant-chat message.
type ChatMessage struct {
	ID        int64  `json:"id"`
	Session   string `json:"session"`
	Role      string `json:"role"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// MessageFilter narrows a chat-message query. Zero values mean "no filter".
type MessageFilter struct {
	Session string
	Role    string
	Since   string // RFC3339; only messages created at or after this instant
	Limit   int
}

// Conversion is a cached result of a full country-to-coordinates run.
type Conversion struct {
	Country     string        `json:"country"`
	Locations   []GeoLocation `json:"locations"`
	Model       string        `json:"model"`
	ConvertedAt string        `json:"converted_at"`
}
