package llm

import "encoding/json"

// BuildGeoPrompt produces the strict "JSON array only" system prompt that
// asks the model to map each opportunity link to coordinates. The contract it
// demands is what the geoparse package tolerantly recovers when the model
// deviates anyway.
func BuildGeoPrompt(links []string) (string, error) {
	linksJSON, err := json.Marshal(links)
	if err != nil {
		return "", err
	}

	return `You are given a JSON array of URLs (links) pointing to volunteer opportunity pages.
Task: For each URL produce a JSON object with these exact keys:
  - "latlon": an array [lat, lon] where lat and lon are parseable floats (latitude first),
  - "country": the country for that lat/lon, as a lower-case English name (for example: 'japan').
Requirements (strict):
 - Output MUST be a single valid JSON array and nothing else. Example:
   [ {"latlon": [35.6897, 139.6922], "country": "japan"}, {"latlon": [...], "country": "country"} ]
 - Do NOT include markdown, backticks, commentary, notes, or any extra text.
 - Ensure lat and lon are parseable floats and in the order [latitude, longitude].
 - Make sure that the countries are full English names in lower case (no country codes).
 - Return entries in the same order as the input links array. If you cannot find coordinates for a link, omit that link's object entirely.
 - Each array element MUST contain both keys: "latlon" and "country" (if country is unknown, set it to null explicitly).
Input links array:
` + string(linksJSON) + `
Reply now with only the JSON array (no extra text).`, nil
}

// AdvisorSystemPrompt instructs the model to pick the best opportunity from a
// digest of scraped description fields.
const AdvisorSystemPrompt = `You are an expert advisor for volunteering opportunities.
Analyze the provided volunteering opportunities and recommend the best one based on:
- Available Times (when volunteers can participate)
- Time Commitment (how much time is required)
- Recurrence (one-time vs recurring)
- Cost (any fees required)
- Cause Areas (what causes they support)
- Benefits (training, housing, language support, etc.)
- Good For (who can participate: kids, teens, groups, etc.)

Provide a clear, concise recommendation explaining why this opportunity is the best fit.
Focus on practical considerations that help volunteers make informed decisions.`
