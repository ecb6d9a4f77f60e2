package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Akbari06/WellWorld/internal/enrich"
	"github.com/Akbari06/WellWorld/internal/geoparse"
	"github.com/Akbari06/WellWorld/internal/llm"
	"github.com/Akbari06/WellWorld/internal/model"
	"github.com/Akbari06/WellWorld/internal/recommend"
)

// handleConvert runs the full pipeline for a country query: search the
// listing site, ask the model for coordinates, recover records from whatever
// it replied, and attach the source links. Any glue failure degrades to an
// empty list with status 200; the caller only ever sees a JSON array.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	country := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("country")))
	if country == "" {
		http.Error(w, "missing 'country' parameter", http.StatusBadRequest)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			http.Error(w, "invalid 'limit' parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	gen := s.Gen
	modelName := s.ModelName
	if override := strings.TrimSpace(r.URL.Query().Get("model")); override != "" && override != s.ModelName {
		if s.NewGen == nil {
			http.Error(w, "model override not supported", http.StatusBadRequest)
			return
		}
		g, err := s.NewGen(override)
		if err != nil {
			fmt.Fprintf(os.Stderr, "convert: building client for model %q: %v\n", override, err)
			writeJSON(w, []model.GeoLocation{})
			return
		}
		gen = g
		modelName = override
	}

	// A model override forces a fresh run; the cache only answers for the
	// configured model.
	refresh := r.URL.Query().Get("refresh") == "true" || modelName != s.ModelName
	if !refresh && s.Store != nil {
		if cached, err := s.Store.ReadConversion(country); err == nil && cached != nil {
			writeJSON(w, cached.Locations)
			return
		}
	}

	opps, err := s.Search(r.Context(), country, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: search failed for %q: %v\n", country, err)
		writeJSON(w, []model.GeoLocation{})
		return
	}
	if len(opps) == 0 {
		writeJSON(w, []model.GeoLocation{})
		return
	}

	links := make([]string, len(opps))
	for i, opp := range opps {
		links[i] = opp.Link
	}
	prompt, err := llm.BuildGeoPrompt(links)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: building prompt: %v\n", err)
		writeJSON(w, []model.GeoLocation{})
		return
	}

	text, _, err := gen.Generate(r.Context(), prompt, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: generation failed for %q: %v\n", country, err)
		writeJSON(w, []model.GeoLocation{})
		return
	}

	locations := enrich.AttachLinks(geoparse.ExtractRecords(text), opps)

	if s.Store != nil {
		conv := &model.Conversion{
			Country:     country,
			Locations:   locations,
			Model:       modelName,
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.Store.WriteConversion(conv); err != nil {
			fmt.Fprintf(os.Stderr, "convert: caching result for %q: %v\n", country, err)
		}
	}

	writeJSON(w, locations)
}

type recommendRequest struct {
	Opportunities []model.Opportunity `json:"opportunities"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Opportunities) == 0 {
		http.Error(w, "no opportunities provided", http.StatusBadRequest)
		return
	}

	rec, err := recommend.Recommend(r.Context(), s.Gen, req.Opportunities, s.RateLim)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to generate recommendation: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, rec)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter := model.MessageFilter{
			Session: r.URL.Query().Get("session"),
			Role:    r.URL.Query().Get("role"),
			Since:   r.URL.Query().Get("since"),
		}
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			n, err := strconv.Atoi(limitStr)
			if err != nil || n < 1 {
				http.Error(w, "invalid 'limit' parameter", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}

		msgs, err := s.Store.QueryMessages(filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if msgs == nil {
			msgs = []model.ChatMessage{}
		}
		writeJSON(w, msgs)

	case http.MethodPost:
		var m model.ChatMessage
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if m.Session == "" || m.Role == "" || m.Body == "" {
			http.Error(w, "session, role, and body are required", http.StatusBadRequest)
			return
		}

		if err := s.Store.AppendMessage(&m); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(m)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	// Wildcard CORS — the map frontend is served separately.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
