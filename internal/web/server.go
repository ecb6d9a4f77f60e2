package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Akbari06/WellWorld/internal/llm"
	"github.com/Akbari06/WellWorld/internal/model"
	"github.com/Akbari06/WellWorld/internal/scraper"
	"github.com/Akbari06/WellWorld/internal/store"
)

// Generator produces text from a system prompt and user prompt. Satisfied by
// *llm.Client; stubbed in tests.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, prompt string) (string, llm.Usage, error)
}

// SearchFunc finds opportunity links for a country query.
type SearchFunc func(ctx context.Context, country string, limit int) ([]model.Opportunity, error)

// GeneratorFactory builds a Generator for a per-request model override.
type GeneratorFactory func(modelName string) (Generator, error)

// Server serves the geo-conversion and chat API.
type Server struct {
	Store     *store.Store
	Gen       Generator
	NewGen    GeneratorFactory
	Search    SearchFunc
	Addr      string
	ModelName string
	RateLim   *scraper.RateLimiter
}

// NewServer wires a Server with the real listing-site search and model client.
func NewServer(s *store.Store, gen Generator, addr, modelName, searchURL string, maxTokens int, rl *scraper.RateLimiter) *Server {
	return &Server{
		Store: s,
		Gen:   gen,
		NewGen: func(modelName string) (Generator, error) {
			return llm.NewClient(modelName, maxTokens)
		},
		Search: func(ctx context.Context, country string, limit int) ([]model.Opportunity, error) {
			return scraper.SearchOpportunities(ctx, searchURL, country, limit, rl)
		},
		Addr:      addr,
		ModelName: modelName,
		RateLim:   rl,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/convert", s.handleConvert)
	mux.HandleFunc("/api/recommend", s.handleRecommend)
	mux.HandleFunc("/api/messages", s.handleMessages)
	mux.HandleFunc("/api/health", s.handleHealth)

	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, mux)
}
