package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Akbari06/WellWorld/internal/enrich"
	"github.com/Akbari06/WellWorld/internal/geoparse"
	"github.com/Akbari06/WellWorld/internal/llm"
	"github.com/Akbari06/WellWorld/internal/model"
	"github.com/Akbari06/WellWorld/internal/scraper"
	"github.com/Akbari06/WellWorld/internal/store"
)

var (
	convertLimit   int
	convertModel   string
	convertRefresh bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <country>",
	Short: "Convert a country's opportunity listings into coordinates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		country := strings.ToLower(strings.TrimSpace(args[0]))

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		if !convertRefresh {
			if cached, err := s.ReadConversion(country); err == nil && cached != nil {
				logVerbose("serving %q from cache (converted %s)", country, cached.ConvertedAt)
				return printLocations(cached.Locations)
			}
		}

		if !cmd.Flags().Changed("model") {
			convertModel = cfg.LLM.Model
		}
		client, err := llm.NewClient(convertModel, cfg.LLM.MaxTokens)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		rl := scraper.NewRateLimiter(cfg.Scrape.RateLimit)

		opps, err := scraper.SearchOpportunities(ctx, cfg.Scrape.SearchURL, country, convertLimit, rl)
		if err != nil {
			return fmt.Errorf("searching opportunities: %w", err)
		}
		if len(opps) == 0 {
			fmt.Fprintf(os.Stderr, "No opportunities found for %q.\n", country)
			return printLocations(nil)
		}
		logVerbose("found %d opportunity links", len(opps))

		links := make([]string, len(opps))
		for i, opp := range opps {
			links[i] = opp.Link
		}
		prompt, err := llm.BuildGeoPrompt(links)
		if err != nil {
			return fmt.Errorf("building prompt: %w", err)
		}

		text, usage, err := client.Generate(ctx, prompt, "")
		if err != nil {
			return fmt.Errorf("calling model: %w", err)
		}
		logVerbose("model used %d input + %d output tokens", usage.InputTokens, usage.OutputTokens)

		locations := enrich.AttachLinks(geoparse.ExtractRecords(text), opps)

		conv := &model.Conversion{
			Country:     country,
			Locations:   locations,
			Model:       convertModel,
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.WriteConversion(conv); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: caching result: %v\n", err)
		}

		return printLocations(locations)
	},
}

func printLocations(locations []model.GeoLocation) error {
	if locations == nil {
		fmt.Println("[]")
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(locations)
}

func init() {
	convertCmd.Flags().IntVar(&convertLimit, "limit", 0, "Max number of opportunity links to convert (0 = no limit)")
	convertCmd.Flags().StringVar(&convertModel, "model", "gemini-2.5-flash", "Gemini model to use")
	convertCmd.Flags().BoolVar(&convertRefresh, "refresh", false, "Ignore the cached conversion and re-run the pipeline")
	rootCmd.AddCommand(convertCmd)
}
