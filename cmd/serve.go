package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Akbari06/WellWorld/internal/llm"
	"github.com/Akbari06/WellWorld/internal/scraper"
	"github.com/Akbari06/WellWorld/internal/store"
	"github.com/Akbari06/WellWorld/internal/web"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the geo-conversion and chat API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.Server.Host
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		client, err := llm.NewClient(cfg.LLM.Model, cfg.LLM.MaxTokens)
		if err != nil {
			return err
		}

		rl := scraper.NewRateLimiter(cfg.Scrape.RateLimit)
		addr := fmt.Sprintf("%s:%d", serveHost, servePort)

		srv := web.NewServer(s, client, addr, cfg.LLM.Model, cfg.Scrape.SearchURL, cfg.LLM.MaxTokens, rl)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
