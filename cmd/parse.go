package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Akbari06/WellWorld/internal/geoparse"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Run the tolerant coordinate parser over a raw model response",
	Long: `Reads a raw model response from the given file (or stdin when omitted),
recovers whatever coordinate records it contains, and prints them as JSON.
Useful for inspecting how a malformed response degrades.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		recs := geoparse.ExtractRecords(string(raw))
		logVerbose("recovered %d records from %d bytes", len(recs), len(raw))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if recs == nil {
			fmt.Println("[]")
			return nil
		}
		return enc.Encode(recs)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
