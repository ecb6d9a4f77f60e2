package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Akbari06/WellWorld/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Store Status\n")
		fmt.Printf("============\n")
		fmt.Printf("Cached conversions: %d\n", s.ConversionCount())
		fmt.Printf("Chat sessions:      %d\n", s.SessionCount())
		fmt.Printf("Chat messages:      %d\n", s.MessageCount())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
