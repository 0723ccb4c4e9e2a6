package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewAutocompleteCommand creates the cross-collection autocomplete command.
func NewAutocompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "autocomplete QUERY",
		Short: "Search-as-you-type across every collection",
		Long:  "Run a fast partial-match query against all resource collections at once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if text == "" {
				return ErrQueryTextRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Autocomplete(context.Background(), text)
			if err != nil {
				return fmt.Errorf("failed to autocomplete: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(result.Results)
			case OutputFormatYAML:
				return outputYAML(result.Results)
			default:
				if len(result.Results) == 0 {
					_, _ = os.Stdout.WriteString("No matches found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Display Name", "Hint")

				for _, entity := range result.Results {
					hint, _ := entity["hint"].(string)
					_ = table.Append(entity.ShortID(), entity.DisplayName(), hint)
				}

				_ = table.Render()

				return nil
			}
		},
	}
}
