package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewNgramsCommand creates the work full-text n-grams command.
func NewNgramsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ngrams WORK_ID",
		Short: "List the n-grams of a work's full text",
		Long:  "Fetch the n-grams extracted from a work's full text, with counts and term frequencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workID := args[0]
			if workID == "" {
				return ErrWorkIDRequired
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.WorkNgrams(context.Background(), workID)
			if err != nil {
				return fmt.Errorf("failed to get ngrams: %w", err)
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return outputJSON(result.Ngrams)
			case OutputFormatYAML:
				return outputYAML(result.Ngrams)
			default:
				if len(result.Ngrams) == 0 {
					_, _ = os.Stdout.WriteString("No ngrams found\n")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Ngram", "Tokens", "Count", "Term Frequency")

				for _, ngram := range result.Ngrams {
					_ = table.Append(
						ngram.Ngram,
						strconv.Itoa(ngram.NgramTokens),
						strconv.Itoa(ngram.NgramCount),
						strconv.FormatFloat(ngram.TermFrequency, 'g', -1, 64),
					)
				}

				_ = table.Render()

				return nil
			}
		},
	}
}
