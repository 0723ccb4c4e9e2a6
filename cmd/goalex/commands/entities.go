package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goalex-io/goalex/pkg/openalex"
)

// entityFlags holds the query flags shared by every resource subcommand.
type entityFlags struct {
	filters       []string
	searchFilters []string
	sorts         []string
	selectFields  []string
	search        string
	similar       string
	groupBy       string
	sample        int
	seed          int
	perPage       int
	page          int
	all           bool
	count         bool
}

// NewEntityCommand creates the subcommand for one resource collection. With
// an identifier argument it fetches a single record ("random" works too);
// without one it lists the collection according to the query flags.
func NewEntityCommand(resource openalex.Resource) *cobra.Command {
	flags := &entityFlags{}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [ID]", resource),
		Short: fmt.Sprintf("Query the %s collection", resource),
		Long: fmt.Sprintf(`Query the %s collection.

Pass an OpenAlex ID, DOI, or other canonical identifier to fetch a single
record, or use the query flags to filter, search, sort, group, and paginate
the collection.`, resource),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			query := client.Collection(resource)

			if len(args) == 1 {
				return runGetEntity(ctx, query, args[0])
			}

			if err := applyQueryFlags(query, flags); err != nil {
				return err
			}

			return runListEntities(ctx, query, flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.filters, "filter", "f", nil,
		"filter predicate key=value (repeatable, dotted keys nest, values joined with | are OR-ed)")
	cmd.Flags().StringArrayVar(&flags.searchFilters, "search-filter", nil,
		"per-field search predicate key=text (repeatable)")
	cmd.Flags().StringArrayVar(&flags.sorts, "sort", nil, "sort directive key=asc|desc (repeatable)")
	cmd.Flags().StringSliceVar(&flags.selectFields, "select", nil, "restrict returned fields")
	cmd.Flags().StringVar(&flags.search, "search", "", "full-text search")
	cmd.Flags().StringVar(&flags.similar, "similar", "", "semantic similarity search")
	cmd.Flags().StringVar(&flags.groupBy, "group-by", "", "aggregate by field instead of listing records")
	cmd.Flags().IntVar(&flags.sample, "sample", 0, "request a pseudo-random sample of n records")
	cmd.Flags().IntVar(&flags.seed, "seed", 0, "seed for a reproducible sample")
	cmd.Flags().IntVar(&flags.perPage, "per-page", 0, "page size (1-200)")
	cmd.Flags().IntVar(&flags.page, "page", 0, "page number")
	cmd.Flags().BoolVar(&flags.all, "all", false, "cursor-paginate through every page")
	cmd.Flags().BoolVar(&flags.count, "count", false, "print only the total record count")

	return cmd
}

// applyQueryFlags translates the CLI flags into builder calls.
func applyQueryFlags(query *openalex.Query[openalex.Entity], flags *entityFlags) error {
	for _, arg := range flags.filters {
		key, value, orScope, err := parseFilterArg(arg)
		if err != nil {
			return err
		}

		if orScope {
			query.FilterOr(key, value)
		} else {
			query.Filter(key, value)
		}
	}

	for _, arg := range flags.searchFilters {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return fmt.Errorf("%w: %q", ErrInvalidFilterFormat, arg)
		}

		query.SearchFilter(key, value)
	}

	for _, arg := range flags.sorts {
		key, direction, found := strings.Cut(arg, "=")
		if !found || key == "" || direction == "" {
			return fmt.Errorf("%w: %q", ErrInvalidSortFormat, arg)
		}

		query.Sort(key, direction)
	}

	if len(flags.selectFields) > 0 {
		query.Select(flags.selectFields...)
	}

	if flags.search != "" {
		query.Search(flags.search)
	}

	if flags.similar != "" {
		query.Similar(flags.similar)
	}

	if flags.groupBy != "" {
		query.GroupBy(flags.groupBy)
	}

	if flags.sample > 0 {
		if flags.seed > 0 {
			query.Sample(flags.sample, flags.seed)
		} else {
			query.Sample(flags.sample)
		}
	}

	return nil
}

// parseFilterArg parses one --filter argument. A "|"-joined value list turns
// into an OR predicate; a leading "!", ">" or "<" marks the value operator.
func parseFilterArg(arg string) (string, any, bool, error) {
	key, raw, err := ParseKeyValue(arg)
	if err != nil {
		return "", nil, false, err
	}

	value, ok := raw.(string)
	if !ok {
		// Nested maps and coerced booleans pass through untouched.
		return key, raw, false, nil
	}

	if strings.Contains(value, "|") {
		parts := strings.Split(value, "|")

		values := make([]any, len(parts))
		for i, part := range parts {
			values[i] = applyValueOperator(part)
		}

		return key, values, true, nil
	}

	return key, applyValueOperator(value), false, nil
}

func applyValueOperator(value string) any {
	switch {
	case strings.HasPrefix(value, "!"):
		return openalex.Not(coerceValue(value[1:]))
	case strings.HasPrefix(value, ">"):
		return openalex.Gt(coerceValue(value[1:]))
	case strings.HasPrefix(value, "<"):
		return openalex.Lt(coerceValue(value[1:]))
	default:
		return coerceValue(value)
	}
}

func runGetEntity(ctx context.Context, query *openalex.Query[openalex.Entity], id string) error {
	entity, err := query.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return outputJSON(entity)
	case OutputFormatYAML:
		return outputYAML(entity)
	default:
		return outputEntityTable(entity)
	}
}

func runListEntities(ctx context.Context, query *openalex.Query[openalex.Entity], flags *entityFlags) error {
	if flags.count {
		count, err := query.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count records: %w", err)
		}

		_, _ = fmt.Fprintf(os.Stdout, "%d\n", count)

		return nil
	}

	result, err := fetchEntities(ctx, query, flags)
	if err != nil {
		return err
	}

	switch viper.GetString("output") {
	case OutputFormatJSON:
		if result.Groups != nil {
			return outputJSON(result.Groups)
		}

		return outputJSON(result.Results)
	case OutputFormatYAML:
		if result.Groups != nil {
			return outputYAML(result.Groups)
		}

		return outputYAML(result.Results)
	default:
		return outputListTable(result, flags.all)
	}
}

func fetchEntities(
	ctx context.Context, query *openalex.Query[openalex.Entity], flags *entityFlags,
) (*openalex.ListResult[openalex.Entity], error) {
	if !flags.all {
		opts := &openalex.GetOptions{PerPage: flags.perPage, Page: flags.page}

		result, err := query.Get(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list records: %w", err)
		}

		return result, nil
	}

	paginator, err := query.Paginate(&openalex.PaginateOptions{PerPage: flags.perPage})
	if err != nil {
		return nil, fmt.Errorf("failed to paginate records: %w", err)
	}

	combined := &openalex.ListResult[openalex.Entity]{}

	for paginator.HasNext() {
		page, err := paginator.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page: %w", err)
		}

		combined.Meta = page.Meta
		combined.Results = append(combined.Results, page.Results...)
		combined.Groups = append(combined.Groups, page.Groups...)
	}

	return combined, nil
}

func outputEntityTable(entity openalex.Entity) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", entity.ID())
	_ = table.Append("Display Name", entity.DisplayName())

	for _, key := range []string{"publication_year", "cited_by_count", "works_count", "doi", "country_code"} {
		if value, ok := entity[key]; ok {
			_ = table.Append(key, formatCell(value))
		}
	}

	_ = table.Render()

	return nil
}

func outputListTable(result *openalex.ListResult[openalex.Entity], allPages bool) error {
	if result.Groups != nil {
		return outputGroupsTable(result.Groups)
	}

	if len(result.Results) == 0 {
		_, _ = os.Stdout.WriteString("No records found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Display Name")

	for _, entity := range result.Results {
		_ = table.Append(entity.ShortID(), entity.DisplayName())
	}

	_ = table.Render()

	if !allPages && result.Meta.Count > len(result.Results) {
		_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d records. Use --all to fetch every page.\n",
			len(result.Results), result.Meta.Count)
	}

	return nil
}

func outputGroupsTable(groups []openalex.GroupBucket) error {
	if len(groups) == 0 {
		_, _ = os.Stdout.WriteString("No groups found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Key", "Display Name", "Count")

	for _, bucket := range groups {
		_ = table.Append(bucket.Key, bucket.KeyDisplayName, strconv.Itoa(bucket.Count))
	}

	_ = table.Render()

	return nil
}

func formatCell(value any) string {
	switch typed := value.(type) {
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case string:
		return typed
	default:
		return fmt.Sprintf("%v", typed)
	}
}
