package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/registro-cli/internal/adapters/driving/tui/views/listing"
	"github.com/custodia-labs/registro-cli/internal/core/domain"
)

var (
	listSource string
	listQuery  string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registrations from every source",
	Long: `Fetches inscripciones and registro_personas, merges them, and prints
the records newest first.

A failing source does not hide the others: its error is printed as a
warning and the remaining records are still listed.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSource, "source", "s", "ALL",
		"source filter: ALL, INSCRIPCIONES or REGISTRO_PERSONAS")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "",
		"free-text filter over nombre, identificación, celular, dirección and barrio")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(listCmd)
}

// listOutput is the JSON shape of the list command.
type listOutput struct {
	Records []domain.Record          `json:"records"`
	Errors  []string                 `json:"errors"`
	Counts  map[domain.SourceTag]int `json:"counts"`
}

func runList(cmd *cobra.Command, _ []string) error {
	source, err := domain.ParseSourceFilter(listSource)
	if err != nil {
		return err
	}

	if err := ensureServices(cmd); err != nil {
		return err
	}
	if listingService == nil {
		return errors.New("listing service not configured")
	}

	result, err := listingService.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	records := listingService.Apply(result.Records, domain.ListFilter{Source: source, Query: listQuery})

	if result.HasErrors() {
		cmd.PrintErrln("⚠️ " + result.ErrorSummary())
	}

	if listJSON {
		if err := outputListJSON(cmd, records, result); err != nil {
			return err
		}
	} else {
		outputListTable(cmd, records, result)
	}

	if result.HasErrors() && result.Total() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAPIUnavailable, result.ErrorSummary())
	}
	return nil
}

func outputListJSON(cmd *cobra.Command, records []domain.Record, result *domain.Listing) error {
	out := listOutput{
		Records: records,
		Errors:  result.Errors,
		Counts:  result.Counts,
	}
	if out.Records == nil {
		out.Records = []domain.Record{}
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputListTable(cmd *cobra.Command, records []domain.Record, result *domain.Listing) {
	counts := []string{
		listing.SourceOptionLabel(domain.SourceAll, result),
		listing.SourceOptionLabel(domain.SourceFilter(domain.SourceInscripciones), result),
		listing.SourceOptionLabel(domain.SourceFilter(domain.SourceRegistroPersonas), result),
	}
	cmd.Println(strings.Join(counts, " · "))
	cmd.Println()

	if len(records) == 0 {
		cmd.Println(table.EmptyMessage)
		return
	}

	tbl := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(table.Columns...).
		Rows(table.Rows(records)...)
	cmd.Println(tbl.String())
}
