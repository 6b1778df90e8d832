package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/rectify/pkg/logging"
	"github.com/agentstation/rectify/pkg/sources"
)

var (
	inspectFormat string
	inspectQuery  string
	inspectKeys   []string
)

// inspectCmd reports duplicate key groups in a dataset.
var inspectCmd = &cobra.Command{
	Use:   "inspect <dataset>",
	Short: "Report duplicate key groups",
	Long: `Inspect loads a dataset and lists every key group holding more
than one row, together with the attribute columns whose values disagree
within the group. Use it to decide which attributes need reconciliation
rules before running clean.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "", "dataset format (csv, yaml, sqlite); inferred from the file extension when empty")
	inspectCmd.Flags().StringVar(&inspectQuery, "query", "", "query to run against a sqlite dataset")
	inspectCmd.Flags().StringSliceVar(&inspectKeys, "keys", nil, "key columns defining a group (required)")
	_ = inspectCmd.MarkFlagRequired("keys")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := logging.WithLogger(cmd.Context(), logging.Default())

	path := args[0]
	format := sources.Type(inspectFormat)
	if inspectFormat == "" {
		format = inferFormat(path)
	}

	source, err := sources.New(format, path, inspectQuery)
	if err != nil {
		return err
	}
	t, err := source.Load(ctx)
	if err != nil {
		return err
	}

	keyCols, err := t.ColumnIndexes(inspectKeys...)
	if err != nil {
		return err
	}

	keySet := make(map[string]bool, len(inspectKeys))
	for _, k := range inspectKeys {
		keySet[k] = true
	}

	title := cases.Title(language.English)
	out := tablewriter.NewTable(cmd.OutOrStdout())
	out.Header(title.String("key"), title.String("rows"), title.String("inconsistent attributes"))

	duplicates := 0
	for _, group := range t.GroupBy(keyCols, nil) {
		if len(group.Rows) < 2 {
			continue
		}
		duplicates++
		var inconsistent []string
		for j, column := range t.Columns() {
			if keySet[column] {
				continue
			}
			first := t.At(group.Rows[0], j)
			for _, row := range group.Rows[1:] {
				if !t.At(row, j).Equal(first) {
					inconsistent = append(inconsistent, column)
					break
				}
			}
		}
		if err := out.Append(group.Key.String(), fmt.Sprintf("%d", len(group.Rows)), strings.Join(inconsistent, ", ")); err != nil {
			return err
		}
	}

	if duplicates == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No duplicate key groups on (%s): %d rows are unique.\n",
			strings.Join(inspectKeys, ", "), t.Len())
		return nil
	}
	if err := out.Render(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d duplicate key groups across %d rows.\n", duplicates, t.Len())
	return nil
}

// inferFormat maps a file extension to a source type.
func inferFormat(path string) sources.Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return sources.TypeYAML
	case ".db", ".sqlite", ".sqlite3":
		return sources.TypeSQLite
	default:
		return sources.TypeCSV
	}
}
