package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"stokreport/adapters/excel"
	"stokreport/app"
	"stokreport/internal"
	apperrors "stokreport/internal/errors"
	"stokreport/internal/schema"
	"stokreport/internal/testkit"
	"stokreport/ports"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stokreport",
		Short: "Build the stock and sales report workbook from four spreadsheet exports",
		// main prints the error with its code
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(),
		newSchemaCmd(),
		newFixturesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError prefixes application errors with their code
func formatError(err error) string {
	if apperrors.IsAppError(err) {
		return fmt.Sprintf("[%s] %v", apperrors.GetCode(err), err)
	}
	return err.Error()
}

type generateOptions struct {
	Barcode  string
	Sales    string
	Orders   string
	Template string
	Out      string
	Schema   string
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the report workbook",
		Long: `Generate the report workbook from the barcoded product catalog, the net
sales report, the orders export and the template whose header row fixes the
output columns.

Example: stokreport generate --barcode barkod.xlsx --sales satis.xlsx --orders orders.xlsx --template template.xlsx --out "Satış Raporu.xlsx"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Barcode, "barcode", "", "Barcoded product catalog (.xlsx or .csv)")
	cmd.Flags().StringVar(&opts.Sales, "sales", "", "Net sales report (.xlsx or .csv)")
	cmd.Flags().StringVar(&opts.Orders, "orders", "", "Orders export (.xlsx or .csv)")
	cmd.Flags().StringVar(&opts.Template, "template", "", "Template whose header row lists the output columns")
	cmd.Flags().StringVar(&opts.Out, "out", "Satış Raporu.xlsx", "Output workbook path")
	cmd.Flags().StringVar(&opts.Schema, "schema", os.Getenv("SCHEMA_FILE"), "Optional YAML override of the column positions")
	for _, name := range []string{"barcode", "sales", "orders", "template"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runGenerate(ctx context.Context, opts generateOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := schema.Load(opts.Schema)
	if err != nil {
		return err
	}

	var up app.Uploads
	paths := []struct {
		path string
		dst  *app.Upload
	}{
		{opts.Barcode, &up.Barcode},
		{opts.Sales, &up.Sales},
		{opts.Orders, &up.Orders},
		{opts.Template, &up.Template},
	}
	for _, p := range paths {
		f, err := os.Open(p.path)
		if err != nil {
			return apperrors.WithCode(apperrors.CodeInvalidInput, apperrors.Wrapf(err, "failed to open input %s", p.path))
		}
		defer f.Close()
		*p.dst = app.Upload{Filename: filepath.Base(p.path), Reader: f}
	}

	svc := app.NewReportService(
		excel.NewDataReader(excel.DefaultExcelConfig()),
		excel.NewWorkbookWriter(),
		s,
		internal.NewDefaultLogger(),
	).WithObserver(ports.ProgressFunc(func(e ports.ProgressEvent) {
		fmt.Fprintf(out, "[%3d%%] %s\n", e.Percent, e.Message)
	}))

	result, err := svc.Generate(ctx, up)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Out, result.Workbook, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}

	fmt.Fprintf(out, "Report written to %s\n", opts.Out)
	fmt.Fprintf(out, "  Sold products: %d rows\n", result.Report.SoldProducts.RowCount())
	fmt.Fprintf(out, "  All products:  %d rows\n", result.Report.AllProducts.RowCount())
	fmt.Fprintf(out, "  Efficiency:    %.2f%%\n", result.RatioPercent)
	return nil
}

func newSchemaCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the effective column schema as YAML",
		Long: `Print the column positions used to read the source exports. With --schema
the override file is applied and validated first; the output is a complete
override file that can be edited and passed back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(path, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&path, "schema", "", "YAML override to apply")
	return cmd
}

func runSchema(path string, out io.Writer) error {
	s, err := schema.Load(path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	return enc.Close()
}

func newFixturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixtures [dir]",
		Short: "Write a small set of sample input workbooks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func runFixtures(dir string, out io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	fx := testkit.NewFixtures()
	files := []struct {
		name  string
		build func() ([]byte, error)
	}{
		{"barcode.xlsx", fx.BarcodeWorkbook},
		{"sales.xlsx", fx.SalesWorkbook},
		{"orders.xlsx", fx.OrdersWorkbook},
		{"template.xlsx", fx.TemplateWorkbook},
	}
	for _, f := range files {
		data, err := f.build()
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", f.name, err)
		}
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintln(out, path)
	}
	return nil
}
