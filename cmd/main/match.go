package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"matcher-service/internal/config"
	"matcher-service/internal/fileio"
	recHnd "matcher-service/internal/reconcile/handler"
	"matcher-service/internal/reconcile/model"
	recSvc "matcher-service/internal/reconcile/service"
)

type matchOptions struct {
	materials     string
	prices        string
	out           string
	minSimilarity float64
	topN          int
	supplier      string
	matHeaderRow  int
	priceHdrRow   int
	specs         []string
}

func newMatchCmd(root *rootOptions) *cobra.Command {
	o := &matchOptions{}
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a materials table against a price list and write a report",
		Example: `  matcher match --materials materials.xlsx --prices supplier.csv --min 50 --top-n 5 --out report.xlsx
  matcher match --materials m.csv --prices p.xls --out -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, root, o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.materials, "materials", "", "materials table (.xlsx, .xls, .csv)")
	f.StringVar(&o.prices, "prices", "", "price list table (.xlsx, .xls, .csv)")
	f.StringVar(&o.out, "out", "-", "report file (.xlsx or .json); - writes JSON to stdout")
	f.Float64Var(&o.minSimilarity, "min", -1, "minimum similarity percent (default from config)")
	f.IntVar(&o.topN, "top-n", 0, "keep at most N matches per material (0 = all)")
	f.StringVar(&o.supplier, "supplier", "", "supplier name when the price list has no supplier column")
	f.IntVar(&o.matHeaderRow, "materials-header-row", 1, "header row of the materials table (1-based)")
	f.IntVar(&o.priceHdrRow, "prices-header-row", 1, "header row of the price list (1-based)")
	f.StringSliceVar(&o.specs, "spec", nil, "column treated as a specification (repeatable)")
	_ = cmd.MarkFlagRequired("materials")
	_ = cmd.MarkFlagRequired("prices")
	return cmd
}

func runMatch(cmd *cobra.Command, root *rootOptions, o *matchOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}
	if o.out == "-" {
		cfg.LogFile = "" // stdout занят отчётом, логи только в stderr
	}
	logger := config.SetupLogger(cfg)

	engine, err := recSvc.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return err
	}

	mm := recHnd.DefaultMaterialMapping()
	mm.HeaderRow = o.matHeaderRow
	mm.SpecKeys = o.specs
	pm := recHnd.DefaultPriceMapping()
	pm.HeaderRow = o.priceHdrRow
	pm.SpecKeys = o.specs
	pm.Supplier = o.supplier

	matTable, err := readTable(o.materials, mm.HeaderRow)
	if err != nil {
		return err
	}
	priceTable, err := readTable(o.prices, pm.HeaderRow)
	if err != nil {
		return err
	}
	materials := recHnd.ToMaterials(matTable.Rows, mm, logger)
	items := recHnd.ToPriceItems(priceTable.Rows, pm, logger)

	minSim := o.minSimilarity
	if minSim < 0 {
		minSim = engine.MinSimilarity()
	}
	if math.IsNaN(minSim) || minSim > 100 {
		return fmt.Errorf("--min must be within 0-100, got %v", minSim)
	}

	results := recSvc.TopMatches(engine.MatchBatch(cmd.Context(), materials, items, minSim), o.topN)
	rep := model.Report{
		Results:    results,
		Summary:    recSvc.Summarize(materials, results),
		Statistics: recSvc.Statistics(materials, results),
		Stats:      engine.Stats(),
		MinSim:     minSim,
		TopN:       o.topN,
		MapM:       mm,
		MapP:       pm,
	}

	if o.out == "-" {
		return fileio.WriteReportJSON(cmd.OutOrStdout(), rep)
	}
	f, err := os.Create(o.out)
	if err != nil {
		return err
	}
	if err := fileio.WriteReport(f, o.out, rep); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", o.out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info().
		Str("out", o.out).
		Int("results", len(results)).
		Float64("match_rate", rep.Statistics.MatchRate).
		Msg("report written")
	return nil
}

func readTable(path string, headerRow int) (fileio.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileio.Table{}, err
	}
	defer f.Close()
	t, err := fileio.ReadTable(f, strings.TrimSpace(path), headerRow)
	if err != nil {
		return fileio.Table{}, err
	}
	return t, nil
}
