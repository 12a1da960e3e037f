// Package main provides timecardctl, the offline batch front end: scan a
// directory of time-card images/PDFs and write the reconciled workbook
// without running the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"timecard-service/internal/config"
	"timecard-service/internal/fileio"
	"timecard-service/internal/ocr"
	"timecard-service/internal/timecard/attendance"
	"timecard-service/internal/timecard/model"
	tcSvc "timecard-service/internal/timecard/service"
)

var (
	outputPath      string
	rosterPath      string
	rosterSheet     string
	rosterColumn    int
	rosterHeaderRow int
	templatePath    string
	patternsPath    string
	patternID       string
	inCol           int
	outCol          int
	threshold       float64
)

var scanExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".gif": true, ".pdf": true,
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "timecardctl",
		Short:         "Time-card OCR reconciliation tool",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	processCmd := &cobra.Command{
		Use:   "process [dir or files...]",
		Short: "OCR time-card scans and reconcile them into a workbook",
		Long: `process sends scanned time cards to the OCR collaborator, corrects
names against a roster, merges duplicate person-months and writes the
result as an .xlsx workbook. Requires GEMINI_API_KEY.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run,
	}

	processCmd.Flags().StringVarP(&outputPath, "output", "o", "TimeCards.xlsx", "Output workbook path")
	processCmd.Flags().StringVar(&rosterPath, "roster", "", "Roster file (.xlsx/.xls/.csv) with known names")
	processCmd.Flags().StringVar(&rosterSheet, "roster-sheet", "", "Roster worksheet name (default: first)")
	processCmd.Flags().IntVar(&rosterColumn, "roster-column", 0, "0-based roster name column")
	processCmd.Flags().IntVar(&rosterHeaderRow, "roster-header-row", 0, "1-based header row to skip (0 = none)")
	processCmd.Flags().StringVar(&templatePath, "template", "", "Template workbook whose sheet names to resolve against")
	processCmd.Flags().StringVar(&patternsPath, "patterns", "", "JSON file with work patterns")
	processCmd.Flags().StringVar(&patternID, "pattern", "", "Work pattern id to apply (default: first)")
	processCmd.Flags().IntVar(&inCol, "in-col", -1, "0-based clock-in column (-1 = no attendance)")
	processCmd.Flags().IntVar(&outCol, "out-col", -1, "0-based clock-out column (-1 = no attendance)")
	processCmd.Flags().Float64Var(&threshold, "threshold", 0, "Roster similarity threshold (default 0.70)")

	rootCmd.AddCommand(processCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	client, err := ocr.NewGemini(ocr.Options{
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		APIKey:     cfg.GeminiAPIKey,
		Timeout:    cfg.OCRTimeout,
		Retries:    cfg.OCRRetries,
		RetryDelay: cfg.OCRRetryDelay,
	})
	if err != nil {
		return err
	}

	pages, err := collectPages(args, cfg.MaxPDFPages)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no scannable files under %s", strings.Join(args, ", "))
	}

	opt, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	// Ctrl-C cancels between pages; no partial workbook is written.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	raw, err := ocr.NewRunner(client, logger).Run(ctx, pages)
	if err != nil {
		return err
	}

	res, err := tcSvc.Run(raw, opt)
	if err != nil {
		return err
	}

	f, err := fileio.WriteWorkbook(res.Records)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	printSummary(cmd, res)
	return nil
}

func collectPages(args []string, maxPDFPages int) ([]ocr.Page, error) {
	var files []string
	for _, a := range args {
		st, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			files = append(files, a)
			continue
		}
		entries, err := os.ReadDir(a)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && scanExts[strings.ToLower(filepath.Ext(e.Name()))] {
				files = append(files, filepath.Join(a, e.Name()))
			}
		}
	}
	sort.Strings(files)

	var pages []ocr.Page
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		expanded, err := ocr.PagesFromUpload(filepath.Base(path), mimeByExt(path), data, maxPDFPages)
		if err != nil {
			return nil, err
		}
		pages = append(pages, expanded...)
	}
	return pages, nil
}

func mimeByExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}

func buildOptions(cfg config.Config) (model.Options, error) {
	opt := model.Options{
		Threshold: threshold,
		InCol:     inCol,
		OutCol:    outCol,
	}
	if opt.Threshold == 0 {
		opt.Threshold = cfg.Threshold
	}

	if rosterPath != "" {
		f, err := os.Open(rosterPath)
		if err != nil {
			return opt, err
		}
		defer f.Close()
		roster, err := fileio.ReadRoster(f, rosterPath, fileio.RosterOptions{
			Sheet:     rosterSheet,
			Column:    rosterColumn,
			HeaderRow: rosterHeaderRow,
		})
		if err != nil {
			return opt, fmt.Errorf("roster %s: %w", rosterPath, err)
		}
		opt.Roster = roster
	}

	if templatePath != "" {
		f, err := os.Open(templatePath)
		if err != nil {
			return opt, err
		}
		defer f.Close()
		names, err := fileio.SheetNames(f)
		if err != nil {
			return opt, fmt.Errorf("template %s: %w", templatePath, err)
		}
		opt.SheetNames = names
	}

	if patternsPath != "" {
		b, err := os.ReadFile(patternsPath)
		if err != nil {
			return opt, err
		}
		var patterns []attendance.WorkPattern
		if err := json.Unmarshal(b, &patterns); err != nil {
			return opt, fmt.Errorf("patterns %s: %w", patternsPath, err)
		}
		opt.Pattern = selectPattern(patterns, patternID)
		if opt.Pattern == nil {
			return opt, fmt.Errorf("pattern %q not found in %s", patternID, patternsPath)
		}
	}
	return opt, nil
}

func selectPattern(patterns []attendance.WorkPattern, id string) *attendance.WorkPattern {
	if len(patterns) == 0 {
		return nil
	}
	if id == "" {
		return &patterns[0]
	}
	for i := range patterns {
		if patterns[i].ID == id {
			return &patterns[i]
		}
	}
	return nil
}

func printSummary(cmd *cobra.Command, res model.Result) {
	cmd.Printf("wrote %s: %d record(s), %d transcription(s), %d raw record(s) skipped\n",
		outputPath, len(res.Records), len(res.Transcriptions), res.Skipped)
	for _, u := range res.Unmatched {
		if len(u.Suggestions) > 0 {
			cmd.Printf("  unmatched name %q (close: %s)\n", u.Name, strings.Join(u.Suggestions, ", "))
		} else {
			cmd.Printf("  unmatched name %q\n", u.Name)
		}
	}
	for _, s := range res.UnmatchedSheets {
		cmd.Printf("  no template sheet for %q\n", s)
	}
}
