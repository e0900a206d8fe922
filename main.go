package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/phantom-ledger/internal/api"
	"github.com/insightdelivered/phantom-ledger/internal/cleaner"
	"github.com/insightdelivered/phantom-ledger/internal/extractor"
	"github.com/insightdelivered/phantom-ledger/internal/models"
	"github.com/insightdelivered/phantom-ledger/internal/parser"
	"github.com/insightdelivered/phantom-ledger/internal/writer"
)

const version = "1.0.0"

var outputFlag string

func main() {
	rootCmd := &cobra.Command{
		Use:     "phantom-ledger",
		Short:   "Convert bank statement PDFs into normalized transaction exports",
		Version: version,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP batch processing server",
		RunE:  runServe,
	}

	convertCmd := &cobra.Command{
		Use:   "convert <input.pdf> [input2.pdf ...]",
		Short: "Convert statement PDFs into a CSV file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVarP(&outputFlag, "output", "o", "",
		"Output CSV file path (defaults to first input filename with .csv extension)")

	rootCmd.AddCommand(serveCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// newCleaner wires the AI description cleaner when an API key is configured,
// falling back to the rule-based cleaner otherwise.
func newCleaner(logger zerolog.Logger) cleaner.Cleaner {
	if ai := cleaner.NewAICleaner(os.Getenv("AI_CLEANER_MODEL"), logger); ai != nil {
		logger.Info().Msg("AI description cleaner enabled")
		return ai
	}
	return cleaner.NewRuleCleaner()
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}

	logger := newLogger()

	port := 8787
	if v, err := strconv.Atoi(os.Getenv("PORT")); err == nil && v > 0 {
		port = v
	}
	maxFileMB := api.DefaultMaxFileMB
	if v, err := strconv.Atoi(os.Getenv("MAX_FILE_MB")); err == nil && v > 0 {
		maxFileMB = v
	}

	app := api.NewApp(logger, newCleaner(logger), maxFileMB)
	logger.Info().Int("port", port).Msg("phantom-ledger server listening")
	return app.Listen(fmt.Sprintf(":%d", port))
}

func runConvert(_ *cobra.Command, args []string) error {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded environment from .env")
	}
	logger := newLogger()

	var rows []models.Row
	processed := 0
	for _, input := range args {
		pages, err := extractor.ExtractFile(input)
		if err != nil {
			logger.Warn().Str("file", input).Err(err).Msg("skipping file")
			continue
		}
		fileName := filepath.Base(input)
		result, err := parser.ParseDocument(fileName, pages)
		if err != nil {
			logger.Warn().Str("file", input).Err(err).Msg("skipping file")
			continue
		}
		processed++
		for _, w := range result.Warnings {
			logger.Info().Str("file", input).Msg(w)
		}
		for _, tx := range result.Transactions {
			rows = append(rows, models.Row{
				Date:       tx.Date,
				Amount:     tx.Amount,
				Original:   tx.Description,
				DateValue:  tx.DateValue,
				SourceFile: tx.SourceFile,
			})
		}
	}

	if processed == 0 {
		return fmt.Errorf("no input file could be processed")
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DateValue < rows[j].DateValue })

	clean := newCleaner(logger)
	memos := make([]string, len(rows))
	for i, row := range rows {
		memos[i] = row.Original
	}
	for i, c := range clean.CleanBatch(memos) {
		rows[i].Clean = c
	}

	output := outputFlag
	if output == "" {
		base := args[0]
		output = strings.TrimSuffix(base, filepath.Ext(base)) + ".csv"
	}

	var csvWriter writer.CSVWriter
	if err := csvWriter.WriteToFile(output, rows); err != nil {
		return err
	}

	logger.Info().Int("transactions", len(rows)).Str("output", output).Msg("conversion complete")
	return nil
}
