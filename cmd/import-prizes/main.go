// Command import-prizes loads a prize catalog from a CSV file into the configured store.
//
//	import-prizes [--replace] prizes.csv
//
// The CSV needs a header with name and weight columns; image is optional.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ArowuTest/spin-wheel-backend/internal/config"
	"github.com/ArowuTest/spin-wheel-backend/internal/services"
	"github.com/ArowuTest/spin-wheel-backend/internal/store"
	"github.com/ArowuTest/spin-wheel-backend/internal/utils"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	replace := flag.Bool("replace", false, "delete the current catalog before importing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [--replace] <file.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}
	if err := run(context.Background(), flag.Arg(0), *replace); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, replace bool) error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	parsed, err := utils.ParsePrizesCSV(file)
	if err != nil {
		return err
	}
	for _, msg := range parsed.Errors {
		slog.Warn("Invalid row", "detail", msg)
	}
	if len(parsed.Errors) > 0 {
		return fmt.Errorf("%d of %d rows are invalid, nothing imported", len(parsed.Errors), parsed.TotalRows)
	}
	if len(parsed.Prizes) == 0 {
		return fmt.Errorf("no prizes found in %s", path)
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	n, err := services.NewPrizeService(st.Prizes).ImportPrizes(ctx, parsed.Prizes, replace)
	if err != nil {
		return err
	}
	slog.Info("Prizes imported successfully", "count", n, "replace", replace)
	return nil
}
