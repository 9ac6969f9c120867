package main

import (
	"context"
	"fmt"
	"log"

	"github.com/asaidimu/go-tabula/config"
	"github.com/asaidimu/go-tabula/core"
	"github.com/asaidimu/go-tabula/core/gapminder"
	"github.com/asaidimu/go-tabula/core/regress"
	"github.com/asaidimu/go-tabula/csv"
	"github.com/asaidimu/go-tabula/sqlite"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// --- Load the dataset ---
	reader := csv.NewReader(nil, logger)
	dataset, err := core.Open(ctx, reader, cfg.Source, logger)
	if err != nil {
		logger.Fatal("Failed to open dataset", zap.Error(err))
	}

	unsubscribe := dataset.Subscribe(core.DatasetQuerySuccess, func(ctx context.Context, event core.DatasetEvent) error {
		fmt.Printf("query on %s returned %d rows in %s\n", event.DatasetID, event.Rows, event.Duration)
		return nil
	})
	defer unsubscribe()

	df := dataset.Frame()
	fmt.Println("--- Dataset ---")
	fmt.Println(df)

	// --- Indexing and subsetting ---
	head, err := df.Slice(0, 5)
	if err != nil {
		logger.Fatal("Failed to slice dataset", zap.Error(err))
	}
	fmt.Println("--- First five rows ---")
	fmt.Println(head)

	subset, err := df.Select(gapminder.ColCountry, gapminder.ColYear, gapminder.ColGDPPerCapita)
	if err != nil {
		logger.Fatal("Failed to select columns", zap.Error(err))
	}
	fmt.Println("--- Selected columns ---")
	fmt.Println(subset)

	// --- Summary statistics ---
	summary, err := df.Describe()
	if err != nil {
		logger.Fatal("Failed to describe dataset", zap.Error(err))
	}
	fmt.Println("--- Summary ---")
	fmt.Println(summary)

	// --- Filter and derive GDP ---
	derived, err := gapminder.CalcGDP(df, gapminder.Options{Years: []int{2007}})
	if err != nil {
		logger.Fatal("Failed to compute GDP", zap.Error(err))
	}
	fmt.Println("--- GDP for 2007 ---")
	fmt.Println(derived)

	// --- Linear regression ---
	fit, err := regress.Linear(derived, gapminder.ColGDPPerCapita, gapminder.ColYear)
	if err == nil {
		fmt.Printf("gdp_per_capita ~ year: alpha=%.2f beta=%.2f r2=%.3f\n", fit.Alpha, fit.Beta, fit.RSquared)
	} else {
		logger.Warn("Simple regression skipped", zap.Error(err))
	}

	model, err := regress.FitMultiple(df, gapminder.ColGDPPerCapita, gapminder.ColYear, gapminder.ColPopulation)
	if err == nil {
		fmt.Println("Model:", model.Formula())
	} else {
		logger.Warn("Multiple regression skipped", zap.Error(err))
	}

	// --- Persist the derived frame ---
	store, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.Close()

	if err := store.Save(ctx, "gdp_2007", derived); err != nil {
		logger.Fatal("Failed to save frame", zap.Error(err))
	}
	restored, err := store.Load(ctx, "gdp_2007")
	if err != nil {
		logger.Fatal("Failed to load frame", zap.Error(err))
	}
	fmt.Println("--- Restored from SQLite ---")
	fmt.Println(restored)
}
