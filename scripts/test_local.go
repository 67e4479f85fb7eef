//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"rental-analysis-engine/internal/services/analysis"
	"rental-analysis-engine/internal/services/database"
	"rental-analysis-engine/internal/services/pipeline"
	"rental-analysis-engine/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("=== Rental Analysis Engine - Local Test ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	if err := utils.InitLogger("info"); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer utils.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Parse sample CSV
	fmt.Println("📖 Parsing sample CSV...")

	csvContent, err := os.ReadFile("data/sample_properties.csv")
	if err != nil {
		fmt.Printf("❌ Failed to read CSV: %v\n", err)
		os.Exit(1)
	}

	batchID := fmt.Sprintf("test-batch-%d", time.Now().Unix())
	parser := utils.NewCSVParser()
	properties, parseErrors := parser.ParseProperties(string(csvContent), batchID)
	if len(parseErrors) > 0 {
		fmt.Printf("⚠️  CSV parsing errors: %v\n", parseErrors)
	}
	fmt.Printf("✅ Parsed %d properties from CSV\n", len(properties))

	// Without a database, analyze in memory and print the results
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println()
		fmt.Println("⚠️  DATABASE_URL not set, analyzing in memory only")
		fmt.Println()
		for _, create := range properties {
			input := create.ToInput("local")
			result := analysis.Calculate(input)
			score := analysis.ScoreDeal(input, result)
			fmt.Printf("🏠 %s\n", input.Name)
			fmt.Printf("   Cash Flow: $%.2f/mo | Cap Rate: %.2f%% | CoC: %.2f%%\n",
				result.MonthlyCashFlow, result.CapRate, result.CashOnCashReturn)
			fmt.Printf("   Deal Score: %.1f (%s)\n", score.Score, score.Grade)
		}
		return
	}

	// Connect to database
	db, err := database.NewFromURL(databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	fmt.Println("✅ Connected to database")

	// Run full pipeline: store, analyze, persist snapshots
	fmt.Println()
	fmt.Println("🎯 Running analysis pipeline...")

	analyzer := pipeline.NewAnalyzerService(db)
	batchResult, err := analyzer.ProcessBatch(ctx, batchID, properties)
	if err != nil {
		fmt.Printf("❌ Pipeline failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Analyzed %d properties (%d flagged, %d errors)\n",
		batchResult.Analyzed, batchResult.Flagged, len(batchResult.Errors))

	// Print the batch ranked by deal score
	fmt.Println()
	fmt.Println("💾 Fetching ranked results...")

	analysisRepo := database.NewAnalysisRepository(db)
	snapshots, err := analysisRepo.GetByBatchID(ctx, batchID, 20)
	if err != nil {
		fmt.Printf("⚠️  Error fetching snapshots: %v\n", err)
	} else {
		for i, snap := range snapshots {
			fmt.Printf("   %d. property=%s score=%.1f grade=%s\n",
				i+1, snap.PropertyID, snap.DealScore, snap.DealGrade)
		}
	}

	// Summary
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════")
	fmt.Println("              TEST COMPLETE")
	fmt.Println("═══════════════════════════════════════════")

	summary, err := analysisRepo.GetBatchSummary(ctx, batchID)
	if err == nil && summary != nil {
		fmt.Printf("📊 Properties:  %d\n", summary.PropertiesAnalyzed)
		fmt.Printf("📈 Avg Score:   %.1f\n", summary.AvgDealScore)
		fmt.Printf("🏆 Best Score:  %.1f\n", summary.BestDealScore)
		fmt.Printf("🎯 Strong Deals: %d\n", summary.StrongDeals)
	}
	fmt.Println("═══════════════════════════════════════════")
}
