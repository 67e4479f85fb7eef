// Package pipeline implements the batch property analysis pipeline
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rental-analysis-engine/internal/models"
	"rental-analysis-engine/internal/services/analysis"
	"rental-analysis-engine/internal/services/database"
	"rental-analysis-engine/internal/utils"
)

// Flagging threshold. A deal carrying a critical warning or grading below
// this score is surfaced for review in the batch summary.
const flagScoreThreshold = 35.0

// AnalyzerService runs the staged batch pipeline: store the uploaded
// properties, compute metrics and warnings for each, and persist the
// resulting snapshots.
type AnalyzerService struct {
	db           *database.DB
	propertyRepo *database.PropertyRepository
	analysisRepo *database.AnalysisRepository
}

// NewAnalyzerService creates a new analyzer service.
func NewAnalyzerService(db *database.DB) *AnalyzerService {
	return &AnalyzerService{
		db:           db,
		propertyRepo: database.NewPropertyRepository(db),
		analysisRepo: database.NewAnalysisRepository(db),
	}
}

// ProcessBatch runs the analysis pipeline for a batch of uploaded properties.
func (s *AnalyzerService) ProcessBatch(ctx context.Context, batchID string, properties []*models.PropertyCreate) (*models.BatchAnalysisResult, error) {
	startTime := time.Now()
	result := &models.BatchAnalysisResult{
		BatchID:   batchID,
		TotalRows: len(properties),
	}

	utils.Logger.Info("Starting analysis pipeline",
		zap.String("batch_id", batchID),
		zap.Int("properties", len(properties)),
	)

	// Stage 1: store the properties
	insertResult, err := s.propertyRepo.BulkInsert(ctx, properties)
	if err != nil {
		return nil, fmt.Errorf("failed to store properties: %w", err)
	}
	result.ValidRows = insertResult.InsertedCount
	result.Errors = append(result.Errors, insertResult.Errors...)

	utils.Logger.Info("Stage 1 complete: properties stored",
		zap.Int("inserted", insertResult.InsertedCount),
		zap.Int("failed", insertResult.FailedCount),
	)

	// Stage 2: analyze each stored property
	stored, err := s.propertyRepo.GetByBatchID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch properties: %w", err)
	}

	snapshots := make([]*models.AnalysisSnapshot, 0, len(stored))
	for _, property := range stored {
		snapshots = append(snapshots, s.analyzeProperty(property, batchID))
	}
	result.Analyzed = len(snapshots)

	flagged := 0
	for _, snapshot := range snapshots {
		if isFlagged(snapshot) {
			flagged++
		}
	}
	result.Flagged = flagged

	utils.Logger.Info("Stage 2 complete: properties analyzed",
		zap.Int("analyzed", result.Analyzed),
		zap.Int("flagged", flagged),
	)

	// Stage 3: persist the snapshots
	for _, snapshot := range snapshots {
		if _, err := s.analysisRepo.Insert(ctx, snapshot); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("property %s: %v", snapshot.PropertyID, err))
			continue
		}
		result.Stored++
	}

	result.ProcessingTime = time.Since(startTime)

	utils.Logger.Info("Analysis pipeline complete",
		zap.String("batch_id", batchID),
		zap.Int("stored", result.Stored),
		zap.Duration("processing_time", result.ProcessingTime),
	)

	return result, nil
}

// AnalyzeProperty computes and persists a snapshot for a single stored
// property.
func (s *AnalyzerService) AnalyzeProperty(ctx context.Context, propertyID string) (*models.AnalysisSnapshot, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	if property == nil {
		return nil, fmt.Errorf("property %s not found", propertyID)
	}

	snapshot := s.analyzeProperty(property, "")
	if _, err := s.analysisRepo.Insert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	return snapshot, nil
}

func (s *AnalyzerService) analyzeProperty(property *models.PropertyInput, batchID string) *models.AnalysisSnapshot {
	result := analysis.Calculate(*property)
	warnings := analysis.Warnings(*property, result)
	score := analysis.ScoreDeal(*property, result)

	return &models.AnalysisSnapshot{
		PropertyID: property.ID,
		BatchID:    batchID,
		Result:     result,
		DealScore:  score.Score,
		DealGrade:  score.Grade,
		Warnings:   warnings,
	}
}

func isFlagged(snapshot *models.AnalysisSnapshot) bool {
	if snapshot.DealScore < flagScoreThreshold {
		return true
	}
	for _, w := range snapshot.Warnings {
		if w.Severity == models.SeverityCritical {
			return true
		}
	}
	return false
}
