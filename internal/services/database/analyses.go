// Package database provides database operations for the rental analysis engine.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"rental-analysis-engine/internal/models"
)

// AnalysisRepository handles analysis snapshot database operations.
type AnalysisRepository struct {
	db *DB
}

// NewAnalysisRepository creates a new analysis repository.
func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Insert stores a computed analysis snapshot. The full result and warnings
// are persisted as JSONB; the score and grade are lifted into columns so
// batch queries can rank without unpacking the document.
func (r *AnalysisRepository) Insert(ctx context.Context, snapshot *models.AnalysisSnapshot) (int64, error) {
	resultJSON, err := json.Marshal(snapshot.Result)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal result: %w", err)
	}

	warningsJSON, err := json.Marshal(snapshot.Warnings)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal warnings: %w", err)
	}

	query := `
		INSERT INTO analysis_snapshots (
			property_id, batch_id, result, deal_score, deal_grade, warnings, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err = r.db.QueryRowContext(ctx, query,
		snapshot.PropertyID,
		snapshot.BatchID,
		resultJSON,
		snapshot.DealScore,
		snapshot.DealGrade,
		warningsJSON,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis snapshot: %w", err)
	}

	return id, nil
}

// GetLatestByProperty retrieves the most recent snapshot for a property.
// Returns nil when the property has never been analyzed.
func (r *AnalysisRepository) GetLatestByProperty(ctx context.Context, propertyID string) (*models.AnalysisSnapshot, error) {
	query := `
		SELECT id, property_id, batch_id, result, deal_score, deal_grade, warnings, created_at
		FROM analysis_snapshots
		WHERE property_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	snapshot, err := scanSnapshot(r.db.QueryRowContext(ctx, query, propertyID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis snapshot: %w", err)
	}

	return snapshot, nil
}

// GetByProperty retrieves the analysis history for a property, newest first.
func (r *AnalysisRepository) GetByProperty(ctx context.Context, propertyID string, limit int) ([]*models.AnalysisSnapshot, error) {
	query := `
		SELECT id, property_id, batch_id, result, deal_score, deal_grade, warnings, created_at
		FROM analysis_snapshots
		WHERE property_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, propertyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetByBatchID retrieves snapshots for a batch ranked by deal score.
func (r *AnalysisRepository) GetByBatchID(ctx context.Context, batchID string, limit int) ([]*models.AnalysisSnapshot, error) {
	query := `
		SELECT id, property_id, batch_id, result, deal_score, deal_grade, warnings, created_at
		FROM analysis_snapshots
		WHERE batch_id = $1
		ORDER BY deal_score DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, batchID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetBatchSummary returns summary statistics for a batch of analyses.
func (r *AnalysisRepository) GetBatchSummary(ctx context.Context, batchID string) (*models.BatchAnalysisSummary, error) {
	summary := &models.BatchAnalysisSummary{
		BatchID: batchID,
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) as total_analyses,
			COUNT(DISTINCT property_id) as properties_analyzed,
			COALESCE(AVG(deal_score), 0) as avg_deal_score,
			COALESCE(MAX(deal_score), 0) as best_deal_score,
			COUNT(CASE WHEN deal_grade IN ('A', 'B') THEN 1 END) as strong_deals
		FROM analysis_snapshots
		WHERE batch_id = $1`,
		batchID).Scan(
		&summary.TotalAnalyses,
		&summary.PropertiesAnalyzed,
		&summary.AvgDealScore,
		&summary.BestDealScore,
		&summary.StrongDeals,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch summary: %w", err)
	}

	return summary, nil
}

func scanSnapshot(row pgx.Row) (*models.AnalysisSnapshot, error) {
	var s models.AnalysisSnapshot
	var resultJSON, warningsJSON []byte
	var batchID *string

	err := row.Scan(&s.ID, &s.PropertyID, &batchID, &resultJSON, &s.DealScore, &s.DealGrade, &warningsJSON, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if batchID != nil {
		s.BatchID = *batchID
	}
	if err := json.Unmarshal(resultJSON, &s.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	if len(warningsJSON) > 0 {
		if err := json.Unmarshal(warningsJSON, &s.Warnings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal warnings: %w", err)
		}
	}

	return &s, nil
}

func scanSnapshots(rows pgx.Rows) ([]*models.AnalysisSnapshot, error) {
	var snapshots []*models.AnalysisSnapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}
