// Package handlers provides HTTP handlers for the rental analysis engine.
package handlers

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "rental-analysis-engine/internal/config"
	"rental-analysis-engine/internal/services/database"
	"rental-analysis-engine/internal/services/pipeline"
	"rental-analysis-engine/internal/utils"
)

// CSVProcessorHandler handles S3 events for CSV processing.
type CSVProcessorHandler struct {
	s3Client *s3.Client
	db       *database.DB
	analyzer *pipeline.AnalyzerService
}

// NewCSVProcessorHandler creates a new CSV processor handler.
func NewCSVProcessorHandler() (*CSVProcessorHandler, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	cfg, err := appConfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load app config: %w", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &CSVProcessorHandler{
		s3Client: s3.NewFromConfig(awsCfg),
		db:       db,
		analyzer: pipeline.NewAnalyzerService(db),
	}, nil
}

// CSVProcessResult is the result of processing a CSV file.
type CSVProcessResult struct {
	Message  string   `json:"message"`
	BatchID  string   `json:"batch_id"`
	Inserted int      `json:"inserted"`
	Analyzed int      `json:"analyzed"`
	Flagged  int      `json:"flagged"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Handle processes S3 events for uploaded CSV files: parse the rows, store
// the properties, and run the analysis pipeline over the batch.
func (h *CSVProcessorHandler) Handle(ctx context.Context, s3Event events.S3Event) (CSVProcessResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return CSVProcessResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	bucket := record.S3.Bucket.Name
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return CSVProcessResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}

	logger.Info("Processing CSV file",
		utils.String("bucket", bucket),
		utils.String("key", key))

	// Download CSV from S3
	csvContent, err := h.downloadCSV(ctx, bucket, key)
	if err != nil {
		logger.Error("Failed to download CSV", utils.Error(err))
		return CSVProcessResult{}, fmt.Errorf("failed to download CSV: %w", err)
	}

	// Generate batch ID
	batchID := generateBatchID(key)

	// Parse CSV
	parser := utils.NewCSVParser()
	properties, parseErrors := parser.ParseProperties(csvContent, batchID)

	if len(properties) == 0 {
		errMsgs := make([]string, len(parseErrors))
		for i, e := range parseErrors {
			errMsgs[i] = e.Error()
		}
		return CSVProcessResult{
			Message: "No valid properties found in CSV",
			BatchID: batchID,
			Errors:  errMsgs,
		}, nil
	}

	logger.Info("Parsed CSV",
		utils.String("batchID", batchID),
		utils.Int("validProperties", len(properties)),
		utils.Int("parseErrors", len(parseErrors)))

	// Store and analyze the batch
	result, err := h.analyzer.ProcessBatch(ctx, batchID, properties)
	if err != nil {
		logger.Error("Failed to process batch", utils.Error(err))
		return CSVProcessResult{}, fmt.Errorf("failed to process batch: %w", err)
	}

	// Archive processed file
	if err := h.archiveFile(ctx, bucket, key); err != nil {
		logger.Warn("Failed to archive file", utils.Error(err))
	}

	// Combine parse errors with pipeline errors
	allErrors := make([]string, 0)
	for _, e := range parseErrors {
		allErrors = append(allErrors, e.Error())
	}
	allErrors = append(allErrors, result.Errors...)

	// Limit errors in response
	if len(allErrors) > 10 {
		allErrors = allErrors[:10]
	}

	return CSVProcessResult{
		Message:  "CSV processed successfully",
		BatchID:  batchID,
		Inserted: result.ValidRows,
		Analyzed: result.Analyzed,
		Flagged:  result.Flagged,
		Failed:   len(properties) - result.ValidRows + len(parseErrors),
		Errors:   allErrors,
	}, nil
}

// downloadCSV downloads CSV content from S3.
func (h *CSVProcessorHandler) downloadCSV(ctx context.Context, bucket, key string) (string, error) {
	output, err := h.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", err
	}
	defer output.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, output.Body); err != nil {
		return "", err
	}

	content := buf.String()
	if content == "" {
		return "", fmt.Errorf("CSV file is empty")
	}

	return content, nil
}

// generateBatchID generates a unique batch ID for this upload.
func generateBatchID(key string) string {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	hash := sha256.Sum256([]byte(key + timestamp))
	return hex.EncodeToString(hash[:])[:16]
}

// archiveFile moves the processed file to an archive folder.
func (h *CSVProcessorHandler) archiveFile(ctx context.Context, bucket, key string) error {
	archiveKey := "processed/" + key
	copySource := bucket + "/" + key

	// Copy to archive
	_, err := h.s3Client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     &bucket,
		CopySource: &copySource,
		Key:        &archiveKey,
	})
	if err != nil {
		return fmt.Errorf("failed to copy to archive: %w", err)
	}

	// Delete original
	_, err = h.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete original: %w", err)
	}

	return nil
}

// Close cleans up resources.
func (h *CSVProcessorHandler) Close() {
	if h.db != nil {
		h.db.Close()
	}
}

// HandleWithConfig processes S3 events with a custom database URL (for testing).
func HandleWithConfig(ctx context.Context, s3Event events.S3Event, dbURL string) (CSVProcessResult, error) {
	db, err := database.NewFromURL(dbURL)
	if err != nil {
		return CSVProcessResult{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return CSVProcessResult{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	handler := &CSVProcessorHandler{
		s3Client: s3.NewFromConfig(awsCfg),
		db:       db,
		analyzer: pipeline.NewAnalyzerService(db),
	}

	return handler.Handle(ctx, s3Event)
}

// GetBucketFromEnv returns the S3 bucket name from environment.
func GetBucketFromEnv() string {
	return os.Getenv("S3_BUCKET")
}
