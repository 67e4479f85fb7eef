// Package main provides a local HTTP server for development and testing.
// It exposes the analysis engine endpoints used by the frontend along with
// CSV upload and batch processing.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"rental-analysis-engine/internal/config"
	"rental-analysis-engine/internal/models"
	"rental-analysis-engine/internal/services/analysis"
	"rental-analysis-engine/internal/services/database"
	"rental-analysis-engine/internal/services/pipeline"
	"rental-analysis-engine/internal/utils"

	"github.com/rs/cors"
)

// Server holds all dependencies
type Server struct {
	db           *database.DB
	propertyRepo *database.PropertyRepository
	analysisRepo *database.AnalysisRepository
	analyzer     *pipeline.AnalyzerService
	config       *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// AnalysisResponse bundles everything computed for one property.
type AnalysisResponse struct {
	Result   models.CalculationResult `json:"result"`
	Score    analysis.DealScore       `json:"score"`
	Warnings []models.DealWarning     `json:"warnings"`
}

// UploadResponse contains CSV upload processing results
type UploadResponse struct {
	BatchID         string `json:"batch_id"`
	TotalRows       int    `json:"total_rows"`
	ValidProperties int    `json:"valid_properties"`
	Analyzed        int    `json:"analyzed"`
	Flagged         int    `json:"flagged"`
	Errors          int    `json:"errors"`
	ProcessingMs    int64  `json:"processing_ms"`
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Logger.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{}
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run in demo mode without persistence")
	}

	server := &Server{
		db:     db,
		config: cfg,
	}

	if db != nil {
		server.propertyRepo = database.NewPropertyRepository(db)
		server.analysisRepo = database.NewAnalysisRepository(db)
		server.analyzer = pipeline.NewAnalyzerService(db)
	}

	// Setup routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	// Analysis endpoints (stateless, work without a database)
	mux.HandleFunc("/api/analyze", server.analyzeHandler)
	mux.HandleFunc("/api/projection", server.projectionHandler)
	mux.HandleFunc("/api/schedule", server.scheduleHandler)
	mux.HandleFunc("/api/offer", server.offerHandler)
	mux.HandleFunc("/api/brrrr", server.brrrrHandler)
	mux.HandleFunc("/api/refinance", server.refinanceHandler)
	mux.HandleFunc("/api/rent-estimate", server.rentEstimateHandler)
	mux.HandleFunc("/api/tax-benefits", server.taxBenefitsHandler)
	mux.HandleFunc("/api/closing-costs", server.closingCostsHandler)

	// Property persistence endpoints
	mux.HandleFunc("/api/properties", server.propertiesHandler)
	mux.HandleFunc("/api/properties/", server.propertyHandler)

	// Direct CSV upload endpoint (for local testing)
	mux.HandleFunc("/api/upload", server.uploadHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	port := getEnvOrDefault("PORT", "8080")
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log.Printf("Rental Analysis Engine API Server")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("Health: http://localhost:%s/health", port)
	log.Println("")

	// Start server (this blocks until error)
	log.Printf("Starting HTTP server on %s...", addr)
	serverErr := http.ListenAndServe(addr, handler)
	if serverErr != nil {
		log.Fatalf("Server failed: %v", serverErr)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	response := Response{
		Success: true,
		Message: "Rental Analysis Engine API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		},
	}

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var input models.PropertyInput
	if !decodePost(w, r, &input) {
		return
	}

	result := analysis.Calculate(input)

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: AnalysisResponse{
			Result:   result,
			Score:    analysis.ScoreDeal(input, result),
			Warnings: analysis.Warnings(input, result),
		},
	})
}

func (s *Server) projectionHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Property          models.PropertyInput `json:"property"`
		RentGrowthPercent *float64             `json:"rent_growth_percent,omitempty"`
	}
	if !decodePost(w, r, &req) {
		return
	}

	payment := analysis.MonthlyPayment(req.Property.LoanAmount(), req.Property.InterestRate, req.Property.LoanTermYears)

	var projection models.ProjectionResult
	if req.RentGrowthPercent != nil {
		projection = analysis.ProjectWithRentGrowth(req.Property, payment, *req.RentGrowthPercent)
	} else {
		projection = analysis.Project(req.Property, payment)
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: projection})
}

func (s *Server) scheduleHandler(w http.ResponseWriter, r *http.Request) {
	var input models.PropertyInput
	if !decodePost(w, r, &input) {
		return
	}

	schedule := analysis.GenerateSchedule(input)
	if schedule == nil {
		schedule = []models.AmortizationEntry{}
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: schedule})
}

func (s *Server) offerHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Assumptions analysis.OfferAssumptions `json:"assumptions"`
		Target      analysis.OfferTarget      `json:"target"`
	}
	if !decodePost(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    analysis.SuggestOffer(req.Assumptions, req.Target),
	})
}

func (s *Server) brrrrHandler(w http.ResponseWriter, r *http.Request) {
	var input analysis.BRRRRInput
	if !decodePost(w, r, &input) {
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: analysis.AnalyzeBRRRR(input)})
}

func (s *Server) refinanceHandler(w http.ResponseWriter, r *http.Request) {
	var input analysis.RefinanceInput
	if !decodePost(w, r, &input) {
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: analysis.AnalyzeRefinance(input)})
}

func (s *Server) rentEstimateHandler(w http.ResponseWriter, r *http.Request) {
	var input models.PropertyInput
	if !decodePost(w, r, &input) {
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: analysis.EstimateRent(input)})
}

func (s *Server) taxBenefitsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Property            models.PropertyInput `json:"property"`
		MarginalRatePercent float64              `json:"marginal_rate_percent"`
		LandValuePercent    float64              `json:"land_value_percent"`
	}
	if !decodePost(w, r, &req) {
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    analysis.EstimateTaxBenefits(req.Property, req.MarginalRatePercent, req.LandValuePercent),
	})
}

func (s *Server) closingCostsHandler(w http.ResponseWriter, r *http.Request) {
	var input models.PropertyInput
	if !decodePost(w, r, &input) {
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: analysis.EstimateClosingCosts(input)})
}

func (s *Server) propertiesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listProperties(w, r)
	case http.MethodPost:
		s.createProperty(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listProperties(w http.ResponseWriter, r *http.Request) {
	if s.propertyRepo == nil {
		writeJSON(w, http.StatusOK, Response{Success: true, Data: []models.PropertySummary{}})
		return
	}

	properties, err := s.propertyRepo.GetAllActive(r.Context())
	if err != nil {
		log.Printf("Error fetching properties: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch properties",
		})
		return
	}

	summaries := make([]models.PropertySummary, 0, len(properties))
	for _, p := range properties {
		summaries = append(summaries, p.ToSummary())
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: summaries})
}

func (s *Server) createProperty(w http.ResponseWriter, r *http.Request) {
	var create models.PropertyCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	if err := models.ValidatePropertyCreate(&create); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	// Without a database, analyze the payload and return the result directly
	if s.propertyRepo == nil {
		input := create.ToInput("demo")
		result := analysis.Calculate(input)
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Property analyzed (demo mode, not persisted)",
			Data: AnalysisResponse{
				Result:   result,
				Score:    analysis.ScoreDeal(input, result),
				Warnings: analysis.Warnings(input, result),
			},
		})
		return
	}

	id, err := s.propertyRepo.Create(r.Context(), &create)
	if err != nil {
		log.Printf("Error creating property: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to create property"})
		return
	}

	snapshot, err := s.analyzer.AnalyzeProperty(r.Context(), id)
	if err != nil {
		log.Printf("Error analyzing property %s: %v", id, err)
		writeJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Property created; analysis failed",
			Data:    map[string]interface{}{"id": id},
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: snapshot})
}

// propertyHandler serves /api/properties/{id} and its subresources.
func (s *Server) propertyHandler(w http.ResponseWriter, r *http.Request) {
	if s.propertyRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Database not available"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/properties/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch {
	case r.Method == http.MethodGet && sub == "":
		s.getProperty(w, r, id)
	case r.Method == http.MethodGet && sub == "history":
		s.propertyHistory(w, r, id)
	case r.Method == http.MethodPost && sub == "analyze":
		s.reanalyzeProperty(w, r, id)
	case r.Method == http.MethodDelete && sub == "":
		s.deleteProperty(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getProperty(w http.ResponseWriter, r *http.Request, id string) {
	property, err := s.propertyRepo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch property"})
		return
	}
	if property == nil {
		writeJSON(w, http.StatusNotFound, Response{Success: false, Error: "Property not found"})
		return
	}

	snapshot, err := s.analysisRepo.GetLatestByProperty(r.Context(), id)
	if err != nil {
		log.Printf("Error fetching latest snapshot for %s: %v", id, err)
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"property": property,
			"latest":   snapshot,
		},
	})
}

func (s *Server) propertyHistory(w http.ResponseWriter, r *http.Request, id string) {
	snapshots, err := s.analysisRepo.GetByProperty(r.Context(), id, 50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to fetch history"})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: snapshots})
}

func (s *Server) reanalyzeProperty(w http.ResponseWriter, r *http.Request, id string) {
	snapshot, err := s.analyzer.AnalyzeProperty(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: snapshot})
}

func (s *Server) deleteProperty(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.propertyRepo.Deactivate(r.Context(), id); err != nil {
		writeJSON(w, http.StatusNotFound, Response{Success: false, Error: "Property not found"})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Property deleted"})
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("CSV upload request received")

	// Handle multipart form upload
	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB max
		log.Printf("Failed to parse form: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Failed to parse form: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("No file in form: %v", err)
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No file provided",
		})
		return
	}
	defer file.Close()

	log.Printf("Processing file: %s (%.2f KB)", header.Filename, float64(header.Size)/1024)

	// Validate file type
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Only CSV files are allowed",
		})
		return
	}

	// Read file content
	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to read file",
		})
		return
	}

	// Process the CSV
	result, err := s.processCSVContent(r.Context(), content, header.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "CSV processed successfully",
		Data:    result,
	})
}

func (s *Server) processCSVContent(ctx context.Context, content []byte, filename string) (*UploadResponse, error) {
	startTime := time.Now()
	batchID := fmt.Sprintf("batch_%d", time.Now().Unix())

	log.Printf("Processing CSV: %s (BatchID: %s)", filename, batchID)

	// Parse CSV
	parser := utils.NewCSVParser()
	properties, parseErrors := parser.ParseProperties(string(content), batchID)

	log.Printf("Parsed: %d valid properties, %d errors", len(properties), len(parseErrors))

	if len(parseErrors) > 0 {
		log.Printf("Parse errors:")
		for i, err := range parseErrors {
			if i >= 5 { // Only log first 5 errors
				log.Printf("   ... and %d more errors", len(parseErrors)-5)
				break
			}
			log.Printf("   - %v", err)
		}
	}

	result := &UploadResponse{
		BatchID:         batchID,
		TotalRows:       len(properties) + len(parseErrors),
		ValidProperties: len(properties),
		Errors:          len(parseErrors),
	}

	// If no database connection, analyze in memory without persisting
	if s.db == nil || s.analyzer == nil {
		flagged := 0
		for _, create := range properties {
			input := create.ToInput("demo")
			calc := analysis.Calculate(input)
			for _, warning := range analysis.Warnings(input, calc) {
				if warning.Severity == models.SeverityCritical {
					flagged++
					break
				}
			}
		}
		result.Analyzed = len(properties)
		result.Flagged = flagged
		result.ProcessingMs = time.Since(startTime).Milliseconds()
		return result, nil
	}

	batchResult, err := s.analyzer.ProcessBatch(ctx, batchID, properties)
	if err != nil {
		return nil, err
	}

	result.Analyzed = batchResult.Analyzed
	result.Flagged = batchResult.Flagged
	result.ProcessingMs = time.Since(startTime).Milliseconds()
	return result, nil
}

// decodePost enforces POST and decodes the JSON body, writing the error
// response itself on failure.
func decodePost(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
