// Presigned URL Lambda entry point, fronts CSV uploads via API Gateway
package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"rental-analysis-engine/internal/handlers"
	"rental-analysis-engine/internal/utils"
)

func main() {
	// Initialize logger
	_ = utils.InitLogger("info")
	defer utils.Sync()

	// Create handler
	handler, err := handlers.NewPresignedURLHandler()
	if err != nil {
		panic("Failed to create handler: " + err.Error())
	}

	// Start Lambda
	lambda.Start(handler.Handle)
}
