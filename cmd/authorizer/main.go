package main

import (
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/yysangh2-design/APP-QTEX/internal/api/authorizer"
	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
)

// main is the entry point for the Lambda function
func main() {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-northeast-2"
	}
	userPoolID := os.Getenv("USER_POOL_ID")
	if userPoolID == "" {
		log.Fatal("USER_POOL_ID not set")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	a := authorizer.New(
		authorizer.NewRemoteKeys(utils.BuildJWKSURL(userPoolID, region), time.Hour),
		utils.GetTokenIssuer(userPoolID, region),
		os.Getenv("COGNITO_CLIENT_ID"),
		logger,
	)
	lambda.Start(a.Handle)
}
