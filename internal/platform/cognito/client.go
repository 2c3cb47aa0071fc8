// Package cognito reads and updates the owner profile kept as Cognito user
// attributes.
package cognito

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// NewClient creates a new AWS Cognito client
func NewClient(ctx context.Context, region string) (*cognitoidentityprovider.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return cognitoidentityprovider.NewFromConfig(awsCfg), nil
}
