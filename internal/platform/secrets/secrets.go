// Package secrets resolves API keys kept in AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
)

// Source returns the current string value of a secret
type Source interface {
	GetSecretStringWithContext(ctx context.Context, secretID string) (string, error)
}

// NewCache creates a secret cache over client
func NewCache(client *secretsmanager.Client) (*secretcache.Cache, error) {
	cache, err := secretcache.New(func(c *secretcache.Cache) {
		c.Client = client
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secret cache: %w", err)
	}
	return cache, nil
}

// DirectSource reads secrets without caching
type DirectSource struct {
	Client *secretsmanager.Client
}

func (d DirectSource) GetSecretStringWithContext(ctx context.Context, secretID string) (string, error) {
	result, err := d.Client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(secretID)})
	if err != nil {
		return "", err
	}
	return aws.ToString(result.SecretString), nil
}

// APIKey reads secretID and returns the key it holds. The secret is either
// the bare key or a JSON object with an "apiKey" field.
func APIKey(ctx context.Context, src Source, secretID string) (string, error) {
	value, err := src.GetSecretStringWithContext(ctx, secretID)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", secretID, err)
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "{") {
		var doc struct {
			APIKey string `json:"apiKey"`
		}
		if err := json.Unmarshal([]byte(value), &doc); err != nil {
			return "", fmt.Errorf("secret %s is not valid JSON: %w", secretID, err)
		}
		value = doc.APIKey
	}
	if value == "" {
		return "", fmt.Errorf("secret %s holds no API key", secretID)
	}
	return value, nil
}
