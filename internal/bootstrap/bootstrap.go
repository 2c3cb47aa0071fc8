// Package bootstrap wires configuration to the storage, model and identity
// backends shared by every entry point.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/common/config"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/evidence"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/bolt"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/cognito"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/dynamodb"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/gcs"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/gemini"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/secrets"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/sqlite"
)

// Runtime holds everything an entry point serves from
type Runtime struct {
	Config   *config.Config
	Books    *app.Books
	Evidence *evidence.Service
	Profiles *cognito.ProfileService
	// Lister enumerates stored books; nil for backends that cannot.
	Lister func() ([]string, error)

	closers []func() error
}

// Close releases every backend in reverse order of opening.
func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// Open builds the runtime described by cfg. The advisor, evidence storage
// and profile service are optional and left nil when not configured.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg}

	factory, err := rt.openStore(ctx, logger)
	if err != nil {
		return nil, err
	}

	resolver := transaction.DefaultResolver()
	if cfg.AccountAliasesFile != "" {
		if resolver, err = transaction.LoadResolver(cfg.AccountAliasesFile); err != nil {
			rt.Close()
			return nil, err
		}
	}

	adv, err := NewAdvisor(ctx, cfg, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}
	if adv == nil {
		logger.Warn("No Gemini key configured; AI features are disabled")
	}
	rt.Books = app.NewBooks(factory, resolver, adv, logger)

	if cfg.EvidenceBucket != "" {
		storage, err := gcs.NewStorage(ctx, cfg.EvidenceBucket)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, storage.Close)
		rt.Evidence = evidence.NewService(storage)
	}

	if cfg.UserPoolID != "" {
		client, err := cognito.NewClient(ctx, cfg.AWSRegion)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.Profiles = cognito.NewProfileService(client)
	}
	return rt, nil
}

func (rt *Runtime) openStore(ctx context.Context, logger *slog.Logger) (store.Factory, error) {
	cfg := rt.Config
	logger.Info("Opening store", "driver", cfg.StoreDriver, "path", cfg.StorePath, "table", cfg.DynamoDBTableName)

	switch cfg.StoreDriver {
	case config.DriverDynamoDB:
		client, err := dynamodb.NewAPI(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return dynamodb.NewFactory(client, cfg.DynamoDBTableName, logger), nil
	case config.DriverBolt:
		db, err := bolt.Open(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, db.Close)
		rt.Lister = db.Books
		return db.Factory(), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, db.Close)
		rt.Lister = db.Books
		return db.Factory(), nil
	case config.DriverMemory:
		return store.NewMemoryFactory().ForBook, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// NewAdvisor creates the Gemini-backed advisor. The key is read from
// GEMINI_API_KEY, or from Secrets Manager when only a secret ID is set.
// It returns nil when neither is configured.
func NewAdvisor(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*advisor.Service, error) {
	if !cfg.HasAdvisor() {
		return nil, nil
	}

	key := cfg.GeminiAPIKey
	if key == "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		cache, err := secrets.NewCache(secretsmanager.NewFromConfig(awsCfg))
		if err != nil {
			return nil, err
		}
		if key, err = secrets.APIKey(ctx, cache, cfg.GeminiAPIKeySecret); err != nil {
			return nil, err
		}
	}

	client, err := gemini.NewClient(ctx, key)
	if err != nil {
		return nil, err
	}
	return advisor.NewService(gemini.NewAdvisor(client.Models, cfg.GeminiModel, logger), logger), nil
}
