package credstore

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-totp-verify/internal/config"
	"github.com/go-totp-verify/internal/domain"
	"github.com/go-totp-verify/internal/infrastructure/dynamo"
	"github.com/go-totp-verify/internal/infrastructure/postgres"
	"github.com/go-totp-verify/internal/infrastructure/supabase"
)

// Store is implemented by every credential store driver.
type Store interface {
	Lookup(ctx context.Context, userID string) (*domain.Credential, error)
}

// Open returns the driver selected by cfg.StoreDriver and a close func for
// its resources. When settings are missing or the driver cannot be built it
// logs the reason and returns Unavailable, so the process keeps serving and
// verification answers 500.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func()) {
	noop := func() {}

	if missing := cfg.MissingStoreSettings(); len(missing) > 0 {
		logger.Error("credential store not configured",
			"driver", cfg.StoreDriver, "missing", strings.Join(missing, ","))
		return Unavailable{Reason: "missing " + strings.Join(missing, ", ")}, noop
	}

	switch cfg.StoreDriver {
	case config.StoreDriverSupabase:
		logger.Info("credential store ready", "driver", cfg.StoreDriver, "table", cfg.CredentialTable)
		return supabase.NewCredentialRepo(supabase.NewHTTPClient(cfg), cfg), noop

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if pool == nil {
			logger.Error("credential store init failed", "driver", cfg.StoreDriver, "err", err)
			return Unavailable{Reason: "postgres pool unavailable"}, noop
		}
		if err != nil {
			logger.Warn("credential store not reachable yet", "driver", cfg.StoreDriver, "err", err)
		} else {
			logger.Info("credential store ready", "driver", cfg.StoreDriver, "table", cfg.CredentialTable)
		}
		return postgres.NewCredentialRepo(pool, cfg.CredentialTable, cfg.StoreTimeout), pool.Close

	case config.StoreDriverDynamo:
		client, err := dynamo.NewClient(ctx, cfg)
		if err != nil {
			logger.Error("credential store init failed", "driver", cfg.StoreDriver, "err", err)
			return Unavailable{Reason: "dynamodb client unavailable"}, noop
		}
		logger.Info("credential store ready", "driver", cfg.StoreDriver, "table", cfg.DynamoTable)
		return dynamo.NewCredentialRepo(client, cfg.DynamoTable, cfg.StoreTimeout), noop
	}

	// unreachable: MissingStoreSettings rejects unknown drivers
	return Unavailable{Reason: "unknown driver " + cfg.StoreDriver}, noop
}
