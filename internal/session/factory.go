package session

import (
	"context"
	"fmt"

	"hotelinfinity/pkg/config"
)

// NewFromConfig builds the Store selected by cfg.SessionBackend, connecting
// the shared clients it needs.
func NewFromConfig(cfg *config.Config) (Store, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		cfg.Log.Warn("Using in-memory session store; sessions will not survive a restart")
		return NewMemoryStore(), nil
	case config.SessionBackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.SessionBackendMongo:
		cfg.SetMongo()
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
		defer cancel()
		if err := MigrateMongo(ctx, cfg.Client.Mongo.Database(cfg.MongoDatabaseName), cfg.Log); err != nil {
			return nil, err
		}
		return NewMongoStore(cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.ReadTimeout), nil
	case config.SessionBackendRedis:
		cfg.SetRedis()
		return NewRedisStore(cfg.Client.Redis), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
