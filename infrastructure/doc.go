// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory document store on go-cache
// - cache/redis: Redis document store
// - cache/sqlite: SQLite document store that survives restarts
// - logger/logrus: Structured logger on logrus
//
// Every store reports a missing or expired key as *errors.NotFoundError and
// treats a TTL of 0 as no expiry.
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "document:1", data, 1*time.Hour)
//	value, err := cache.Get(ctx, "document:1")
//
// SQLite Cache Example:
//
//	cache, err := sqlite.NewSQLiteCacheWithLogger("syndicate.db", logger)
//	defer cache.Close()
//
// # Logger
//
//	logger, err := logrus.NewFromConfig(config.LogConfig{Level: "info", Format: "json"}, os.Stderr)
//	logger.Info("Stored document", map[string]interface{}{
//	    "id": id,
//	})
package infrastructure
