package config

import "time"

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSessionBackend = SessionBackendSQLite
	DefaultSQLitePath     = "data/hotelinfinity.db"
	DefaultSessionTimeout = 5 * time.Second

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotelinfinity"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultJWTSecret = "change-me-in-production"
	DefaultJWTTTL    = 12 * time.Hour

	DefaultAdminEmail    = "admin@hotelinfinity.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Admin User"

	DefaultCORSAllowedOrigins = "*"

	DefaultKafkaEnabled = false
	DefaultKafkaTopic   = "hotelinfinity.events"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
	SessionBackendMongo  = "mongo"
	SessionBackendRedis  = "redis"
)
