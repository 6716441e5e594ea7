package constants

const (
	ViperHTTPAddr        = "http.addr"
	ViperHTTPCORSOrigins = "http.cors_origins"

	ViperLogLevel    = "log.level"
	ViperLogEncoding = "log.encoding"

	ViperStoreDriver         = "store.driver"
	ViperStoreDSN            = "store.dsn"
	ViperStoreFixturePath    = "store.fixture_path"
	ViperStoreConnectRetries = "store.connect_retries"

	ViperDashboardSource      = "dashboard.source"
	ViperDashboardDefaultYear = "dashboard.default_year"

	ViperCacheRedisAddr = "cache.redis_addr"
	ViperCacheTTL       = "cache.ttl"

	ViperMetricsAliases = "metrics.aliases"
	ViperMetricsUnits   = "metrics.units"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	HeaderRequestID = "X-Request-ID"

	// DefaultYear is the projection horizon shown when no year is chosen.
	DefaultYear = 2030
)
