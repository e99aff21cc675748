package constants

// Keys read through viper. Each key is also the environment variable name.
const (
	ViperDatabaseURL      = "DATABASE_URL"
	ViperPort             = "PORT"
	ViperLogLevel         = "LOG_LEVEL"
	ViperLogFormat        = "LOG_FORMAT"
	ViperCORSAllowOrigins = "CORS_ALLOW_ORIGINS"
	ViperDebugErrors      = "DEBUG_ERRORS"
	ViperDBMaxConns       = "DB_MAX_CONNS"
	ViperDBConnectTimeout = "DB_CONNECT_TIMEOUT"
)

const (
	CtxKeyRequestID = "request_id"
	HeaderRequestID = "X-Request-Id"
)
