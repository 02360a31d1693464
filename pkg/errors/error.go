package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// UnsupportedMarketError is returned when an instrument is not in the market registry.
	UnsupportedMarketError ErrorCode = "unsupported_market"
	// UnsupportedPeriodError is returned when a period identifier is not in the calendar.
	UnsupportedPeriodError ErrorCode = "unsupported_period"
	// DataSourceUnavailableError is returned when the row store cannot be reached or a query fails.
	DataSourceUnavailableError ErrorCode = "data_source_unavailable"
	// MalformedInputError is returned when ticks or events violate a component contract.
	MalformedInputError ErrorCode = "malformed_input"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// Category represents the category of an error.
type Category string

const (
	// CategoryDatabase indicates an error related to database operations.
	CategoryDatabase Category = "database"
	// CategoryValidation indicates an error related to validation of input data.
	CategoryValidation Category = "validation"
	// CategoryExternal indicates an error related to external services.
	CategoryExternal Category = "external"
)
