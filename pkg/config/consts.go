package config

const (
	EnvPrefix = "creatorlift"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv   = "CREATORLIFT_APP_ENV"
	EnvPort     = "CREATORLIFT_APP_PORT"
	EnvDBDSN    = "CREATORLIFT_DB_DSN"
	EnvDBHost   = "CREATORLIFT_DB_HOST"
	EnvDBUser   = "CREATORLIFT_DB_USER"
	EnvDBName   = "CREATORLIFT_DB_NAME"
	EnvRedisURL = "CREATORLIFT_REDIS_URL"

	EnvYouTubeAPIKey = "CREATORLIFT_YOUTUBE_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
