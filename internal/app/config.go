package app

import (
	"time"

	"github.com/guidedtopic/guidedtopic-backend/internal/platform/envutil"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
)

type Config struct {
	ServiceName    string
	Environment    string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	StrictTargets  bool
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	strictTargets := envutil.GetEnvAsBool("BRANCHING_STRICT_TARGETS", false, log)
	environment := envutil.GetEnv("APP_ENV", "development", log)
	return Config{
		ServiceName:    "guidedtopic-backend",
		Environment:    environment,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		StrictTargets:  strictTargets,
	}
}
