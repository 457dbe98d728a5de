package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	MongoURI          string        `envconfig:"DB_URI" default:"mongodb://127.0.0.1:27017"`
	DatabaseName      string        `envconfig:"DB_NAME" default:"batePapo"`
	BaseURL           string        `envconfig:"BASE_URL" default:"http://localhost:5000"`
	Port              string        `envconfig:"PORT" default:"5000"`
	Environment       string        `envconfig:"ENVIRONMENT" default:"local"`
	PresenceThreshold time.Duration `envconfig:"PRESENCE_THRESHOLD" default:"10s"`
	SweepInterval     time.Duration `envconfig:"SWEEP_INTERVAL" default:"15s"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}

// New sets up all config related services
func New() *Config {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	logger, err := setLogger(os.Getenv("ENVIRONMENT"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		zap.S().With(err).Error("failed to process environment config")
	}
	return c
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
