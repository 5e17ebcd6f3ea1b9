package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MockAddr    string
	MockSeed    int64

	TravelportURL    string
	TravelportBranch string
	TravelportUser   string
	TravelportPass   string

	RedisAddr string
	RedisPass string
	RedisDB   int

	ResultTTL time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MockAddr:    env("MOCK_ADDR", ":5000"),
		MockSeed:    int64(atoi("MOCK_SEED", 0)),

		TravelportURL:    env("TRAVELPORT_API_URL", "http://localhost:5000/11/air/catalog/search/catalogproductofferings"),
		TravelportBranch: env("TRAVELPORT_BRANCH_ID", ""),
		TravelportUser:   env("TRAVELPORT_USERNAME", ""),
		TravelportPass:   env("TRAVELPORT_PASSWORD", ""),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		ResultTTL: time.Duration(atoi("RESULT_TTL_SECONDS", 1800)) * time.Second,
	}

	configured := 0
	for _, v := range []string{c.TravelportBranch, c.TravelportUser, c.TravelportPass} {
		if v != "" {
			configured++
		}
	}
	if configured > 0 && configured < 3 {
		log.Warn().Msg("partial Travelport credentials; basic auth needs branch, username and password all set")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
