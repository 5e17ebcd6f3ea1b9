package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "travelfares/internal/adapters/http_server"
	"travelfares/internal/adapters/observability"
	redisad "travelfares/internal/adapters/redis"
	"travelfares/internal/adapters/travelport"
	"travelfares/internal/app"
	"travelfares/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	store := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.ResultTTL)
	client := travelport.New(cfg.TravelportURL, cfg.TravelportBranch, cfg.TravelportUser, cfg.TravelportPass)
	svc := app.NewSearchService(client, store)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("upstream", cfg.TravelportURL).
		Msg("fares API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
