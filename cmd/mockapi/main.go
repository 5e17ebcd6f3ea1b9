package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "travelfares/internal/adapters/http_server"
	"travelfares/internal/adapters/mockapi"
	"travelfares/internal/adapters/observability"
	"travelfares/internal/shared"
)

func main() {
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	h := mockapi.NewHandlers(mockapi.NewResponder(cfg.MockSeed))

	srv := server.New()
	h.Register(srv.Router())

	log.Info().
		Str("addr", cfg.MockAddr).
		Str("search", mockapi.SearchPath).
		Msg("mock catalog server listening")
	httpSrv := &http.Server{Addr: cfg.MockAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("mock server failed")
	}
}
