package http

import (
	"log/slog"
	"net/http"

	"keepup/internal/adapters/http/middleware"
	"keepup/internal/config"
)

type RouterDeps struct {
	Auth    *AuthHandler
	Vehicle *VehicleHandler
}

func NewRouter(cfg *config.Config, log *slog.Logger, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.RequestLogger(log))
	globalMw.Use(middleware.CORS(cfg))

	authMw := middleware.New()
	authMw.Use(middleware.JWT(cfg))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	mux.Handle("POST /vehicles", authMw.Then(http.HandlerFunc(deps.Vehicle.Store)))
	mux.Handle("GET /vehicles", authMw.Then(http.HandlerFunc(deps.Vehicle.Index)))
	mux.Handle("GET /vehicles/count", authMw.Then(http.HandlerFunc(deps.Vehicle.Count)))
	mux.Handle("GET /vehicles/exists/{plate}", authMw.Then(http.HandlerFunc(deps.Vehicle.Exists)))
	mux.Handle("GET /vehicles/license-plate/{plate}", authMw.Then(http.HandlerFunc(deps.Vehicle.ShowByPlate)))
	mux.Handle("GET /vehicles/{id}", authMw.Then(http.HandlerFunc(deps.Vehicle.Show)))
	mux.Handle("PUT /vehicles/{id}", authMw.Then(http.HandlerFunc(deps.Vehicle.Update)))
	mux.Handle("DELETE /vehicles/{id}", authMw.Then(http.HandlerFunc(deps.Vehicle.Destroy)))

	return globalMw.Apply(mux)
}
