package api

import (
	"net/http"

	_ "github.com/envmon/console/docs"

	"github.com/envmon/console/api/middleware"
	"github.com/envmon/console/api/resources"
	"github.com/envmon/console/internal/config"
	"github.com/envmon/console/internal/service"
	"github.com/gorilla/mux"
)

type Router struct {
	router    *mux.Router
	sessions  *middleware.SessionMiddleware
	resources *resources.Resources
}

func NewRouter(svc *service.Service, cfg *config.Config) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		sessions:  middleware.NewSessionMiddleware(cfg.Session),
		resources: resources.NewResources(svc, cfg),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.router.Use(r.sessions.Attach)

	// Pages
	r.router.HandleFunc("/", r.resources.Pages.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/insert", r.resources.Pages.Insert).Methods(http.MethodGet)
	r.router.HandleFunc("/audio", r.resources.Audio.List).Methods(http.MethodGet)
	r.router.HandleFunc("/audio/details", r.resources.Audio.Details).Methods(http.MethodGet)
	r.router.HandleFunc("/query", r.resources.Query.Query).Methods(http.MethodGet)

	// Console API
	api := r.router.PathPrefix("/console/v1").Subrouter()
	api.HandleFunc("/upload/{kind}", r.resources.Uploads.Upload).Methods(http.MethodPost)
	api.HandleFunc("/delete", r.resources.Delete.Delete).Methods(http.MethodPost)
	api.HandleFunc("/health", r.resources.System.Health).Methods(http.MethodGet)
	api.HandleFunc("/metrics", r.resources.System.Metrics).Methods(http.MethodGet)
	api.HandleFunc("/swagger.json", r.resources.System.Swagger).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
