// Package api assembles the archive's domain systems into a single HTTP handler.
package api

import (
	"net/http"

	"github.com/JaimeStill/doc-archive/internal/config"
	"github.com/JaimeStill/doc-archive/internal/infrastructure"
	"github.com/JaimeStill/doc-archive/pkg/middleware"
	"github.com/JaimeStill/doc-archive/pkg/openapi"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

// Module is the mounted API: its handler and the domain behind it.
type Module struct {
	Handler http.Handler
	Domain  *Domain
}

// NewModule builds the domain systems and mounts their routes under BasePath,
// along with a generated OpenAPI document at BasePath/openapi.json.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)
	groups := Groups(runtime, domain)

	mux := http.NewServeMux()
	routes.Register(mux, BasePath, groups...)

	serveSpec, err := openapi.ServeSpec(openapi.Generate(&cfg.OpenAPI, BasePath, groups...))
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET "+BasePath+"/openapi.json", serveSpec)

	mw := middleware.New()
	mw.Use(middleware.TrimSlash())
	mw.Use(middleware.Logger(runtime.Logger))

	return &Module{
		Handler: mw.Apply(mux),
		Domain:  domain,
	}, nil
}
