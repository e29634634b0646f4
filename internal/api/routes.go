package api

import (
	"github.com/JaimeStill/doc-archive/internal/imports"
	"github.com/JaimeStill/doc-archive/internal/sources"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

// BasePath prefixes every archive route.
const BasePath = "/api"

// Groups returns the route groups of every domain handler.
func Groups(runtime *Runtime, domain *Domain) []routes.Group {
	importsHandler := imports.NewHandler(domain.Imports, runtime.Logger).
		WithSources(domain.Sources).
		WithDefaults(domain.ImportDefaults)

	return []routes.Group{
		domain.Documents.Handler().Routes(),
		domain.Archive.Handler().Routes(),
		domain.Images.Handler().Routes(),
		domain.Attachments.Handler().Routes(),
		domain.Search.Handler().Routes(),
		domain.History.Handler().Routes(),
		importsHandler.Routes(),
		sources.NewHandler(domain.Sources, runtime.Logger).Routes(),
	}
}
