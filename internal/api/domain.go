package api

import (
	"github.com/JaimeStill/doc-archive/internal/archive"
	"github.com/JaimeStill/doc-archive/internal/attachments"
	"github.com/JaimeStill/doc-archive/internal/documents"
	"github.com/JaimeStill/doc-archive/internal/history"
	"github.com/JaimeStill/doc-archive/internal/images"
	"github.com/JaimeStill/doc-archive/internal/imports"
	"github.com/JaimeStill/doc-archive/internal/search"
	"github.com/JaimeStill/doc-archive/internal/sources"
	"github.com/JaimeStill/doc-archive/pkg/filename"
)

// Domain holds all domain systems that comprise the archive.
type Domain struct {
	Documents   documents.System
	Images      images.System
	Attachments attachments.System
	History     history.System
	Legacy      *attachments.LegacyImporter
	Search      *search.Matcher
	Imports     *imports.Reconciler
	Archive     *archive.Archive
	Sources     *sources.Registry

	// ImportDefaults are applied to import requests that leave options unset.
	ImportDefaults imports.Options
}

// NewDomain creates all domain systems from the runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	documentsSys := documents.New(db, runtime.Storage, runtime.Logger, runtime.Pagination)
	imagesSys := images.New(db, runtime.Storage, runtime.Logger)
	attachmentsSys := attachments.New(db, runtime.Logger)
	historySys := history.New(db, runtime.Logger)

	parser := filename.NewParser(runtime.Import.Departments)

	providers := make([]sources.Provider, 0, len(runtime.Import.Sources))
	for _, s := range runtime.Import.Sources {
		providers = append(providers, sources.NewDirectory(s.Name, s.Path))
	}

	return &Domain{
		Documents:   documentsSys,
		Images:      imagesSys,
		Attachments: attachmentsSys,
		History:     historySys,
		Legacy:      attachments.NewLegacyImporter(db, runtime.Logger),
		Search:      search.New(documentsSys, attachmentsSys, historySys, runtime.Logger),
		Imports:     imports.New(documentsSys, imagesSys, runtime.Storage, parser, runtime.Logger),
		Archive:     archive.New(documentsSys, imagesSys, attachmentsSys, runtime.Storage, runtime.Logger),
		Sources:     sources.NewRegistry(providers...),
		ImportDefaults: imports.Options{
			Year:                runtime.Import.Year,
			IncludeUnrecognized: runtime.Import.IncludeUnrecognized,
		},
	}
}
