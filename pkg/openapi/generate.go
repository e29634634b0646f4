package openapi

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/JaimeStill/doc-archive/pkg/handlers"
	"github.com/JaimeStill/doc-archive/pkg/routes"
)

var pathParam = regexp.MustCompile(`\{([^}]+)\}`)

// Generate describes every route in groups beneath basePath. Operations take
// their tags from the group and their summary from the group description.
func Generate(cfg *Config, basePath string, groups ...routes.Group) *Spec {
	spec := &Spec{
		OpenAPI: Version,
		Info: &Info{
			Title:       cfg.Title,
			Version:     cfg.Version,
			Description: cfg.Description,
		},
		Paths: make(map[string]*PathItem),
	}

	seen := make(map[string]bool)
	var walk func(prefix string, g routes.Group)
	walk = func(prefix string, g routes.Group) {
		full := prefix + g.Prefix
		for _, name := range g.Tags {
			if !seen[name] {
				seen[name] = true
				spec.Tags = append(spec.Tags, &Tag{Name: name, Description: g.Description})
			}
		}
		for _, r := range g.Routes {
			spec.add(full+r.Pattern, r.Method, operation(g, full+r.Pattern, r.Method))
		}
		for _, child := range g.Children {
			walk(full, child)
		}
	}
	for _, g := range groups {
		walk(basePath, g)
	}

	return spec
}

// ServeSpec returns a handler that writes spec as JSON. The document is
// encoded once up front.
func ServeSpec(spec *Spec) (http.HandlerFunc, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, err
	}
	return func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondBytes(w, "application/json", data)
	}, nil
}

func (s *Spec) add(path, method string, op *Operation) {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

func operation(g routes.Group, path, method string) *Operation {
	op := &Operation{
		Summary:   g.Description,
		Tags:      g.Tags,
		Responses: map[int]*Response{},
	}

	for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
		op.Parameters = append(op.Parameters, PathParam(m[1]))
	}

	switch method {
	case http.MethodPost, http.MethodPut:
		op.RequestBody = RequestBodyJSON()
		op.Responses[http.StatusOK] = &Response{Description: "Success"}
		op.Responses[http.StatusBadRequest] = &Response{Description: "Invalid request"}
	case http.MethodDelete:
		op.Responses[http.StatusNoContent] = &Response{Description: "Deleted"}
	default:
		op.Responses[http.StatusOK] = &Response{Description: "Success"}
	}

	if len(op.Parameters) > 0 {
		op.Responses[http.StatusNotFound] = &Response{Description: "Not found"}
	}
	return op
}
