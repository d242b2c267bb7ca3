// Package aliasapi exposes alias resolution over HTTP so embedding hosts can
// canonicalize option keys without linking the aliases package.
package aliasapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/keys-i/tinyserve/internal/aliases"
)

const (
	title   = "tinyserve aliases"
	version = "1.0.0"
)

// ListOutput is the response of GET /aliases.
type ListOutput struct {
	Body struct {
		Source  string              `json:"source" doc:"Where the alias data was loaded from"`
		Aliases map[string][]string `json:"aliases" doc:"Canonical key to declared aliases"`
	}
}

// ResolveInput is the request of GET /aliases/{key}.
type ResolveInput struct {
	Key string `path:"key" doc:"Any spelling of an option key"`
}

// ResolveOutput is the response of GET /aliases/{key}.
type ResolveOutput struct {
	Body struct {
		Key       string `json:"key" doc:"The spelling that was looked up"`
		Canonical string `json:"canonical" doc:"The canonical option key"`
	}
}

// ConflictsOutput is the response of GET /conflicts.
type ConflictsOutput struct {
	Body struct {
		Conflicts []aliases.Conflict `json:"conflicts"`
	}
}

// Register adds the alias operations to api.
func Register(api huma.API, table *aliases.Table) {
	huma.Register(api, huma.Operation{
		OperationID: "list-aliases",
		Method:      http.MethodGet,
		Path:        "/aliases",
		Summary:     "List canonical keys and their aliases",
	}, func(ctx context.Context, _ *struct{}) (*ListOutput, error) {
		out := &ListOutput{}
		out.Body.Source = table.Source()
		out.Body.Aliases = make(map[string][]string, table.Len())
		for _, canonical := range table.Canonical() {
			list := table.Aliases(canonical)
			if list == nil {
				list = []string{}
			}
			out.Body.Aliases[canonical] = list
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "resolve-alias",
		Method:      http.MethodGet,
		Path:        "/aliases/{key}",
		Summary:     "Resolve a key spelling to its canonical key",
	}, func(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
		canonical, ok := table.Resolve(input.Key)
		if !ok {
			return nil, huma.Error404NotFound(fmt.Sprintf("unknown key %q", input.Key))
		}
		out := &ResolveOutput{}
		out.Body.Key = input.Key
		out.Body.Canonical = canonical
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-conflicts",
		Method:      http.MethodGet,
		Path:        "/conflicts",
		Summary:     "List spellings claimed by more than one canonical key",
	}, func(ctx context.Context, _ *struct{}) (*ConflictsOutput, error) {
		out := &ConflictsOutput{}
		out.Body.Conflicts = table.Conflicts()
		if out.Body.Conflicts == nil {
			out.Body.Conflicts = []aliases.Conflict{}
		}
		return out, nil
	})
}

// NewHandler returns an http.Handler serving the alias operations.
func NewHandler(table *aliases.Table) http.Handler {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig(title, version))
	Register(api, table)
	return mux
}
