package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
)

const (
	uriScheme = "ocrhl://"

	mimeJSON = "application/json"

	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "The searchable corpora",
		MIMEType:    mimeJSON,
	}, s.handleSourcesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective configuration values",
		MIMEType:    mimeJSON,
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recent searches, newest first",
		MIMEType:    mimeJSON,
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}/annotations{?q}",
		Name:        "document-annotations",
		Description: "IIIF Content Search annotations of a document for a query",
		MIMEType:    mimeJSON,
	}, s.handleAnnotationsResource)
}

// handleSourcesResource lists the corpora.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sourceInfo struct {
		Tag         string `json:"tag"`
		Label       string `json:"label"`
		ImagePrefix string `json:"image_prefix"`
	}

	all := domain.AllSources()
	infos := make([]sourceInfo, len(all))
	for i, kind := range all {
		infos[i] = sourceInfo{
			Tag:         kind.String(),
			Label:       kind.Label(),
			ImagePrefix: kind.ImagePrefix(),
		}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleSettingsResource returns the effective settings as key/value pairs.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	values := make(map[string]string)
	for _, key := range s.ports.Settings.Keys() {
		value, err := s.ports.Settings.Value(key)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", key, err)
		}
		values[key] = value
	}
	return jsonResult(req.Params.URI, values)
}

// handleHistoryResource returns the most recent searches.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entries, err := s.ports.History.Recent(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return jsonResult(req.Params.URI, entries)
}

// handleAnnotationsResource returns the Content Search annotation list of
// a document.
func (s *Server) handleAnnotationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID, query := parseAnnotationsURI(req.Params.URI)
	if docID == "" || query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	list, err := s.ports.Search.ContentSearch(ctx, docID, query)
	if err != nil {
		return nil, fmt.Errorf("content search: %w", err)
	}
	return jsonResult(req.Params.URI, list)
}

// parseAnnotationsURI extracts the document id and query from a URI like
// ocrhl://documents/{documentId}/annotations?q={query}.
func parseAnnotationsURI(uri string) (docID, query string) {
	const prefix = uriScheme + "documents/"
	const suffix = "/annotations"

	if !strings.HasPrefix(uri, prefix) {
		return "", ""
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", ""
	}

	path := strings.TrimPrefix(u.Host+u.Path, "documents/")
	if !strings.HasSuffix(path, suffix) {
		return "", ""
	}
	return strings.TrimSuffix(path, suffix), u.Query().Get("q")
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}
