// Package server provides the HTTP serving surface of the gateway: the MCP
// endpoint that dispatches tool calls, plus readiness, version, and catalog
// endpoints. Workspace credentials are extracted from each request's headers
// and live only in that request's context.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/tansive/databricks-mcp/internal/common/httpx"
	"github.com/tansive/databricks-mcp/internal/common/middleware"
	"github.com/tansive/databricks-mcp/internal/config"
	"github.com/tansive/databricks-mcp/internal/databricks"
	"github.com/tansive/databricks-mcp/internal/tools"
)

// Gateway is the main HTTP server. It owns the router and the MCP server
// that tool calls dispatch through.
type Gateway struct {
	Router *chi.Mux
	mcp    *mcpserver.MCPServer
}

// New creates a Gateway with all handlers mounted.
func New() (*Gateway, error) {
	srv, err := newMCPServer()
	if err != nil {
		return nil, err
	}
	g := &Gateway{
		Router: chi.NewRouter(),
		mcp:    srv,
	}
	g.mountHandlers()
	return g, nil
}

// mountHandlers sets up middleware and routes.
func (g *Gateway) mountHandlers() {
	g.Router.Use(middleware.RequestLogger)
	g.Router.Use(middleware.PanicHandler)
	if cfg := config.Config(); cfg != nil && cfg.HandleCORS {
		g.Router.Use(g.handleCORS)
	}
	g.Router.Post("/mcp", g.handleMCP)
	g.Router.Get("/ready", g.getReadiness)
	g.Router.Get("/version", g.getVersion)
	g.Router.Get("/", g.getCatalog)
}

// handleMCP serves one MCP message. Credentials from the request headers are
// placed in the request context so the dispatch wrapper can validate and use
// them; they are discarded when the request completes.
func (g *Gateway) handleMCP(w http.ResponseWriter, r *http.Request) {
	creds := databricks.CredentialsFromHeaders(r.Header)
	ctx := databricks.ContextWithCredentials(r.Context(), creds)

	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		httpx.ErrUnableToParseReqData().Send(w)
		return
	}

	resp := g.mcp.HandleMessage(ctx, raw)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to encode mcp response")
	}
}

// GetVersionRsp is the response for version information.
type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
}

// getVersion returns server and API version information.
func (g *Gateway) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "Databricks MCP Gateway: " + Version,
		ApiVersion:    APIVersion,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

// getReadiness returns readiness status for load balancers and monitors.
func (g *Gateway) getReadiness(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("Readiness check")
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// GetCatalogRsp is the response for the catalog endpoint: every operation
// name grouped by category. The catalog is static and never touches the
// request pipeline.
type GetCatalogRsp struct {
	Name       string              `json:"name"`
	Version    string              `json:"version"`
	Operations map[string][]string `json:"operations"`
}

// getCatalog enumerates all registered operations by category.
func (g *Gateway) getCatalog(w http.ResponseWriter, r *http.Request) {
	rsp := &GetCatalogRsp{
		Name:       "databricks-mcp-gateway",
		Version:    Version,
		Operations: tools.Categories(),
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

// handleCORS provides CORS middleware for cross-origin requests.
func (g *Gateway) handleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			databricks.HeaderHost, databricks.HeaderToken, databricks.HeaderWarehouseID,
		},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
