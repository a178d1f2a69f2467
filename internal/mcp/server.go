package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"slides/internal/auth"
	"slides/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "google-slides-mcp"
	serverVersion = "1.0.0"
)

// Server exposes the slide operations as MCP tools and resources.
type Server struct {
	mcp    *server.MCPServer
	slides *service.SlidesService
	logger *slog.Logger
}

// Deps holds everything the app layer hands to the MCP server.
type Deps struct {
	Service  *service.SlidesService
	Notifier *Notifier // optional; bound to the new server
	Logger   *slog.Logger
}

// New creates the MCP server and registers every tool and resource.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		slides: deps.Service,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithRecovery(),
	)
	if deps.Notifier != nil {
		deps.Notifier.bind(s.mcp)
	}

	s.registerTemplateTools()
	s.registerContentTools()
	s.registerPositioningTools()
	s.registerCreationTools()
	s.registerAnalysisTools()
	s.registerUtilityTools()
	s.registerLowLevelTools()
	s.registerResources()

	return s
}

// ServeStdio serves MCP on stdin/stdout until ctx is done or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("mcp stdio server starting")
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// HTTPHandler returns the streamable HTTP transport. Bearer tokens sent
// by the client are carried into each tool call's context.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp,
		server.WithHTTPContextFunc(auth.BearerFromRequest),
	)
}

// ─── Change notifications ─────────────────────────────────

const methodResourceUpdated = "notifications/resources/updated"

// Notifier turns service change events into resources/updated
// notifications. It is created before the server so the service can
// hold it, and becomes live once New binds it.
type Notifier struct {
	mcp atomic.Pointer[server.MCPServer]
}

func NewNotifier() *Notifier { return &Notifier{} }

func (n *Notifier) bind(m *server.MCPServer) { n.mcp.Store(m) }

// Emit implements service.EventEmitter.
func (n *Notifier) Emit(_ context.Context, event string, data any) {
	m := n.mcp.Load()
	if m == nil || event != service.EventPresentationChanged {
		return
	}
	id, ok := data.(string)
	if !ok {
		return
	}
	m.SendNotificationToAllClients(methodResourceUpdated, map[string]any{
		"uri": slidesResourceURI(id),
	})
}

// ─── Results ──────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// rawResult pretty-prints a raw remote record.
func rawResult(raw json.RawMessage) (*mcp.CallToolResult, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return textResult(string(raw)), nil
	}
	return jsonResult(v)
}

// result is the common tail of every handler: failures become an
// isError result carrying the error kind, successes become JSON.
func (s *Server) result(tool string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		kind := classify(err)
		if kind == KindInternal {
			s.logger.Error("tool failed", "tool", tool, "err", err)
		} else {
			s.logger.Warn("tool rejected", "tool", tool, "kind", kind, "err", err)
		}
		return errorResult(kind, err), nil
	}
	return jsonResult(v)
}
