package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DefinitionURI is the resource exposing the automaton definition.
const DefinitionURI = "pushdown://definition"

// AcceptsArgs are the arguments of the accepts tool.
type AcceptsArgs struct {
	Input     string `json:"input"`
	StepLimit int    `json:"step_limit,omitempty"`
	Path      bool   `json:"path,omitempty"`
}

// AcceptsResponse aligns with the HTTP adapter's response body.
type AcceptsResponse struct {
	Status   string            `json:"status" jsonschema_description:"accepted, rejected or gave_up"`
	Accepted bool              `json:"accepted" jsonschema_description:"Whether some branch accepted the input"`
	Steps    int               `json:"steps" jsonschema_description:"Configurations examined"`
	Branch   string            `json:"branch,omitempty" jsonschema_description:"Label of the accepting branch"`
	Path     []domain.Snapshot `json:"path,omitempty" jsonschema_description:"Configurations on the accepting branch, oldest first"`
	RunID    string            `json:"run_id" jsonschema_description:"Identifier of the evaluation"`
	Cached   bool              `json:"cached,omitempty" jsonschema_description:"Answered from the verdict store"`
}

// Evaluator defines what the MCP server needs from the evaluation service.
type Evaluator interface {
	Evaluate(ctx context.Context, req runner.Request) (*domain.Verdict, error)
	Machine() *pushdown.Machine
}

// Server exposes an automaton as an MCP Server.
type Server struct {
	evaluator Evaluator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(evaluator Evaluator) *Server {
	s := &Server{
		evaluator: evaluator,
		mcpServer: server.NewMCPServer("pushdown-mcp", strings.TrimSpace(pushdown.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it
// gracefully when ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: accepts
	acceptsTool := mcp.NewTool("accepts",
		mcp.WithDescription("Decide whether the pushdown automaton accepts an input string."),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string; may be empty")),
		mcp.WithNumber("step_limit", mcp.Description("Maximum configurations to examine (optional, capped by the server)")),
		mcp.WithBoolean("path", mcp.Description("Include the accepting path in the answer (optional)")),
		mcp.WithOutputSchema[AcceptsResponse](),
	)
	s.mcpServer.AddTool(acceptsTool, mcp.NewStructuredToolHandler(s.handleAccepts))

	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get a state diagram of the automaton."),
		mcp.WithString("format", mcp.Description("mermaid (default) or dot")),
		mcp.WithString("input", mcp.Description("Highlight the accepting path of this input (optional)")),
	), s.handleGetGraph)
}

func (s *Server) handleAccepts(ctx context.Context, request mcp.CallToolRequest, args AcceptsArgs) (AcceptsResponse, error) {
	verdict, err := s.evaluator.Evaluate(ctx, runner.Request{
		Input:     args.Input,
		StepLimit: args.StepLimit,
		WithPath:  args.Path,
	})
	if err != nil {
		slog.Warn("MCP Accepts: input rejected", "error", err, "size", len(args.Input))
		return AcceptsResponse{}, fmt.Errorf("evaluation failed: %w", err)
	}

	return AcceptsResponse{
		Status:   verdict.Status(),
		Accepted: verdict.Accepted,
		Steps:    verdict.Steps,
		Branch:   verdict.Branch,
		Path:     verdict.Path,
		RunID:    verdict.RunID,
		Cached:   verdict.Cached,
	}, nil
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "mermaid")
	if format != "mermaid" && format != "dot" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q (want mermaid or dot)", format)), nil
	}

	var overlay *graph.Overlay
	if input, err := request.RequireString("input"); err == nil {
		verdict, err := s.evaluator.Evaluate(ctx, runner.Request{Input: input, WithPath: true})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
		}
		overlay = graph.OverlayFromPath(verdict.Path)
	}

	def := s.evaluator.Machine().Definition()
	if format == "dot" {
		return mcp.NewToolResultText(graph.GenerateDot(def, overlay)), nil
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(def, overlay)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: pushdown://definition
	s.mcpServer.AddResource(mcp.NewResource(DefinitionURI, "Automaton Definition",
		mcp.WithMIMEType("application/json"),
	), s.readDefinition)
}

func (s *Server) readDefinition(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.evaluator.Machine().Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      DefinitionURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
