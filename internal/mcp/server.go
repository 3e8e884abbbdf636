package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/a3tai/mcp-field-reports/internal/compose"
	"github.com/a3tai/mcp-field-reports/internal/config"
	"github.com/a3tai/mcp-field-reports/internal/descriptions"
	"github.com/a3tai/mcp-field-reports/internal/forms"
	"github.com/a3tai/mcp-field-reports/internal/inspect"
	"github.com/a3tai/mcp-field-reports/internal/signature"
	"github.com/a3tai/mcp-field-reports/internal/sink"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *compose.Service
	inspector *inspect.Inspector
	output    *sink.Directory
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance. Documents composed through
// the tools are saved by service; output is the directory they land in.
func NewServer(cfg *config.Config, service *compose.Service, inspector *inspect.Inspector,
	output *sink.Directory,
) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if inspector == nil {
		return nil, fmt.Errorf("inspector cannot be nil")
	}
	if output == nil {
		return nil, fmt.Errorf("output directory cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		service:   service,
		inspector: inspector,
		output:    output,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// toolNames in the order server_info lists them.
var toolNames = []string{
	"compose_work_order",
	"compose_daily_report",
	"render_signature",
	"inspect_document",
	"server_info",
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	composeWorkOrderTool := mcp.NewTool(
		"compose_work_order",
		mcp.WithDescription(descriptions.GetToolDescription("compose_work_order")),
		mcp.WithObject("record",
			mcp.Required(),
			mcp.Description("Leistungsauftrag record (object or JSON string)"),
		),
	)
	s.mcpServer.AddTool(composeWorkOrderTool, s.handleComposeWorkOrder)

	composeDailyReportTool := mcp.NewTool(
		"compose_daily_report",
		mcp.WithDescription(descriptions.GetToolDescription("compose_daily_report")),
		mcp.WithObject("record",
			mcp.Required(),
			mcp.Description("Tagesbericht record (object or JSON string)"),
		),
	)
	s.mcpServer.AddTool(composeDailyReportTool, s.handleComposeDailyReport)

	renderSignatureTool := mcp.NewTool(
		"render_signature",
		mcp.WithDescription(descriptions.GetToolDescription("render_signature")),
		mcp.WithArray("events",
			mcp.Required(),
			mcp.Description("Recorded input events: {type, clientX, clientY} or {type, touches: [{clientX, clientY}]}"),
		),
		mcp.WithString("seed",
			mcp.Description("Existing signature payload to start from"),
		),
		mcp.WithObject("display",
			mcp.Description("Bounding client rect of the canvas: {left, top, width, height}"),
		),
	)
	s.mcpServer.AddTool(renderSignatureTool, s.handleRenderSignature)

	inspectDocumentTool := mcp.NewTool(
		"inspect_document",
		mcp.WithDescription(descriptions.GetToolDescription("inspect_document")),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Name of a document in the output directory"),
		),
	)
	s.mcpServer.AddTool(inspectDocumentTool, s.handleInspectDocument)

	serverInfoTool := mcp.NewTool(
		"server_info",
		mcp.WithDescription(descriptions.GetToolDescription("server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleComposeWorkOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var record forms.WorkOrder
	if err := s.decodeArgument(request, "record", &record); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := record.CheckRequired(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.submit(ctx, compose.NewWorkOrder(record))
}

func (s *Server) handleComposeDailyReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var record forms.DailyReport
	if err := s.decodeArgument(request, "record", &record); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := record.CheckRequired(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.submit(ctx, compose.NewDailyReport(record))
}

func (s *Server) submit(ctx context.Context, doc compose.Document) (*mcp.CallToolResult, error) {
	result, err := s.service.Submit(ctx, doc)
	if err != nil {
		var verr *compose.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %s", verr.Title, verr.Message)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatComposeResult(result)), nil
}

// displayRect mirrors a DOMRect as browsers serialise it.
type displayRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleRenderSignature(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var events []signature.InputEvent
	if err := s.decodeArgument(request, "events", &events); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var opts []signature.Option
	if raw, ok := request.GetArguments()["display"]; ok && raw != nil {
		var r displayRect
		if err := s.decodeArgument(request, "display", &r); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts = append(opts, signature.WithDisplayRect(signature.Rect{
			Left: r.Left, Top: r.Top, Width: r.Width, Height: r.Height,
		}))
	}

	surface := signature.NewSurface(request.GetString("seed", ""), opts...)
	payload, err := signature.Replay(surface, events)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if payload == "" {
		return mcp.NewToolResultText("No signature: the surface is empty."), nil
	}
	return mcp.NewToolResultText(payload), nil
}

func (s *Server) handleInspectDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := request.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, err := s.output.Resolve(filename)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.inspector.InspectFile(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatReport(report)), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.output.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.formatServerInfo(docs)), nil
}

// decodeArgument decodes a JSON argument into v. Clients send either the
// structured value or the same value as a JSON string.
func (s *Server) decodeArgument(request mcp.CallToolRequest, key string, v any) error {
	raw, ok := request.GetArguments()[key]
	if !ok || raw == nil {
		return fmt.Errorf("required argument %q not found", key)
	}

	var data []byte
	if str, isString := raw.(string); isString {
		data = []byte(str)
	} else {
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if s.config.MaxPayload > 0 && int64(len(data)) > s.config.MaxPayload {
		return fmt.Errorf("%s too large: %d bytes (max: %d bytes)", key, len(data), s.config.MaxPayload)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

// Formatting methods
func formatComposeResult(result *compose.Result) string {
	text := fmt.Sprintf("Created %s: %s\n", result.Template, result.Filename)
	text += fmt.Sprintf("Location: %s\n", result.Location)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	return text
}

func formatReport(report *inspect.Report) string {
	text := "PDF Document Report\n"
	text += fmt.Sprintf("File: %s\n", report.Path)
	text += fmt.Sprintf("Size: %d bytes\n", report.Size)
	text += fmt.Sprintf("Pages: %d\n", report.Pages)
	if report.Valid {
		text += "Valid: yes\n"
	} else {
		text += fmt.Sprintf("Valid: no (%s)\n", report.ValidationError)
	}

	if report.Title != "" {
		text += fmt.Sprintf("Title: %s\n", report.Title)
	}
	if report.Author != "" {
		text += fmt.Sprintf("Author: %s\n", report.Author)
	}
	if report.Producer != "" {
		text += fmt.Sprintf("Producer: %s\n", report.Producer)
	}

	text += "\nContent:\n"
	text += report.Text
	if report.Truncated {
		text += "\n[truncated]"
	}
	return text
}

func (s *Server) formatServerInfo(docs []sink.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	fmt.Fprintf(&b, "📁 Output Directory: %s\n", s.output.Dir())
	fmt.Fprintf(&b, "📏 Max Payload: %d bytes\n\n", s.config.MaxPayload)

	if len(docs) > 0 {
		fmt.Fprintf(&b, "📂 Documents (%d PDF files found):\n", len(docs))
		for i, doc := range docs {
			if i >= 10 {
				fmt.Fprintf(&b, "   ... and %d more files\n", len(docs)-10)
				break
			}
			fmt.Fprintf(&b, "   %d. %s (%d bytes)\n", i+1, doc.Name, doc.Size)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("📂 Documents: No PDF files in the output directory yet\n\n")
	}

	b.WriteString("🛠️  Available Tools:\n")
	for _, name := range toolNames {
		desc := descriptions.GetToolDescription(name)
		if first, _, ok := strings.Cut(desc, "\n"); ok {
			desc = first
		}
		fmt.Fprintf(&b, "• %s: %s\n", name, desc)
	}
	return b.String()
}

// Run serves MCP over stdin/stdout until ctx is cancelled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.config.IsDebug() {
		log.Printf("Starting field report MCP server in stdio mode")
		log.Printf("Output directory: %s", s.output.Dir())
	}

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.New(log.Writer(), "mcp: ", log.Flags()))

	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
