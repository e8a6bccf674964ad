package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/component-dirs/internal/container"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp       *mcp.Server
	container *container.Container
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(c *container.Container, version string) *Server {
	srv := &Server{
		container: c,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "component-dirs",
				Version: version,
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

func (s *Server) registerTools() {
	s.mcp.AddTool(&mcp.Tool{
		Name:        "resolve_component",
		Description: "Resolve a component key (e.g. 'admin.users') to the source file that defines it. Searches component directories in configured order and namespaces in declared order. Returns the file path, namespace, constant name and load options, or found=false.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"key": {
					"type": "string",
					"description": "Component key, segments joined with the container separator"
				}
			},
			"required": ["key"]
		}`),
	}, s.handleResolveComponent)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_components",
		Description: "List every component found in the component directories, with key, file, namespace and load options. Directories that do not exist are skipped.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"dir": {
					"type": "string",
					"description": "Only list this component directory (path as configured)"
				},
				"auto_register_only": {
					"type": "boolean",
					"description": "Only list components the container registers automatically"
				}
			}
		}`),
	}, s.handleListComponents)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_namespaces",
		Description: "List the namespaces of each component directory in lookup order, after key normalization, including the default root namespace.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"dir": {
					"type": "string",
					"description": "Only list this component directory (path as configured)"
				}
			}
		}`),
	}, s.handleListNamespaces)

	s.mcp.AddTool(&mcp.Tool{
		Name:        "manifest_diff",
		Description: "Compare the current component listing with a manifest stored in a SQLite database. Reports added, removed and changed (moved or edited) components. With update=true the stored manifest is replaced by the current one.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"db_path": {
					"type": "string",
					"description": "Path to the manifest database (created if missing)"
				},
				"project": {
					"type": "string",
					"description": "Manifest name. Defaults to a name derived from the container root."
				},
				"update": {
					"type": "boolean",
					"description": "Store the current listing after comparing"
				}
			},
			"required": ["db_path"]
		}`),
	}, s.handleManifestDiff)
}

// jsonResult marshals data to JSON and returns it as a tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getBoolArg extracts a boolean argument from parsed args.
func getBoolArg(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}
