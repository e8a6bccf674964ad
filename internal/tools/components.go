package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/component-dirs/internal/component"
	"github.com/DeusData/component-dirs/internal/resolver"
)

// ComponentInfo is the JSON shape of a component in tool output.
type ComponentInfo struct {
	Key          string         `json:"key"`
	FilePath     string         `json:"file_path"`
	Namespace    string         `json:"namespace"`
	ConstName    string         `json:"const_name"`
	AutoRegister bool           `json:"auto_register"`
	Memoize      bool           `json:"memoize"`
	Loader       string         `json:"loader"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// NewComponentInfo flattens a component for output.
func NewComponentInfo(c *component.Component) ComponentInfo {
	return ComponentInfo{
		Key:          c.Key(),
		FilePath:     c.FilePath,
		Namespace:    c.Namespace.Path,
		ConstName:    c.ConstName(),
		AutoRegister: c.Options.AutoRegister,
		Memoize:      c.Options.Memoize,
		Loader:       c.Options.Loader,
		Extra:        c.Options.Extra,
	}
}

// NamespaceInfo is the JSON shape of a namespace in tool output.
type NamespaceInfo struct {
	Dir   string `json:"dir"`
	Path  string `json:"path"`
	Key   string `json:"key"`
	Const string `json:"const"`
}

func (s *Server) handleResolveComponent(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	key := getStringArg(args, "key")
	if key == "" {
		return errResult("key is required"), nil
	}

	comp, err := s.container.Resolve(key)
	if err != nil {
		return errResult(fmt.Sprintf("resolve: %v", err)), nil
	}
	if comp == nil {
		return jsonResult(map[string]any{"key": key, "found": false}), nil
	}
	return jsonResult(map[string]any{
		"found":     true,
		"component": NewComponentInfo(comp),
	}), nil
}

func (s *Server) handleListComponents(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	resolvers, err := s.selectResolvers(getStringArg(args, "dir"))
	if err != nil {
		return errResult(err.Error()), nil
	}
	autoOnly := getBoolArg(args, "auto_register_only")

	result := make([]ComponentInfo, 0)
	for _, r := range resolvers {
		comps, err := r.Components(ctx)
		if err != nil {
			if resolver.IsDirectoryNotFound(err) {
				continue
			}
			return errResult(fmt.Sprintf("list %s: %v", r.Dir().Path, err)), nil
		}
		for _, c := range comps {
			if autoOnly && !c.AutoRegister() {
				continue
			}
			result = append(result, NewComponentInfo(c))
		}
	}
	return jsonResult(map[string]any{
		"components": result,
		"total":      len(result),
	}), nil
}

func (s *Server) handleListNamespaces(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	resolvers, err := s.selectResolvers(getStringArg(args, "dir"))
	if err != nil {
		return errResult(err.Error()), nil
	}

	result := make([]NamespaceInfo, 0)
	for _, r := range resolvers {
		for _, ns := range r.Namespaces() {
			result = append(result, NamespaceInfo{
				Dir:   r.Dir().Path,
				Path:  ns.Path,
				Key:   ns.Key,
				Const: ns.Const,
			})
		}
	}
	return jsonResult(result), nil
}

// selectResolvers returns all resolvers, or only the one for dir.
func (s *Server) selectResolvers(dir string) ([]*resolver.Resolver, error) {
	if dir == "" {
		return s.container.Resolvers(), nil
	}
	r, ok := s.container.Resolver(dir)
	if !ok {
		return nil, fmt.Errorf("component dir not configured: %s", dir)
	}
	return []*resolver.Resolver{r}, nil
}
