package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/component-dirs/internal/manifest"
)

func (s *Server) handleManifestDiff(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	dbPath := getStringArg(args, "db_path")
	if dbPath == "" {
		return errResult("db_path is required"), nil
	}
	project := getStringArg(args, "project")
	if project == "" {
		project = s.container.ProjectName()
	}

	current, err := s.container.Manifest(ctx)
	if err != nil {
		return errResult(fmt.Sprintf("scan: %v", err)), nil
	}

	st, err := manifest.Open(dbPath)
	if err != nil {
		return errResult(fmt.Sprintf("open manifest: %v", err)), nil
	}
	defer st.Close()

	diff, err := st.Diff(project, current)
	if err != nil {
		return errResult(fmt.Sprintf("diff: %v", err)), nil
	}

	updated := false
	if getBoolArg(args, "update") {
		if err := st.Replace(project, s.container.Config().Root, current); err != nil {
			return errResult(fmt.Sprintf("update manifest: %v", err)), nil
		}
		updated = true
	}

	return jsonResult(map[string]any{
		"project":    project,
		"components": len(current),
		"added":      diff.Added,
		"removed":    diff.Removed,
		"changed":    diff.Changed,
		"updated":    updated,
	}), nil
}
