package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/pflag"

	"github.com/DeusData/component-dirs/internal/config"
	"github.com/DeusData/component-dirs/internal/container"
	"github.com/DeusData/component-dirs/internal/manifest"
	"github.com/DeusData/component-dirs/internal/tools"
)

var version = "dev"

const usage = `Usage: component-dirs [flags] [command]

Commands:
  serve              Run the MCP server over stdio (default)
  resolve <key>      Print the component for key
  list               List all components
  namespaces         List namespaces per component directory
  manifest           Compare components with a stored manifest

Flags:
`

// errNotFound makes run exit 1 without printing an error.
var errNotFound = errors.New("not found")

type options struct {
	configPath string
	verbose    bool
	version    bool
	json       bool
	dbPath     string
	project    string
	write      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := pflag.NewFlagSet("component-dirs", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to "+config.FileName+" (default: ./"+config.FileName+")")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.BoolVar(&opts.json, "json", false, "print list output as JSON")
	fs.StringVar(&opts.dbPath, "db", "", "manifest database path")
	fs.StringVar(&opts.project, "project", "", "manifest name (default: derived from the container root)")
	fs.BoolVar(&opts.write, "write", false, "store the current listing as the manifest")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.version {
		fmt.Fprintln(stdout, "component-dirs", version)
		return 0
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	c, err := loadContainer(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	cmd, rest := "serve", fs.Args()
	if len(rest) > 0 {
		cmd, rest = rest[0], rest[1:]
	}

	switch cmd {
	case "serve":
		err = serve(ctx, c)
	case "resolve":
		if len(rest) != 1 {
			fmt.Fprintln(stderr, "usage: component-dirs resolve <key>")
			return 2
		}
		err = resolveCmd(c, rest[0], stdout)
	case "list":
		err = listCmd(ctx, c, opts.json, stdout)
	case "namespaces":
		err = namespacesCmd(c, stdout)
	case "manifest":
		if opts.dbPath == "" {
			fmt.Fprintln(stderr, "usage: component-dirs manifest --db <path> [--project name] [--write]")
			return 2
		}
		err = manifestCmd(ctx, c, opts, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", cmd)
		fs.Usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNotFound):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func loadContainer(path string) (*container.Container, error) {
	var (
		cfg *config.ContainerConfig
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return nil, err
		}
		cfg, err = config.LoadDir(wd)
	}
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

func serve(ctx context.Context, c *container.Container) error {
	srv := tools.NewServer(c, version)
	slog.Info("server.start", "version", version, "root", c.Config().Root, "dirs", len(c.Resolvers()))
	if err := srv.MCPServer().Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

func resolveCmd(c *container.Container, key string, w io.Writer) error {
	comp, err := c.Resolve(key)
	if err != nil {
		return err
	}
	if comp == nil {
		fmt.Fprintf(w, "%s: not found\n", key)
		return errNotFound
	}
	return writeJSON(w, tools.NewComponentInfo(comp))
}

func listCmd(ctx context.Context, c *container.Container, asJSON bool, w io.Writer) error {
	comps, err := c.Components(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		infos := make([]tools.ComponentInfo, 0, len(comps))
		for _, comp := range comps {
			infos = append(infos, tools.NewComponentInfo(comp))
		}
		return writeJSON(w, infos)
	}
	for _, comp := range comps {
		fmt.Fprintf(w, "%s\t%s\n", comp.Key(), comp.FilePath)
	}
	return nil
}

func namespacesCmd(c *container.Container, w io.Writer) error {
	for _, r := range c.Resolvers() {
		for _, ns := range r.Namespaces() {
			path := ns.Path
			if ns.IsRoot() {
				path = "."
			}
			fmt.Fprintf(w, "%s\t%s\tkey=%s\tconst=%s\n", r.Dir().Path, path, ns.Key, ns.Const)
		}
	}
	return nil
}

func manifestCmd(ctx context.Context, c *container.Container, opts options, w io.Writer) error {
	project := opts.project
	if project == "" {
		project = c.ProjectName()
	}

	current, err := c.Manifest(ctx)
	if err != nil {
		return err
	}

	st, err := manifest.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	diff, err := st.Diff(project, current)
	if err != nil {
		return err
	}
	if opts.write {
		if err := st.Replace(project, c.Config().Root, current); err != nil {
			return err
		}
	}
	return writeJSON(w, diff)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
