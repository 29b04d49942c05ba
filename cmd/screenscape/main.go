package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/screenscape/internal/config"
	"github.com/1broseidon/screenscape/internal/layout"
	"github.com/1broseidon/screenscape/internal/runtimepath"
	"github.com/1broseidon/screenscape/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "geometry":
		os.Exit(runGeometry(os.Args[2:]))
	case "render":
		os.Exit(runRender(os.Args[2:]))
	case "detect":
		os.Exit(runDetect(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: screenscape <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Open the interactive layout planner")
	fmt.Fprintln(w, "  geometry            Compute width, height and area from a diagonal")
	fmt.Fprintln(w, "  render              Render the configured layout to PNG")
	fmt.Fprintln(w, "  detect              List connected monitors (X11 RandR)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the default config path")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'screenscape <command> --help' for command-specific options.")
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/screenscape/config.yaml)")
	detect := fs.Bool("detect", false, "Seed displays from connected monitors")
	noWatch := fs.Bool("no-watch", false, "Do not reload when the config file changes")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage: screenscape tui [--path PATH] [--detect] [--no-watch]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive planner. Drag displays with the mouse; hover a display")
		fmt.Fprintln(os.Stderr, "and click ↻ to rotate it. The wheel and the slider change zoom.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  1-4       Select display")
		fmt.Fprintln(os.Stderr, "  space     Enable/disable selected display")
		fmt.Fprintln(os.Stderr, "  r         Rotate selected display 90°")
		fmt.Fprintln(os.Stderr, "  e, Enter  Edit diagonal, aspect ratio and custom ratio")
		fmt.Fprintln(os.Stderr, "  +/-       Zoom in/out one step")
		fmt.Fprintln(os.Stderr, "  0         Reset zoom")
		fmt.Fprintln(os.Stderr, "  R         Reload config")
		fmt.Fprintln(os.Stderr, "  q, Ctrl+C Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logPath := res.Config.LogFile
	if logPath == "" {
		logPath, err = runtimepath.LogPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return 1
	}
	defer logFile.Close()
	logger := newLogger(logFile, res.Config.LogLevel)

	var seed []config.DisplayConfig
	if *detect {
		seed, err = detectDisplays("", 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Monitor detection failed: %v\n", err)
			return 1
		}
		logger.Info("seeded displays from monitors", "count", len(seed))
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := tui.Run(ctx, tui.Options{
		ConfigPath: *path,
		Seed:       seed,
		Watch:      !*noWatch,
		Logger:     logger,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

type geometryJSON struct {
	Diagonal    float64 `json:"diagonal"`
	AspectRatio string  `json:"aspect_ratio"`
	Ratio       string  `json:"ratio"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Area        float64 `json:"area"`
}

func runGeometry(args []string) int {
	fs := flag.NewFlagSet("geometry", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: screenscape geometry [--json] <diagonal> <ratio>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ratio is 16:9, 16:10, 21:9, 32:9 or any W:H pair.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	diagonal := layout.ParseDiagonal(fs.Arg(0))
	if diagonal <= 0 {
		fmt.Fprintf(os.Stderr, "invalid diagonal %q\n", fs.Arg(0))
		return 2
	}
	aspect, ratio, err := layout.ParseAspectRatio(fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if ratio.Value() == 0 {
		fmt.Fprintln(os.Stderr, "custom needs a W:H pair, e.g. 4:3")
		return 2
	}
	g := layout.DeriveFrom(diagonal, ratio)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(geometryJSON{
			Diagonal:    diagonal,
			AspectRatio: string(aspect),
			Ratio:       ratio.String(),
			Width:       g.Width,
			Height:      g.Height,
			Area:        g.Area,
		}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("diagonal:    %s\"\n", fs.Arg(0))
	fmt.Printf("ratio:       %s\n", ratio)
	fmt.Printf("width:       %.2f\"\n", g.Width)
	fmt.Printf("height:      %.2f\"\n", g.Height)
	fmt.Printf("dimensions:  %s\n", layout.FormatDimensions(g))
	fmt.Printf("area:        %s\n", layout.FormatArea(g.Area))
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  screenscape config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  screenscape config print [--path PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  screenscape config explain [--path PATH] <yaml.path>")
		fmt.Fprintln(os.Stderr, "  screenscape config path")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/screenscape/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/screenscape/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			_ = printEffective // default
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/screenscape/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	case "path":
		path, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(path)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
