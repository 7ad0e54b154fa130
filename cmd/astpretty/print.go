package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"astpretty/internal/config"
	"astpretty/internal/driver"
	"astpretty/internal/frontend"
	"astpretty/internal/pretty"
	"astpretty/internal/query"
	"astpretty/internal/source"
)

func addPrintFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-show-positions", false, "omit position attributes (lineno, col_offset, ...)")
	cmd.Flags().String("indent", pretty.DefaultIndent, "indentation unit: a number of spaces, 'tab', or a literal string")
	cmd.Flags().String("frontend", "", "force a front-end (go|graphql|yaml) instead of picking one by extension")
	cmd.Flags().String("select", "", "print only the nodes matching this expression, e.g. kind == \"CallExpr\"")
	cmd.Flags().Bool("expand-singletons", false, "lay out single-element lists of leaves one element per line")
	cmd.Flags().Int("jobs", 0, "max parallel files in directory mode (0 = GOMAXPROCS)")
	cmd.Flags().Bool("cache", false, "reuse renderings from the output cache")
	cmd.Flags().String("paths", "", "directory header paths (absolute|relative|basename|auto); empty prints them as walked")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// printSettings is the merge of built-in defaults, astpretty.toml and flags.
type printSettings struct {
	format    pretty.Options
	color     string
	frontend  string
	selectSrc string
	jobs      int
	paths     string
	cache     bool
	cacheDir  string
	ui        uiMode
	quiet     bool
	timings   bool
}

func runPrint(cmd *cobra.Command, args []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	settings, err := resolveSettings(cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	settings.format.Color = useColor(settings.color, out)
	color.NoColor = !settings.format.Color

	reg := frontend.Builtin()
	for ext, name := range cfg.Frontend.Extensions {
		if err := reg.MapExtension(ext, name); err != nil {
			return fmt.Errorf("%s: %w", cfg.Path, err)
		}
	}

	req := &driver.Request{
		Path:     args[0],
		Stdin:    cmd.InOrStdin(),
		Frontend: settings.frontend,
		Registry: reg,
		Format:   settings.format,
		Jobs:     settings.jobs,
		Paths:    settings.paths,
	}
	if settings.selectSrc != "" {
		prog, err := query.Compile(settings.selectSrc)
		if err != nil {
			return err
		}
		req.Select = prog
	}
	if settings.cache {
		cache, err := openCache(settings.cacheDir)
		if err != nil {
			return err
		}
		req.Cache = cache
	}

	var res driver.Result
	if shouldUseTUI(settings.ui, settings.quiet, args[0]) {
		res, err = runWithUI(cmd.Context(), "astpretty "+args[0], req)
	} else {
		res, err = driver.Run(cmd.Context(), req)
	}
	if err != nil {
		dumpTrace(cmd, tracer)
		return err
	}

	if err := res.Write(out, settings.quiet); err != nil {
		return err
	}
	if settings.timings {
		printTimings(cmd.ErrOrStderr(), res)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

// resolveSettings applies flags the user set explicitly on top of cfg.
func resolveSettings(cmd *cobra.Command, cfg *config.Config) (printSettings, error) {
	flags := cmd.Flags()
	s := printSettings{
		color:    cfg.Format.Color,
		frontend: cfg.Frontend.Default,
		jobs:     cfg.Driver.Jobs,
		paths:    cfg.Driver.Paths,
		cache:    cfg.Driver.Cache,
		cacheDir: cfg.Driver.CacheDir,
	}

	format, err := cfg.FormatOptions()
	if err != nil {
		return s, err
	}
	if flags.Changed("indent") {
		raw, _ := flags.GetString("indent")
		if format.Indent, err = pretty.ParseIndent(raw); err != nil {
			return s, fmt.Errorf("invalid --indent: %w", err)
		}
	}
	if flags.Changed("no-show-positions") {
		hide, _ := flags.GetBool("no-show-positions")
		format.ShowPositions = !hide
	}
	if flags.Changed("expand-singletons") {
		format.ExpandSingletons, _ = flags.GetBool("expand-singletons")
	}
	s.format = format

	if flags.Changed("color") {
		s.color, _ = flags.GetString("color")
	}
	s.color = strings.ToLower(strings.TrimSpace(s.color))
	switch s.color {
	case "auto", "on", "off":
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.color)
	}

	if flags.Changed("frontend") {
		s.frontend, _ = flags.GetString("frontend")
	}
	if flags.Changed("jobs") {
		s.jobs, _ = flags.GetInt("jobs")
	}
	if s.jobs < 0 {
		return s, fmt.Errorf("invalid --jobs value %d", s.jobs)
	}
	if flags.Changed("paths") {
		s.paths, _ = flags.GetString("paths")
	}
	if !source.ValidPathMode(s.paths) {
		return s, fmt.Errorf("invalid --paths value %q (expected absolute|relative|basename|auto)", s.paths)
	}
	if flags.Changed("cache") {
		s.cache, _ = flags.GetBool("cache")
	}
	s.selectSrc, _ = flags.GetString("select")
	s.quiet, _ = flags.GetBool("quiet")
	s.timings, _ = flags.GetBool("timings")

	uiValue, _ := flags.GetString("ui")
	if s.ui, err = readUIMode(uiValue); err != nil {
		return s, err
	}
	return s, nil
}

// useColor decides colouring for out. "auto" colours terminals only and
// honours NO_COLOR.
func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := out.(*os.File)
	return ok && isTerminal(f)
}

func openCache(dir string) (*driver.DiskCache, error) {
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("astpretty")
}
