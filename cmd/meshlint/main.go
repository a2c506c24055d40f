// meshlint validates mesh files before export: face orientation,
// materials, UVs, transforms, geometry and naming.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"meshlint/internal/config"
	"meshlint/internal/logger"
	"meshlint/pkg/checker"
	"meshlint/pkg/engine"
	"meshlint/pkg/issue"
	"meshlint/pkg/scene"
)

var (
	configPath = flag.String("config", "", "path to config file")
	quiet      = flag.Bool("quiet", false, "suppress log output, print only the report")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: !*quiet,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	checkers, err := buildCheckers(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var objects []*scene.Object
	for _, path := range flag.Args() {
		loaded, err := scene.LoadOBJ(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		objects = append(objects, loaded...)
	}

	eng := engine.New(checkers, logger.Log)
	result := eng.Validate(objects)
	logger.Log.Info("scan complete",
		zap.Int("objects", len(result.Objects)),
		zap.Int("errors", result.ErrorCount()),
		zap.Int("warnings", result.WarningCount()),
		zap.Int("info", result.InfoCount()))

	printReport(result)

	if result.HasErrors() {
		os.Exit(1)
	}
}

// buildCheckers assembles the checker list from config: built-ins
// minus the disabled names, plus one script checker per rule file.
func buildCheckers(cfg *config.Config) ([]checker.Checker, error) {
	var checkers []checker.Checker
	for _, c := range checker.All(cfg.Checkers.Config) {
		if cfg.Checkers.Enabled(c.Name()) {
			checkers = append(checkers, c)
		}
	}
	for _, path := range cfg.Checkers.RuleScripts {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading rule script %s: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		checkers = append(checkers, checker.NewScript(name, string(src)))
	}
	return checkers, nil
}

// printReport writes the findings grouped by severity, errors first.
func printReport(r *issue.Result) {
	if r.TotalCount() == 0 {
		fmt.Printf("%d object(s) scanned, no issues found\n", len(r.Objects))
		return
	}

	groups := r.GroupBySeverity()
	for _, sev := range []issue.Severity{issue.SeverityError, issue.SeverityWarning, issue.SeverityInfo} {
		found := groups[sev]
		if len(found) == 0 {
			continue
		}
		sort.SliceStable(found, func(i, j int) bool {
			return found[i].Object < found[j].Object
		})
		fmt.Printf("%s (%d)\n", sev, len(found))
		for _, f := range found {
			fmt.Printf("  [%s] %s: %s: %s\n", f.ID, f.Object, f.Category, f.Message)
			if f.Hint != "" {
				fmt.Printf("         hint: %s\n", f.Hint)
			}
		}
	}
	fmt.Printf("%d object(s) scanned: %d error(s), %d warning(s), %d info\n",
		len(r.Objects), r.ErrorCount(), r.WarningCount(), r.InfoCount())
}

func usage() {
	fmt.Fprintln(os.Stderr, `meshlint - pre-export mesh validation

Usage: meshlint [options] <file.obj> [more.obj ...]

Options:
  -config <path>  Path to YAML config file
  -quiet          Suppress log output, print only the report

Exit status is 1 when any ERROR-severity issue is found.`)
}
