package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gnoswap-labs/fitch/check"
	"github.com/gnoswap-labs/fitch/formatter"
	"github.com/gnoswap-labs/fitch/internal"
	tt "github.com/gnoswap-labs/fitch/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	defaultTimeout = 5 * time.Minute
	stdinName      = "<stdin>"
)

var (
	ignoreRules     string
	checkJSONOutput bool
	outPath         string
	useCache        bool
	cacheDir        string
)

// checkCmd: fitch check [paths...]
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Replay proof scripts and report problems",
	Long: `Replay proof scripts and report problems. Directories are searched for
*.fitch files; "-" reads a script from standard input.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, _, err := loadEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		processor := check.ProcessFile
		if useCache {
			cache, err := openCache(cacheDir)
			if err != nil {
				logger.Warn("Cache disabled", zap.Error(err))
			} else {
				processor = check.CachedProcessor(cache, logger, processor)
			}
		}

		opts := check.Options{}
		if term.IsTerminal(int(os.Stderr.Fd())) && !checkJSONOutput {
			opts.Progress = os.Stderr
		}

		failed, err := runCheck(ctx, logger, engine, args, processor, opts, os.Stdin, os.Stdout)
		if err != nil {
			logger.Error("Error checking scripts", zap.Error(err))
			os.Exit(1)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of diagnostics to ignore")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "Abort the check after this long")
	checkCmd.Flags().BoolVar(&useCache, "cache", true, "Reuse results of unchanged scripts")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Cache directory (default: user cache dir)")
}

func openCache(dir string) (*internal.Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "fitch")
	}
	cache, err := internal.NewCache(dir)
	if err != nil {
		return nil, err
	}
	var deps []string
	if _, err := os.Stat(cfgFile); err == nil {
		deps = append(deps, cfgFile)
	}
	if err := cache.SetDependencies(deps...); err != nil {
		return nil, err
	}
	return cache, nil
}

// runCheck checks every path and prints the issues. It reports whether any
// issue has error severity.
func runCheck(
	ctx context.Context,
	logger *zap.Logger,
	engine check.ScriptEngine,
	paths []string,
	processor check.Processor,
	opts check.Options,
	stdin io.Reader,
	out io.Writer,
) (bool, error) {
	var (
		issues  []tt.Issue
		sources = make(map[string][]string)
		files   []string
	)
	for _, path := range paths {
		if path != "-" {
			files = append(files, path)
			continue
		}
		src, err := io.ReadAll(stdin)
		if err != nil {
			return false, fmt.Errorf("error reading standard input: %w", err)
		}
		sources[stdinName] = strings.Split(string(src), "\n")
		issues = append(issues, check.ProcessSource(engine, stdinName, src)...)
	}

	fileIssues, err := check.ProcessFiles(ctx, logger, engine, files, processor, opts)
	if err != nil {
		return false, err
	}
	issues = append(issues, fileIssues...)

	if checkJSONOutput {
		return hasErrors(issues), printJSON(issues, out)
	}
	printIssues(logger, issues, sources, out)
	return hasErrors(issues), nil
}

func hasErrors(issues []tt.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == tt.SeverityError {
			return true
		}
	}
	return false
}

func groupByFile(issues []tt.Issue) (map[string][]tt.Issue, []string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return issuesByFile, sortedFiles
}

func printIssues(logger *zap.Logger, issues []tt.Issue, sources map[string][]string, out io.Writer) {
	issuesByFile, sortedFiles := groupByFile(issues)
	errors, warnings := 0, 0
	for _, filename := range sortedFiles {
		fileIssues := issuesByFile[filename]
		lines, ok := sources[filename]
		if !ok {
			content, err := os.ReadFile(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			}
			lines = strings.Split(string(content), "\n")
		}
		fmt.Fprint(out, formatter.FormatIssues(fileIssues, lines))

		for _, issue := range fileIssues {
			switch issue.Severity {
			case tt.SeverityError:
				errors++
			case tt.SeverityWarning:
				warnings++
			}
		}
	}
	if len(issues) > 0 {
		fmt.Fprintf(out, "%d error(s), %d warning(s)\n", errors, warnings)
	}
}

func printJSON(issues []tt.Issue, out io.Writer) error {
	issuesByFile, _ := groupByFile(issues)
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if outPath == "" {
		_, err = fmt.Fprintln(out, string(d))
		return err
	}
	return os.WriteFile(outPath, d, 0o644)
}
