package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/gnoswap-labs/fitch/formatter"
	"github.com/gnoswap-labs/fitch/internal"
	tt "github.com/gnoswap-labs/fitch/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd: fitch watch [dirs...]
var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check proof scripts whenever they are saved",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, _, err := loadEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := runWatch(ctx, engine, args, os.Stdout); err != nil {
			logger.Error("Watcher stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func runWatch(ctx context.Context, engine *internal.Engine, dirs []string, out io.Writer) error {
	var mu sync.Mutex
	w, err := engine.NewWatcher(func(filename string, issues []tt.Issue) {
		mu.Lock()
		defer mu.Unlock()
		reportWatched(out, filename, issues)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "watching %s for changes to *%s files\n", strings.Join(dirs, ", "), internal.ScriptExt)

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func reportWatched(out io.Writer, filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		fmt.Fprintf(out, "%s: ok\n", filename)
		return
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		logger.Warn("Error reading source file", zap.String("file", filename), zap.Error(err))
	}
	fmt.Fprint(out, formatter.FormatIssues(issues, strings.Split(string(content), "\n")))
}
