package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gnoswap-labs/fitch/formatter"
	"github.com/gnoswap-labs/fitch/internal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	withPreamble bool
	latexOutPath string
)

var errScriptHasErrors = errors.New("script has errors")

// latexCmd: fitch latex <script>
var latexCmd = &cobra.Command{
	Use:   "latex <script>",
	Short: "Export the proof built by a script as LaTeX",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := loadEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		src, err := os.ReadFile(args[0])
		if err != nil {
			logger.Fatal("Error reading script", zap.String("file", args[0]), zap.Error(err))
		}

		out := io.Writer(os.Stdout)
		if latexOutPath != "" {
			f, err := os.Create(latexOutPath)
			if err != nil {
				logger.Fatal("Error creating output file", zap.String("file", latexOutPath), zap.Error(err))
			}
			defer f.Close()
			out = f
		}

		if err := exportLatex(engine, args[0], src, withPreamble, out, os.Stderr); err != nil {
			if !errors.Is(err, errScriptHasErrors) {
				fmt.Fprintln(os.Stderr, errorText.Sprint("error: ")+err.Error())
			}
			os.Exit(1)
		}
	},
}

func init() {
	latexCmd.Flags().BoolVar(&withPreamble, "preamble", false, "Print the required \\usepackage lines first")
	latexCmd.Flags().StringVarP(&latexOutPath, "output", "o", "", "Write the LaTeX to this file")
}

// exportLatex replays src and writes the resulting proof to out. Issues with
// error severity are written to diag and abort the export.
func exportLatex(engine *internal.Engine, name string, src []byte, preamble bool, out, diag io.Writer) error {
	result := engine.Replay(name, src)
	if len(result.Issues) > 0 {
		fmt.Fprint(diag, formatter.FormatIssues(result.Issues, strings.Split(string(src), "\n")))
	}
	if hasErrors(result.Issues) {
		return errScriptHasErrors
	}

	proof, err := formatter.Latex(result.Proof)
	if err != nil {
		return err
	}
	if preamble {
		fmt.Fprint(out, formatter.LatexPreamble)
		fmt.Fprintln(out)
	}
	_, err = fmt.Fprint(out, proof)
	return err
}
