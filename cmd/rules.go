package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/gnoswap-labs/fitch/internal"
	"github.com/gnoswap-labs/fitch/internal/syntax"
	"github.com/spf13/cobra"
)

var showDiagnostics bool

// rulesCmd: fitch rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the inference rules",
	Run: func(cmd *cobra.Command, args []string) {
		if showDiagnostics {
			writeDiagnostics(os.Stdout)
			return
		}
		writeRules(os.Stdout)
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&showDiagnostics, "diagnostics", false, "List the script diagnostics and their default severity instead")
}

func writeRules(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range syntax.Rules() {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.Name, r.Symbol, r.Args, r.Summary)
	}
	_ = w.Flush()
}

func writeDiagnostics(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range internal.RuleNames() {
		severity, _ := internal.DefaultSeverity(name)
		fmt.Fprintf(w, "  %s\t%s\n", name, severity)
	}
	_ = w.Flush()
}
