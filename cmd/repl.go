package cmd

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/gnoswap-labs/fitch/check"
	"github.com/gnoswap-labs/fitch/formatter"
	"github.com/gnoswap-labs/fitch/internal"
	"github.com/gnoswap-labs/fitch/internal/fitch"
	"github.com/gnoswap-labs/fitch/internal/syntax"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const historyFile = ".fitch_history"

const clearScreen = "\033[H\033[2J"

var (
	errorText  = color.New(color.FgRed, color.Bold)
	noticeText = color.New(color.FgHiBlack)
	titleText  = color.New(color.Bold)
)

var farewells = []string{
	"Goodbye!",
	"QED.",
	"Until the next proof.",
	"See you, and may your boxes always close.",
	"Bye. Everything provable is still provable.",
}

// replCmd: fitch repl [script]
var replCmd = &cobra.Command{
	Use:   "repl [script]",
	Short: "Start an interactive proof session",
	Long: `Start an interactive proof session. When a script is given, its commands
are replayed first and the session continues from the resulting proof.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, config, err := loadEngine()
		if err != nil {
			return err
		}

		s := newSession(os.Stdout, config.Display, logger)
		if s.width <= 0 {
			s.width = formatter.TerminalWidth(os.Stdout)
		}
		if len(args) == 1 {
			if err := s.load(engine, args[0]); err != nil {
				return err
			}
		}
		return runRepl(s, config.Display)
	},
}

func runRepl(s *session, display check.Display) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	histPath := historyPath(display.History)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		f, err := os.Create(histPath)
		if err != nil {
			s.logger.Warn("Failed to save history", zap.String("file", histPath), zap.Error(err))
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	s.greet()
	for {
		line, err := ln.Prompt(display.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			s.farewell()
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !s.handle(line) {
			return nil
		}
	}
}

func historyPath(configured string) string {
	if configured != "" {
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

// complete suggests command words and rule names.
func complete(line string) []string {
	var candidates []string
	trimmed := strings.TrimLeft(line, " \t")
	if rest, ok := strings.CutPrefix(trimmed, "rule "); ok {
		if strings.ContainsAny(rest, " \t") {
			return nil
		}
		prefix := line[:len(line)-len(rest)]
		for _, r := range syntax.Rules() {
			if strings.HasPrefix(r.Name, rest) {
				candidates = append(candidates, prefix+r.Name+" ")
			}
		}
		return candidates
	}
	if strings.ContainsAny(trimmed, " \t") {
		return nil
	}
	for _, k := range syntax.Keywords() {
		if strings.HasPrefix(k, trimmed) {
			candidates = append(candidates, k+" ")
		}
	}
	return candidates
}

// session is the state of one interactive proof.
type session struct {
	proof       *fitch.Proof
	out         io.Writer
	width       int
	prompt      string
	clearScreen bool
	logger      *zap.Logger
}

func newSession(out io.Writer, display check.Display, logger *zap.Logger) *session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &session{
		proof:       fitch.New(),
		out:         out,
		width:       display.Width,
		prompt:      display.Prompt,
		clearScreen: display.ClearScreen,
		logger:      logger,
	}
}

// load replays a script into the session. Failed commands are reported
// and skipped.
func (s *session) load(engine *internal.Engine, filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading script: %w", err)
	}
	result := engine.Replay(filename, src)
	s.proof = result.Proof
	if len(result.Issues) > 0 {
		fmt.Fprint(s.out, formatter.FormatIssues(result.Issues, strings.Split(string(src), "\n")))
	}
	s.logger.Debug("Script loaded", zap.String("file", filename), zap.Int("issues", len(result.Issues)))
	return nil
}

func (s *session) greet() {
	fmt.Fprintln(s.out, titleText.Sprint("fitch")+" - natural deduction for propositional logic")
	fmt.Fprintln(s.out, noticeText.Sprint("Type 'help' for the list of commands, 'quit' or Ctrl-D to leave."))
	if !s.proof.IsEmpty() {
		fmt.Fprintln(s.out)
		s.show()
	}
}

func (s *session) farewell() {
	fmt.Fprintln(s.out, farewells[rand.Intn(len(farewells))])
}

// handle executes one input line. It returns false once the session
// should end.
func (s *session) handle(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}

	cmd, err := syntax.ParseCommand(line)
	if err != nil {
		s.syntaxError(line, err)
		return true
	}
	s.logger.Debug("Command", zap.String("command", cmd.String()))

	switch cmd.Kind {
	case syntax.CommandQuit:
		s.farewell()
		return false
	case syntax.CommandShow:
		s.show()
	case syntax.CommandLatex:
		s.latex()
	case syntax.CommandHelp:
		s.help(cmd.Topic)
	default:
		if _, err := internal.Execute(s.proof, cmd); err != nil {
			s.error(err)
			return true
		}
		if s.clearScreen {
			fmt.Fprint(s.out, clearScreen)
		}
		s.show()
	}
	return true
}

func (s *session) show() {
	if s.proof.IsEmpty() {
		fmt.Fprintln(s.out, noticeText.Sprint("The proof is empty."))
		return
	}
	fmt.Fprint(s.out, formatter.FormatProof(s.proof, s.width))
}

func (s *session) latex() {
	out, err := formatter.Latex(s.proof)
	if err != nil {
		s.error(err)
		return
	}
	fmt.Fprintln(s.out, noticeText.Sprint("% Requires:"))
	fmt.Fprint(s.out, formatter.LatexPreamble)
	fmt.Fprintln(s.out)
	fmt.Fprint(s.out, out)
}

func (s *session) error(err error) {
	fmt.Fprintln(s.out, errorText.Sprint("error: ")+err.Error())
}

// syntaxError points at the offending character of the line the user
// just typed after the prompt.
func (s *session) syntaxError(line string, err error) {
	var serr *syntax.SyntaxError
	if errors.As(err, &serr) {
		offset := serr.Offset
		if offset > len(line) {
			offset = len(line)
		}
		pad := utf8.RuneCountInString(s.prompt) + utf8.RuneCountInString(line[:offset])
		fmt.Fprintln(s.out, strings.Repeat(" ", pad)+errorText.Sprint("^"))
		fmt.Fprintln(s.out, errorText.Sprint("error: ")+serr.Msg)
		return
	}
	s.error(err)
}

func (s *session) help(topic string) {
	if topic != "" {
		info, _ := syntax.LookupRule(topic)
		fmt.Fprintf(s.out, "%s (%s) %s\n", titleText.Sprint(info.Name), info.Symbol, info.Args)
		fmt.Fprintf(s.out, "  %s\n", info.Summary)
		fmt.Fprintf(s.out, "  spellings: %s\n", strings.Join(info.Spellings, " "))
		return
	}

	fmt.Fprintln(s.out, titleText.Sprint("Commands"))
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	for _, c := range commandHelp {
		fmt.Fprintf(w, "  %s\t%s\n", c[0], c[1])
	}
	_ = w.Flush()
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, titleText.Sprint("Rules"))
	writeRules(s.out)
}

var commandHelp = [][2]string{
	{"premise <formula>", "add a premise"},
	{"assume <formula>", "open a box with an assumption"},
	{"copy <n>", "repeat a visible step"},
	{"discharge", "close the innermost box (alias: close)"},
	{"rule <name> <args>", "apply an inference rule"},
	{"undo", "remove the last step"},
	{"show", "print the proof"},
	{"latex", "export the finished proof as LaTeX"},
	{"help [rule]", "show this help or the details of a rule"},
	{"quit", "leave the session (alias: exit)"},
}
