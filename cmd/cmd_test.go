package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/gnoswap-labs/fitch/check"
	"github.com/gnoswap-labs/fitch/internal"
	tt "github.com/gnoswap-labs/fitch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	color.NoColor = true
	logger = zap.NewNop()
}

func testSession(out *bytes.Buffer) *session {
	return newSession(out, check.Display{Width: 40, Prompt: "> "}, nil)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSessionModusPonens(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	s := testSession(&out)

	for _, line := range []string{"premise p -> q", "premise p", "rule ->e 1 2"} {
		assert.True(t, s.handle(line))
	}
	prop, err := s.proof.Prop(3)
	require.NoError(t, err)
	assert.Equal(t, "q", prop.String())
	assert.Contains(t, out.String(), "→e 1, 2")
	assert.NotContains(t, out.String(), clearScreen)
}

func TestSessionErrorsKeepProof(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	s := testSession(&out)

	require.True(t, s.handle("premise p"))
	out.Reset()

	assert.True(t, s.handle("rule ∧e_lhs 1"))
	assert.Contains(t, out.String(), "error: expected")
	assert.Equal(t, 2, int(s.proof.NextIndex()))

	out.Reset()
	assert.True(t, s.handle("premise p ∧"))
	assert.Equal(t, strings.Repeat(" ", utf8.RuneCountInString("> premise p ∧"))+"^\nerror: expected formula but got end of input\n", out.String())

	out.Reset()
	assert.True(t, s.handle("discharge"))
	assert.Contains(t, out.String(), "error: ")
}

func TestSessionClearsScreen(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	s := newSession(&out, check.Display{ClearScreen: true}, nil)
	s.handle("premise p")
	assert.True(t, strings.HasPrefix(out.String(), clearScreen))

	out.Reset()
	s.handle("show")
	assert.NotContains(t, out.String(), clearScreen)
}

func TestSessionLatex(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	s := testSession(&out)

	s.handle("assume p")
	out.Reset()
	s.handle("latex")
	assert.Contains(t, out.String(), "close all proof boxes")

	s.handle("discharge")
	s.handle("rule ->i 1")
	out.Reset()
	s.handle("latex")
	assert.Contains(t, out.String(), `\usepackage{logicproof}`)
	assert.Contains(t, out.String(), `p \to p & $\to_{I}$ 1`)
}

func TestSessionHelp(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	s := testSession(&out)

	s.handle("help")
	assert.Contains(t, out.String(), "premise <formula>")
	assert.Contains(t, out.String(), "proof by contradiction")
	assert.Contains(t, out.String(), "imply_e")

	out.Reset()
	s.handle("help mt")
	assert.Contains(t, out.String(), "modus tollens")
	assert.Contains(t, out.String(), "modus_tollens")
}

func TestSessionQuit(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	s := testSession(&out)

	assert.False(t, s.handle("quit"))
	assert.Contains(t, farewells, strings.TrimSpace(out.String()))
	assert.True(t, s.handle("   "))
}

func TestSessionLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "partial.fitch", "premise p\nassume q\ncopy 9\n")

	var out bytes.Buffer
	s := testSession(&out)
	require.NoError(t, s.load(internal.NewEngine(nil, nil), path))

	assert.Equal(t, 2, s.proof.Depth())
	assert.Contains(t, out.String(), "invalid-step")
	assert.Contains(t, out.String(), "open-scope")

	assert.Error(t, s.load(internal.NewEngine(nil, nil), filepath.Join(dir, "missing.fitch")))
}

func TestComplete(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"premise "}, complete("pr"))
	assert.ElementsMatch(t, []string{"close ", "copy "}, complete("c"))
	assert.Equal(t, []string{"rule neg_neg_e ", "rule neg_neg_i "}, complete("rule neg_neg"))
	assert.Nil(t, complete("premise p"))
	assert.Nil(t, complete("rule and_i 1"))
}

func TestHistoryPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "hist", historyPath("hist"))
	assert.True(t, strings.HasSuffix(historyPath(""), historyFile))
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "valid.fitch", "premise p\nrule neg_neg_i 1\n")
	writeFile(t, dir, "open.fitch", "# never closed\nassume p\n")
	writeFile(t, dir, "late.fitch", "assume p\ndischarge\npremise q\n")

	engine := internal.NewEngine(nil, nil)
	var out bytes.Buffer
	failed, err := runCheck(context.Background(), zap.NewNop(), engine, []string{dir}, check.ProcessFile, check.Options{}, nil, &out)
	require.NoError(t, err)
	assert.True(t, failed)

	text := out.String()
	assert.Contains(t, text, "error: open-scope")
	assert.Contains(t, text, "open.fitch:2:1")
	assert.Contains(t, text, "warning: late-premise")
	assert.NotContains(t, text, "valid.fitch")
	assert.True(t, strings.HasSuffix(text, "1 error(s), 1 warning(s)\n"))
}

func TestRunCheckWarningsOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "late.fitch", "assume p\ndischarge\npremise q\n")

	var out bytes.Buffer
	failed, err := runCheck(context.Background(), zap.NewNop(), internal.NewEngine(nil, nil), []string{path}, check.ProcessFile, check.Options{}, nil, &out)
	require.NoError(t, err)
	assert.False(t, failed)
	assert.Contains(t, out.String(), "late-premise")
}

func TestRunCheckStdin(t *testing.T) {
	stdin := strings.NewReader("premise p\nrule bogus 1\n")
	var out bytes.Buffer
	failed, err := runCheck(context.Background(), zap.NewNop(), internal.NewEngine(nil, nil), []string{"-"}, check.ProcessFile, check.Options{}, stdin, &out)
	require.NoError(t, err)
	assert.True(t, failed)
	assert.Contains(t, out.String(), "<stdin>:2:6")
	assert.Contains(t, out.String(), "2 | rule bogus 1")
}

func TestRunCheckJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "open.fitch", "assume p\n")

	checkJSONOutput = true
	defer func() { checkJSONOutput = false }()

	var out bytes.Buffer
	failed, err := runCheck(context.Background(), zap.NewNop(), internal.NewEngine(nil, nil), []string{path}, check.ProcessFile, check.Options{}, nil, &out)
	require.NoError(t, err)
	assert.True(t, failed)

	var decoded map[string][]tt.Issue
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded[path], 1)
	assert.Equal(t, internal.RuleOpenScope, decoded[path][0].Rule)
}

func TestRunCheckTimeout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.fitch", "premise p\n")

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := runCheck(ctx, zap.NewNop(), internal.NewEngine(nil, nil), []string{dir}, check.ProcessFile, check.Options{}, nil, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExportLatex(t *testing.T) {
	t.Parallel()
	engine := internal.NewEngine(nil, nil)

	var out, diag bytes.Buffer
	src := []byte("premise p\nrule neg_neg_i 1\n")
	require.NoError(t, exportLatex(engine, "p.fitch", src, true, &out, &diag))
	assert.True(t, strings.HasPrefix(out.String(), `\usepackage{amssymb}`))
	assert.Contains(t, out.String(), `\neg \neg p & $\neg\neg_{I}$ 1`)
	assert.Empty(t, diag.String())

	out.Reset()
	err := exportLatex(engine, "bad.fitch", []byte("assume p\n"), false, &out, &diag)
	assert.ErrorIs(t, err, errScriptHasErrors)
	assert.Empty(t, out.String())
	assert.Contains(t, diag.String(), "open-scope")
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), check.DefaultConfigFile)

	require.NoError(t, initConfigurationFile(path, false))
	config, err := check.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fitch", config.Name)
	assert.Equal(t, tt.SeverityWarning, config.Rules[internal.RuleLatePremise].Severity)
	assert.Len(t, config.Rules, len(internal.RuleNames()))

	assert.Error(t, initConfigurationFile(path, false))
	assert.NoError(t, initConfigurationFile(path, true))
}

func TestWriteRules(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	writeRules(&out)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 16)
	assert.Contains(t, lines[0], "and_i")

	out.Reset()
	writeDiagnostics(&out)
	assert.Contains(t, out.String(), "open-scope")
	assert.Contains(t, out.String(), "warning")
}

func TestRunWatch(t *testing.T) {
	dir := t.TempDir()
	engine := internal.NewEngine(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, engine, []string{dir}, out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "watching")
	}, 2*time.Second, 10*time.Millisecond)

	writeFile(t, dir, "proof.fitch", "premise p\n")
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "proof.fitch: ok")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
