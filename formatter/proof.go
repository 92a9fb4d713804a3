package formatter

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gnoswap-labs/fitch/internal/fitch"
	"golang.org/x/term"
)

const (
	// DefaultWidth is used when no width is configured and the output is
	// not a terminal.
	DefaultWidth = 70
	minWidth     = 40
	indexWidth   = 3
)

// TerminalWidth returns the width of the terminal behind f, or
// DefaultWidth when f is not a terminal.
func TerminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// FormatProof draws proof as a Fitch diagram. Every line shows the step
// index, the proposition and its justification. Discharged boxes are
// framed, open boxes only get their top border. width is the total line
// width; values below a small minimum are raised to it.
func FormatProof(proof *fitch.Proof, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	p := &proofPrinter{width: width, indexWidth: indexWidth}
	if n := len(fmt.Sprint(proof.NextIndex() - 1)); n > p.indexWidth {
		p.indexWidth = n
	}

	for depth, scope := range proof.Scopes() {
		p.block(scope.Lines(), depth, false)
	}
	return p.b.String()
}

type proofPrinter struct {
	b          strings.Builder
	width      int
	indexWidth int
}

// block writes the lines of one scope at the given depth.
func (p *proofPrinter) block(lines []fitch.Line, depth int, closed bool) {
	if depth > 0 {
		p.border(depth, "┌", "┐")
	}
	for _, l := range lines {
		if box, ok := l.Step.Prop.(fitch.ProofBox); ok {
			p.block(box.Lines(), depth+1, true)
			continue
		}
		p.step(l, depth)
	}
	if depth > 0 && closed {
		p.border(depth, "└", "┘")
	}
}

func (p *proofPrinter) border(depth int, left, right string) {
	outer := strings.Repeat("│", depth-1)
	p.b.WriteString(strings.Repeat(" ", p.indexWidth+1))
	p.b.WriteString(borderStyle.Sprint(outer + left + strings.Repeat("─", p.content(depth)) + right + outer))
	p.b.WriteString("\n")
}

func (p *proofPrinter) step(l fitch.Line, depth int) {
	bars := strings.Repeat("│", depth)
	prop := l.Step.Prop.String()
	annotation := l.Step.Annotation()

	// one space of margin on each side of the content
	gap := p.content(depth) - 2 - utf8.RuneCountInString(prop) - utf8.RuneCountInString(annotation)
	if gap < 1 {
		gap = 1
	}

	p.b.WriteString(indexStyle.Sprintf("%*d", p.indexWidth, l.Index))
	p.b.WriteString(" ")
	p.b.WriteString(borderStyle.Sprint(bars))
	p.b.WriteString(" ")
	p.b.WriteString(prop)
	p.b.WriteString(strings.Repeat(" ", gap))
	p.b.WriteString(annotationStyle.Sprint(annotation))
	if depth > 0 {
		p.b.WriteString(" ")
		p.b.WriteString(borderStyle.Sprint(bars))
	}
	p.b.WriteString("\n")
}

// content returns the width between the borders at depth.
func (p *proofPrinter) content(depth int) int {
	n := p.width - (p.indexWidth + 1) - 2*depth
	if n < 0 {
		return 0
	}
	return n
}
