package formatter

import "github.com/fatih/color"

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	infoStyle    = color.New(color.FgHiBlue, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)

	indexStyle      = color.New(color.FgHiBlack)
	borderStyle     = color.New(color.FgBlue)
	annotationStyle = color.New(color.FgGreen)
)
