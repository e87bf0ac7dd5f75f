package client

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// style colours one kind of CLI output. Without colour support the text is
// wrapped in prefix and suffix instead.
type style struct {
	color  *color.Color
	prefix string
	suffix string
}

func (s style) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return s.prefix + text + s.suffix
	}
	return s.color.Sprint(text)
}

func (s style) Sprintf(format string, a ...any) string {
	return s.Sprint(fmt.Sprintf(format, a...))
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	styleSuccess   = style{color: color.New(color.FgGreen)}
	styleError     = style{color: color.New(color.FgRed)}
	styleWarning   = style{color: color.New(color.FgYellow)}
	styleInfo      = style{color: color.New(color.FgCyan)}
	styleHighlight = style{color: color.New(color.FgCyan, color.Bold), prefix: "'", suffix: "'"}
	styleMuted     = style{color: color.New(color.FgHiBlack), prefix: "(", suffix: ")"}
	styleCommand   = style{color: color.New(color.FgYellow), prefix: "`", suffix: "`"}
)

const (
	markOK   = "✓"
	markFail = "✗"
	markNext = "→"
)
