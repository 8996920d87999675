package diag

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/thoriumlang/thc-sub002/loc"
)

// A Formatter renders a diagnostic message at a source position.
type Formatter interface {
	Format(pos loc.Pos, msg string) string
}

// DefaultFormatter renders the message, the numbered source lines
// with a caret underline below the first one, and the start position.
type DefaultFormatter struct{}

func (DefaultFormatter) Format(pos loc.Pos, msg string) string {
	if len(pos.Lines) == 0 {
		return msg
	}
	first, last := pos.Line[0], pos.Line[1]
	prefix := fmt.Sprintf("  %%%dd. ", len(strconv.Itoa(last)))
	width := len(fmt.Sprintf(prefix, last))
	start := pos.Col[0] - 1
	n := pos.Col[1] - pos.Col[0] + 1
	if pos.Multiline() || start+n > len(pos.Lines[0]) {
		n = len(pos.Lines[0]) - start
	}
	if n < 1 {
		n = 1
	}
	underline := strings.Repeat(" ", width+start) + strings.Repeat("^", n)
	if pos.Multiline() {
		underline += " °°°"
	}

	var s strings.Builder
	s.WriteString(msg)
	for i, line := range pos.Lines {
		s.WriteRune('\n')
		fmt.Fprintf(&s, prefix, first+i)
		s.WriteString(line)
		if i == 0 {
			s.WriteRune('\n')
			s.WriteString(underline)
		}
	}
	fmt.Fprintf(&s, "\non line %d, column %d", first, pos.Col[0])
	return s.String()
}

// PlainFormatter renders path:line.col: message.
type PlainFormatter struct{}

func (PlainFormatter) Format(pos loc.Pos, msg string) string {
	if pos.Line[0] == 0 {
		return msg
	}
	return fmt.Sprintf("%s:%d.%d: %s", pos.Path, pos.Line[0], pos.Col[0], msg)
}

// JSONFormatter renders one JSON object per diagnostic.
// Every object carries the ID of the run that produced it.
type JSONFormatter struct {
	BuildID string
}

// NewJSONFormatter returns a JSONFormatter with a fresh build ID.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{BuildID: uuid.NewString()}
}

type jsonDiagnostic struct {
	Build     string `json:"build"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
	Message   string `json:"message"`
}

func (f *JSONFormatter) Format(pos loc.Pos, msg string) string {
	data, err := json.Marshal(jsonDiagnostic{
		Build:     f.BuildID,
		Path:      pos.Path,
		Line:      pos.Line[0],
		Column:    pos.Col[0],
		EndLine:   pos.Line[1],
		EndColumn: pos.Col[1],
		Message:   msg,
	})
	if err != nil {
		panic("impossible: " + err.Error())
	}
	return string(data)
}
