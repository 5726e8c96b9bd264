// Package printer reports ignored directories in dry-run mode
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/upsuper/deja-dup-auto-ignore/internal/utils"
)

// Printer writes one line (or JSON object) per ignored directory
type Printer struct {
	output         io.Writer
	count          int64
	useColors      bool
	jsonOutput     bool
	jsonStarted    bool
	markdownOutput bool
	markerColor    *color.Color
	logger         utils.Logger
	marshal        func(v any) ([]byte, error)
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output:      os.Stdout,
		markerColor: color.New(color.FgCyan),
		logger:      utils.NoopLogger{},
		marshal:     json.Marshal,
	}
}

// WithLogger sets the logger used to report entries that cannot be written
func (p *Printer) WithLogger(logger utils.Logger) *Printer {
	p.logger = utils.OrNoop(logger)
	return p
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	p.markdownOutput = enabled
	return p
}

// JSONDirEntry represents an ignored directory in JSON output
type JSONDirEntry struct {
	Path   string `json:"path"`
	Marker string `json:"marker,omitempty"`
}

// PrintDir reports dir. marker is the file a real run would create there,
// empty when it would leave the directory alone.
func (p *Printer) PrintDir(dir, marker string) {
	switch {
	case p.jsonOutput:
		data, err := p.marshal(JSONDirEntry{Path: dir, Marker: marker})
		if err != nil {
			p.logger.Error("Error marshaling JSON for %s: %v", dir, err)
			return
		}
		if !p.jsonStarted {
			fmt.Fprint(p.output, "[\n")
			p.jsonStarted = true
		} else {
			fmt.Fprint(p.output, ",\n")
		}
		fmt.Fprintf(p.output, "  %s", data)

	case p.markdownOutput:
		if marker != "" {
			fmt.Fprintf(p.output, "- `%s` (%s)\n", dir, marker)
		} else {
			fmt.Fprintf(p.output, "- `%s`\n", dir)
		}

	case marker == "":
		fmt.Fprintln(p.output, dir)

	default:
		label := "[" + marker + "]"
		if p.useColors {
			label = p.markerColor.Sprint(label)
		}
		fmt.Fprintf(p.output, "%s %s\n", dir, label)
	}
	p.count++
}

// Finalize completes any pending operations (like closing JSON array)
func (p *Printer) Finalize() {
	if !p.jsonOutput {
		return
	}
	if p.jsonStarted {
		fmt.Fprint(p.output, "\n]\n")
	} else {
		fmt.Fprint(p.output, "[]\n")
	}
}

// GetCount returns the number of directories printed
func (p *Printer) GetCount() int64 {
	return p.count
}
