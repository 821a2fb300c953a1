// Package printer renders controller output for the command line.
package printer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"bookslib/pkg/types"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

// Printer writes results to out and failures to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// New returns a printer; nil writers default to stdout and stderr.
func New(out, errOut io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{out: out, errOut: errOut}
}

// Success prints a success message in green with a checkmark prefix
func (p *Printer) Success(format string, a ...any) {
	green.Fprintf(p.out, "✓ %s\n", fmt.Sprintf(format, a...))
}

// Info prints an informational message in the default color
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.out, "⚠️  %s\n", fmt.Sprintf(format, a...))
}

// Step prints a step message with emphasis
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintf(p.out, "→ %s\n", fmt.Sprintf(format, a...))
}

// Error prints a formatted error with explanation and suggestions to errOut
// and returns a plain error carrying the title, for cobra.
func (p *Printer) Error(title, explanation string, suggestions []string) error {
	red.Fprintf(p.errOut, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(p.errOut, "\n%s\n", explanation)
	}
	if len(suggestions) > 0 {
		fmt.Fprintf(p.errOut, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(p.errOut, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(p.errOut, "Either:\n")
			for i, s := range suggestions {
				fmt.Fprintf(p.errOut, "  %d. %s\n", i+1, s)
			}
		}
	}
	return fmt.Errorf("%s", title)
}

// Outcome prints a settled operation. A failure is rendered as the error
// banner and returned as an error.
func (p *Printer) Outcome(o types.OpResponse) error {
	if o.State != "failed" {
		switch {
		case o.Op == "list":
			p.Items(o.Items)
		case o.TxID != "":
			p.Success("%s confirmed (tx %s)", o.Op, o.TxID)
		default:
			p.Success("%s confirmed", o.Op)
		}
		return nil
	}
	return p.Error(o.Op+" failed", o.Reason, suggestionsFor(o.Kind))
}

// Items prints the available items in fetched order; nothing but a note when empty.
func (p *Printer) Items(items []string) {
	if len(items) == 0 {
		faint.Fprintln(p.out, "no items available")
		return
	}
	for i, it := range items {
		fmt.Fprintf(p.out, "%3d. %s\n", i+1, it)
	}
}

// State prints a compact overview of the controller state.
func (p *Printer) State(st types.StateResponse) {
	if st.Connected {
		p.Success("connected as %s", st.Account)
	} else {
		msg := "no identity connected; operations are disabled"
		if st.SessionError != "" {
			msg += " (" + st.SessionError + ")"
		}
		p.Warning("%s", msg)
	}
	p.Info("registry: %s", st.Registry)
	p.Info("add:      author=%q title=%q copies=%q", st.Forms.AddItem.Author, st.Forms.AddItem.Title, st.Forms.AddItem.Copies)
	p.Info("checkout: itemId=%q", st.Forms.Checkout.ItemID)
	p.Info("return:   itemId=%q", st.Forms.Return.ItemID)
	if busy := busyOps(st.Busy); len(busy) > 0 {
		p.Step("pending: %s", strings.Join(busy, ", "))
	}
	if e := st.Error; e != nil {
		red.Fprintf(p.out, "✗ %s: %s\n", e.Op, e.Message)
	}
	if st.ShowResults {
		p.Items(st.AvailableItems)
	}
}

func busyOps(m map[string]bool) []string {
	var out []string
	for op, b := range m {
		if b {
			out = append(out, op)
		}
	}
	sort.Strings(out)
	return out
}

func suggestionsFor(kind string) []string {
	switch kind {
	case "network":
		return []string{"Check that the ledger node at --rpc-url is reachable."}
	case "malformed_input":
		return []string{"Correct the value and run the command again."}
	}
	return nil
}
