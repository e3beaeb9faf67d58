package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Notifier prints transient user-visible messages, the console analogue of a
// toast. Fire and forget; nothing is retained.
type Notifier struct {
	out io.Writer
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Success(message string) {
	fmt.Fprintln(n.out, color.GreenString("✔ %s", message))
}

func (n *Notifier) Error(message string) {
	fmt.Fprintln(n.out, color.RedString("✖ %s", message))
}
