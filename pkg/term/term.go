// Package term is the terminal-controller collaborator spec.md §4.8
// calls for: it guarantees the process console is in non-canonical,
// echo-off mode while the core runs, and restores exactly the stashed
// attributes on shutdown. No example repo in the retrieval pack
// implements real console termios (bassosimone-risc32's pkg/vm/tty.go is
// a TCP-socket serial console, not a local terminal), so this package is
// built on golang.org/x/term, the idiomatic ecosystem surface for this
// exact contract, rather than hand-rolled ioctl calls. See DESIGN.md.
package term

import (
	"fmt"

	xterm "golang.org/x/term"

	"github.com/DiegoCivi/virtual-machine-LC3/pkg/vm"
)

// Controller stashes and restores the console's terminal attributes
// around a VM run. The scoped acquire/release pairing spec.md §4.8
// requires: Setup must be matched by exactly one Restore, with
// restoration executed even when the run fails.
type Controller struct {
	fd       int
	oldState *xterm.State
}

// NewController returns a controller for the console identified by fd
// (typically the file descriptor of stdin).
func NewController(fd int) *Controller {
	return &Controller{fd: fd}
}

// Setup stashes the console's current attributes, then switches it to
// raw mode with xterm.MakeRaw: non-canonical input with echo disabled,
// and also signal keys and output post-processing off. Fails with ErrTermiosCreation
// if the current attributes cannot be read, or ErrTermiosSetup if the
// new attributes cannot be applied.
func (c *Controller) Setup() error {
	old, err := xterm.GetState(c.fd)
	if err != nil {
		return fmt.Errorf("%w: %s", vm.ErrTermiosCreation, err)
	}
	c.oldState = old
	if _, err := xterm.MakeRaw(c.fd); err != nil {
		return fmt.Errorf("%w: %s", vm.ErrTermiosSetup, err)
	}
	return nil
}

// Restore re-applies the attributes stashed by Setup. It is a no-op if
// Setup was never called or never succeeded in stashing a state, so that
// callers can unconditionally defer it on every exit path (normal HALT,
// image-load failure, or instruction failure).
func (c *Controller) Restore() error {
	if c.oldState == nil {
		return nil
	}
	if err := xterm.Restore(c.fd, c.oldState); err != nil {
		return fmt.Errorf("%w: %s", vm.ErrTermiosSetup, err)
	}
	return nil
}
