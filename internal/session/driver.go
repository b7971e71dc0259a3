package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/hnrobert/credcheck/internal/auth"
	"github.com/hnrobert/credcheck/internal/config"
	"github.com/hnrobert/credcheck/internal/credstore"
	"github.com/hnrobert/credcheck/internal/logger"
)

// Driver runs one interactive login check against the store at StorePath.
type Driver struct {
	StorePath string
	Mode      config.StoreMode
	// HidePassword reads the password without echo when In is a terminal.
	HidePassword bool

	In  io.Reader
	Out io.Writer

	// Check defaults to auth.Check.
	Check func(password, hash string) error

	br *bufio.Reader
}

func New(storePath string, cfg config.Config, in io.Reader, out io.Writer) *Driver {
	return &Driver{
		StorePath:    storePath,
		Mode:         cfg.Store.Mode,
		HidePassword: cfg.Prompt.HidePassword,
		In:           in,
		Out:          out,
	}
}

// Run walks Start -> AwaitUsername -> CheckUsername -> AwaitPassword ->
// CheckPassword and prints exactly one outcome line. The password prompt is
// only shown for a username present in the store.
func (d *Driver) Run() Outcome {
	o := d.run()
	fmt.Fprintln(d.Out, o.Message())
	return o
}

func (d *Driver) run() Outcome {
	src, err := credstore.Open(d.StorePath)
	if err != nil {
		logger.Error("open store %q: %v", d.StorePath, err)
		return StoreUnavailable
	}
	if d.Mode == config.StoreSnapshot {
		snap, err := credstore.Snapshot(src)
		if err != nil {
			logger.Error("snapshot store %q: %v", d.StorePath, err)
			return StoreUnavailable
		}
		src = snap
	}

	fmt.Fprint(d.Out, PromptUsername)
	username := strings.TrimSpace(d.readLine())

	ok, err := credstore.UsernameExists(src, username)
	if err != nil {
		logger.Error("username lookup: %v", err)
		return Denied
	}
	if !ok {
		logger.Info("login denied: unknown username")
		return Denied
	}

	fmt.Fprint(d.Out, PromptPassword)
	password := strings.TrimSpace(d.readPassword())

	hash, found, err := credstore.HashFor(src, username)
	if err != nil {
		logger.Error("hash lookup: %v", err)
		return Denied
	}
	if !found {
		// Removed from the store between the two scans.
		logger.Warn("login denied: %q vanished from the store", username)
		return Denied
	}

	check := d.Check
	if check == nil {
		check = auth.Check
	}
	if err := check(password, hash); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Info("login denied for %q: %s", username, auth.HumanAuthError(err))
		} else {
			logger.Warn("login denied for %q: %s (%v)", username, auth.HumanAuthError(err), err)
		}
		return Denied
	}
	logger.Info("login granted for %q", username)
	return Granted
}

func (d *Driver) reader() *bufio.Reader {
	if d.br == nil {
		in := d.In
		if in == nil {
			in = os.Stdin
		}
		d.br = bufio.NewReader(in)
	}
	return d.br
}

// readLine returns one line without its terminator. EOF before any input
// yields an empty line.
func (d *Driver) readLine() string {
	line, err := d.reader().ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("read input: %v", err)
	}
	return strings.TrimRight(line, "\r\n")
}

func (d *Driver) readPassword() string {
	br := d.reader()
	if f, ok := d.In.(*os.File); ok && d.HidePassword && br.Buffered() == 0 && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		// The terminal swallowed the newline along with the echo.
		fmt.Fprintln(d.Out)
		if err != nil {
			logger.Warn("read password: %v", err)
			return ""
		}
		return string(b)
	}
	return d.readLine()
}
