package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/newtron-network/wancost/pkg/util"
)

// Prompter reads operator answers from a line-oriented input. When the input
// is a terminal, passwords are read without echo.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewPrompter creates a prompter reading from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// Confirm asks question and blocks until the operator answers yes, y, no or
// n (any case). Any other answer, including surrounding whitespace, is
// rejected and asked again. A canceled ctx ends the wait with ctx.Err().
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintln(p.out, question, "(Y/N)?")
	for {
		fmt.Fprint(p.out, "Enter yes or no: ")
		answer, err := p.await(ctx, p.readLine, nil)
		if err != nil {
			return false, err
		}
		if yes, ok := ParseYesNo(answer); ok {
			return yes, nil
		}
		fmt.Fprintln(p.out, "Please enter yes or no to verify changes")
	}
}

// ParseYesNo maps an answer to a decision. ok is false for anything other
// than yes, y, no or n, compared case-insensitively.
func ParseYesNo(answer string) (yes, ok bool) {
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true, true
	case "no", "n":
		return false, true
	}
	return false, false
}

// Credentials prompts for an email and a password.
func (p *Prompter) Credentials(ctx context.Context) (string, string, error) {
	var email string
	for email == "" {
		fmt.Fprint(p.out, "login: ")
		line, err := p.await(ctx, p.readLine, nil)
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}

	fmt.Fprint(p.out, "Password: ")
	password, err := p.readPassword(ctx)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

type readResult struct {
	line string
	err  error
}

// await runs read in the background and returns its result, or ctx.Err()
// as soon as ctx is done. onCancel runs before returning on cancellation.
// An abandoned read keeps the input; the prompter must not be used after a
// cancellation.
func (p *Prompter) await(ctx context.Context, read func() (string, error), onCancel func()) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	done := make(chan readResult, 1)
	go func() {
		line, err := read()
		done <- readResult{line: line, err: err}
	}()

	select {
	case r := <-done:
		return r.line, r.err
	case <-ctx.Done():
		if onCancel != nil {
			onCancel()
		}
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	}
}

func (p *Prompter) readPassword(ctx context.Context) (string, error) {
	if p.fd < 0 {
		return p.await(ctx, p.readLine, nil)
	}

	// ReadPassword turns echo off; put the terminal back if we stop waiting.
	state, err := term.GetState(p.fd)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	restore := func() { _ = term.Restore(p.fd, state) }

	return p.await(ctx, func() (string, error) {
		data, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}, restore)
}

// readLine returns the next line without its line terminator. EOF before
// any data is util.ErrNoInput.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", util.ErrNoInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
