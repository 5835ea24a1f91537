// Package auth resolves controller credentials and establishes a session.
//
// Credentials are taken from the first available source, in order: the
// --token flag, the --authtokenfile flag, the X_AUTH_TOKEN environment
// variable, the AUTH_TOKEN environment variable, and finally an interactive
// email/password prompt. A token that the controller rejects ends the run;
// only interactive login is retried.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables consulted for a token, in order.
const (
	EnvXAuthToken = "X_AUTH_TOKEN"
	EnvAuthToken  = "AUTH_TOKEN"
)

// ErrEmptyToken is returned when a token file has no content.
var ErrEmptyToken = errors.New("auth token file is empty")

// Source identifies where a credential came from.
type Source int

const (
	SourceInteractive Source = iota
	SourceTokenFlag
	SourceTokenFile
	SourceEnvXAuthToken
	SourceEnvAuthToken
)

func (s Source) String() string {
	switch s {
	case SourceTokenFlag:
		return "token-flag"
	case SourceTokenFile:
		return "token-file"
	case SourceEnvXAuthToken:
		return "env-" + EnvXAuthToken
	case SourceEnvAuthToken:
		return "env-" + EnvAuthToken
	default:
		return "interactive"
	}
}

// Options are the operator-supplied credential inputs.
type Options struct {
	Token     string
	TokenFile string

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Credential is the resolved credential. Token is empty for interactive.
type Credential struct {
	Source Source
	Token  string
	Path   string
}

// Interactive reports whether the credential requires a login prompt.
func (c Credential) Interactive() bool {
	return c.Source == SourceInteractive
}

// Describe names the source for the operator. It never includes the token.
func (c Credential) Describe() string {
	switch c.Source {
	case SourceTokenFlag:
		return "Auth-Token from CLI ARGS"
	case SourceTokenFile:
		return "Auth-Token from file " + c.Path
	case SourceEnvXAuthToken:
		return "environment variable " + EnvXAuthToken
	case SourceEnvAuthToken:
		return "environment variable " + EnvAuthToken
	default:
		return "interactive login"
	}
}

// Resolve picks the first available credential source.
func Resolve(opts Options) (Credential, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if opts.Token != "" {
		return Credential{Source: SourceTokenFlag, Token: opts.Token}, nil
	}

	if opts.TokenFile != "" {
		data, err := os.ReadFile(opts.TokenFile)
		if err != nil {
			return Credential{}, fmt.Errorf("reading auth token file: %w", err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return Credential{}, fmt.Errorf("%s: %w", opts.TokenFile, ErrEmptyToken)
		}
		return Credential{Source: SourceTokenFile, Token: token, Path: opts.TokenFile}, nil
	}

	if v, ok := lookup(EnvXAuthToken); ok && v != "" {
		return Credential{Source: SourceEnvXAuthToken, Token: v}, nil
	}
	if v, ok := lookup(EnvAuthToken); ok && v != "" {
		return Credential{Source: SourceEnvAuthToken, Token: v}, nil
	}

	return Credential{Source: SourceInteractive}, nil
}
