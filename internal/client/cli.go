// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/validators"
	"github.com/MKhiriev/notevault/models"
)

// CLI is the notevault command line. Every invocation opens the local
// storages, runs one command and closes them again, so the vault password
// only lives for the duration of a command unless `token watch` keeps the
// process running.
type CLI struct {
	root  *cobra.Command
	flags *config.StructuredConfig

	app *App

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	readPassword PasswordReader
	copyText     func(string) error
	validator    validators.Validator
	version      string

	logger *logger.Logger
}

// Option customises a CLI.
type Option func(*CLI)

// WithBuildInfo enables the --version flag.
func WithBuildInfo(info models.BuildInfo) Option {
	return func(c *CLI) { c.version = info.String() }
}

// WithIO replaces the standard streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(c *CLI) {
		c.stdin = stdin
		c.stdout = stdout
		c.stderr = stderr
	}
}

// WithPasswordReader replaces the terminal password prompt.
func WithPasswordReader(r PasswordReader) Option {
	return func(c *CLI) { c.readPassword = r }
}

// WithClipboard replaces the system clipboard used by `vault open --copy`.
func WithClipboard(copyText func(string) error) Option {
	return func(c *CLI) { c.copyText = copyText }
}

func NewCLI(log *logger.Logger, opts ...Option) *CLI {
	c := &CLI{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		copyText:  clipboard.WriteAll,
		validator: validators.NewInputValidator(),
		logger:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.readPassword == nil {
		c.readPassword = terminalPassword(c.stderr)
	}

	c.root = &cobra.Command{
		Use:           "notevault",
		Short:         "Password-protected notes vault",
		Long:          `notevault keeps notes behind a vault password and manages the account token and keys that go with them.`,
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context())
		},
	}
	c.root.SetIn(c.stdin)
	c.root.SetOut(c.stdout)
	c.root.SetErr(c.stderr)

	c.flags = config.BindFlags(c.root.PersistentFlags())

	c.root.AddCommand(
		c.vaultCommand(),
		c.noteCommand(),
		c.tokenCommand(),
		c.accountCommand(),
	)

	return c
}

// Run executes the command named by the process arguments and prints a
// readable error on failure.
func (c *CLI) Run() error {
	return c.Execute(context.Background(), os.Args[1:])
}

// Execute runs args as one command line.
func (c *CLI) Execute(ctx context.Context, args []string) error {
	defer c.close()

	c.root.SetArgs(args)
	err := c.root.ExecuteContext(ctx)
	if err != nil {
		c.printError(err)
	}
	return err
}

func (c *CLI) open(ctx context.Context) error {
	cfg, err := config.GetClientConfig(c.flags)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	c.app, err = NewApp(ctx, cfg, c.logger)
	return err
}

func (c *CLI) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		c.logger.Err(err).Str("func", "CLI.close").Msg("failed to close app")
	}
	c.app = nil
}

func (c *CLI) printError(err error) {
	msg, hint := describe(err)
	fmt.Fprintln(c.stderr, styleError.Sprint(markFail)+" "+msg)
	if hint != "" {
		fmt.Fprintln(c.stderr, styleInfo.Sprint(markNext)+" Try "+styleCommand.Sprint(hint))
	}
}

func (c *CLI) success(format string, a ...any) {
	fmt.Fprintln(c.stdout, styleSuccess.Sprint(markOK)+" "+fmt.Sprintf(format, a...))
}

func (c *CLI) password(given, prompt string, confirm bool) (string, error) {
	return resolvePassword(c.readPassword, given, prompt, confirm)
}
