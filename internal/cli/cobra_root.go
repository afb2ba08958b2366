package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"locked-todo/internal/auth"
	"locked-todo/internal/config"
	"locked-todo/internal/logging"
	"locked-todo/internal/services"
)

// PlatformFactory builds the authentication platform for a session
type PlatformFactory func(cfg *config.Config, in io.Reader, out io.Writer) auth.Platform

// PasscodePlatformFactory prompts for the configured passcode on the terminal
func PasscodePlatformFactory(cfg *config.Config, in io.Reader, out io.Writer) auth.Platform {
	return auth.NewPasscodePlatform(cfg.Auth.PasscodeHash, cfg.Auth.MaxAttempts, in, out)
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	loader   *config.Loader
	config   *config.Config
	logger   *zap.Logger
	cleanup  func()
	platform PlatformFactory

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, in io.Reader, out, errOut io.Writer) *RootCommand {
	root := &RootCommand{
		loader:   loader,
		logger:   zap.NewNop(),
		cleanup:  func() {},
		platform: PasscodePlatformFactory,
		in:       bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
	}

	root.cmd = &cobra.Command{
		Use:   "lt",
		Short: "A todo list that asks for authentication before every change",
		Long: `Locked Todo (lt) keeps a list of short tasks for the length of one session.
Adding, completing, editing and deleting a task each require authentication.

EXAMPLES:
  lt passcode hash                         # Hash a passcode for LT_AUTH_PASSCODE_HASH
  lt status                                # Show whether authentication is available
  lt shell                                 # Start a session

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  LT_CONFIG_FILE                           YAML config file
  LT_AUTH_PROMPT                           Authentication prompt
  LT_AUTH_FALLBACK_LABEL                   Passcode prompt label (default: Use passcode)
  LT_AUTH_PASSCODE_HASH                    bcrypt hash of the passcode
  LT_AUTH_MAX_ATTEMPTS                     Failed attempts before lockout (default: 5)
  LT_AUTH_TIMEOUT                          Time allowed per authentication (default: none)
  LT_VALIDATION_TASK_TEXT_MAX              Max task text length (default: 255)
  LT_INTENT_POLICY                         reject or queue a second pending action (default: reject)
  LT_APP_TIMEOUT                           Time allowed per shell command (default: 60s)
  LT_APP_VERBOSE                           Enable verbose logging (default: false)
  LT_DEBUG                                 Enable debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}
	root.cmd.SetIn(root.in)
	root.cmd.SetOut(out)
	root.cmd.SetErr(errOut)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// SetPlatformFactory replaces the authentication platform
func (r *RootCommand) SetPlatformFactory(factory PlatformFactory) {
	r.platform = factory
}

// SetArgs sets the arguments used instead of os.Args
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer func() {
		r.cleanup()
		r.cleanup = func() {}
	}()
	return r.cmd.ExecuteContext(ctx)
}

// Config returns the configuration loaded for the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Auth configuration
	flags.String("auth-prompt", "", "Authentication prompt (overrides LT_AUTH_PROMPT)")
	flags.Duration("auth-timeout", 0, "Time allowed per authentication (overrides LT_AUTH_TIMEOUT)")
	flags.Int("auth-max-attempts", 0, "Failed attempts before lockout (overrides LT_AUTH_MAX_ATTEMPTS)")

	// Validation configuration
	flags.Int("task-text-max-length", 0, "Maximum task text length (overrides LT_VALIDATION_TASK_TEXT_MAX)")

	// Controller configuration
	flags.String("intent-policy", "", "reject or queue a second pending action (overrides LT_INTENT_POLICY)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Time allowed per shell command that does not authenticate (overrides LT_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose logging (overrides LT_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Tasks exist only until the session ends.

Type help inside the shell for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runShell(cmd.Context())
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether authentication is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			platform := r.platform(r.config, r.in, r.out)
			gate := auth.NewGate(cmd.Context(), platform, r.config, r.logger)
			printCapability(r.out, gate.CheckCapability())
			return nil
		},
	}

	passcodeCmd := &cobra.Command{
		Use:   "passcode",
		Short: "Manage the fallback passcode",
	}

	hashCmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash a passcode read from standard input",
		Long: `Read a passcode from the first line of standard input and print its bcrypt hash.

Example:
  echo 2468 | lt passcode hash
  export LT_AUTH_PASSCODE_HASH='<printed hash>'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := r.in.ReadString('\n')
			if err != nil && err != io.EOF {
				return NewErrorHandler().Handle("read passcode", err)
			}
			hash, err := auth.HashPasscode(strings.TrimRight(line, "\r\n"))
			if err != nil {
				return NewErrorHandler().Handle("hash passcode", err)
			}
			fmt.Fprintln(r.out, hash)
			return nil
		},
	}
	passcodeCmd.AddCommand(hashCmd)

	r.cmd.AddCommand(
		shellCmd,
		statusCmd,
		passcodeCmd,
	)
}

// runShell wires a fresh store, gate and controller for one session
func (r *RootCommand) runShell(ctx context.Context) error {
	repo, err := config.OpenStore(r.config)
	if err != nil {
		return err
	}
	defer repo.Close()

	platform := r.platform(r.config, r.in, r.out)
	gate := auth.NewGate(ctx, platform, r.config, r.logger)
	controller := services.NewTaskListController(repo, gate, r.config, r.logger)

	app := NewApp(controller, r.in, r.out, r.config, r.logger)
	return app.Run(ctx)
}

// setup loads configuration with flag overrides and installs the logger
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := r.loader.LoadWithOverrides(r.getOverridesFromFlags(cmd))
	if err != nil {
		return err
	}
	r.config = cfg

	logger, restore, err := logging.Install(cfg.Application.Verbose)
	if err != nil {
		return err
	}
	r.logger = logger
	r.cleanup = restore

	logging.Debugf("configuration loaded: intent policy %s", cfg.Controller.IntentPolicy)
	return nil
}

// getOverridesFromFlags collects the flags the user actually set
func (r *RootCommand) getOverridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	if flags.Changed("auth-prompt") {
		v, _ := flags.GetString("auth-prompt")
		overrides.AuthPrompt = &v
	}
	if flags.Changed("auth-timeout") {
		v, _ := flags.GetDuration("auth-timeout")
		overrides.AuthTimeout = &v
	}
	if flags.Changed("auth-max-attempts") {
		v, _ := flags.GetInt("auth-max-attempts")
		overrides.AuthMaxAttempts = &v
	}
	if flags.Changed("task-text-max-length") {
		v, _ := flags.GetInt("task-text-max-length")
		overrides.TaskTextMaxLength = &v
	}
	if flags.Changed("intent-policy") {
		v, _ := flags.GetString("intent-policy")
		v = strings.ToLower(v)
		overrides.IntentPolicy = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
