package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/yampost/internal/cliconfig"
	logAdapter "github.com/bft-labs/yampost/pkg/log"
	"github.com/bft-labs/yampost/pkg/yammer"
)

const longHelp = `Post messages to a Yammer network from the command line.

The application key and secret identify your registered Yammer app. A token
is obtained either from a pre-issued access code or by logging in with a
username and password. Configure via file, env (YAMPOST_*), or flags.`

var exampleUsage = strings.TrimSpace(`
  yampost send --access-code <code> "deploy finished"
  yampost send --group 1234 --topic release --topic ops "v2.1 is out"
  yampost token --username alice@example.com --password-file ~/.yampost/pw
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries state shared by the subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	log     zerolog.Logger
	out     io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := newCLI(os.Stdout)
	if err := c.rootCommand().ExecuteContext(ctx); err != nil {
		c.log.Error().Err(err).Msg("yampost")
		stop()
		os.Exit(1)
	}
}

func newCLI(out io.Writer) *cli {
	cfg := cliconfig.DefaultConfig()
	return &cli{
		cfg: cfg,
		log: cliconfig.Logger(cfg.LogLevel),
		out: out,
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "yampost",
		Short:         "Post messages to Yammer",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg := &c.cfg
	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.yampost/config.toml)")

	pf.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, fmt.Sprintf("service root (defaults to %s; override only for testing or proxies)", cliconfig.DefaultBaseURL))
	if err := pf.MarkHidden("base-url"); err != nil {
		c.log.Info().Err(err).Msg("failed to hide base-url flag")
	}

	pf.StringVar(&cfg.ApplicationKey, "application-key", cfg.ApplicationKey, "application (client) key")
	pf.StringVar(&cfg.ApplicationSecret, "application-secret", cfg.ApplicationSecret, "application (client) secret")
	pf.StringVar(&cfg.ApplicationSecretFile, "application-secret-file", cfg.ApplicationSecretFile, "read the application secret from a file")
	pf.StringVar(&cfg.Username, "username", cfg.Username, "login name for the login form flow")
	pf.StringVar(&cfg.Password, "password", cfg.Password, "password for the login form flow")
	pf.StringVar(&cfg.PasswordFile, "password-file", cfg.PasswordFile, "read the password from a file")
	pf.StringVar(&cfg.AccessCode, "access-code", cfg.AccessCode, "pre-issued access code (skips the login form)")
	pf.StringVar(&cfg.AccessCodeFile, "access-code-file", cfg.AccessCodeFile, "read the access code from a file")

	pf.StringVar(&cfg.TokenTransport, "token-transport", cfg.TokenTransport, "how the token is sent with posts: header or query")
	pf.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	pf.IntVar(&cfg.MessagesPerMinute, "messages-per-minute", cfg.MessagesPerMinute, "pace posts to at most this many per minute (0 disables)")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(c.sendCommand(), c.tokenCommand())
	return root
}

func (c *cli) sendCommand() *cobra.Command {
	var msg yammer.Message

	cmd := &cobra.Command{
		Use:   "send [flags] MESSAGE",
		Short: "Acquire a token and post a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg.Body = strings.Join(args, " ")

			client, err := c.connect(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Send(cmd.Context(), msg); err != nil {
				return fmt.Errorf("send message: %w", err)
			}
			c.log.Info().Str("group", msg.GroupID).Strs("topics", msg.Topics).Msg("message posted")
			return nil
		},
	}

	cmd.Flags().StringVar(&msg.GroupID, "group", "", "group id to post to (default: all company)")
	cmd.Flags().StringArrayVar(&msg.Topics, "topic", nil, "topic to tag the message with (repeatable, order kept)")
	return cmd
}

func (c *cli) tokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Acquire a token and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.connect(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			_, err = fmt.Fprintln(c.out, client.Token().Value())
			return err
		},
	}
}

// connect resolves configuration and builds a client holding a token.
func (c *cli) connect(cmd *cobra.Command) (*yammer.Client, error) {
	if err := c.loadConfig(cmd); err != nil {
		return nil, err
	}

	libCfg := c.cfg.LibraryConfig()
	client, err := yammer.New(cmd.Context(), libCfg, c.cfg.Strategy(),
		yammer.WithLogger(logAdapter.NewZerologAdapterWithLogger(c.log)),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// loadConfig applies file, env and secret files under the flags, then validates.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	} else if c.cfgPath != "" {
		return fmt.Errorf("load config: %s not found", c.cfgPath)
	}

	// Env overrides file but not flags.
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := cliconfig.LoadSecrets(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	c.log = cliconfig.Logger(c.cfg.LogLevel)
	c.log.Debug().Interface("config", c.cfg.Masked()).Msg("configuration")
	return nil
}
