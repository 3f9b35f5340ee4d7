package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/vaultpass/toolbox/internal/client"
	"github.com/vaultpass/toolbox/internal/config"
	"github.com/vaultpass/toolbox/internal/crypto"
	"github.com/vaultpass/toolbox/internal/service"
)

// app carries the dependencies shared by every command.
type app struct {
	ctx    context.Context
	in     io.Reader
	out    io.Writer
	cfg    config.Config
	gen    *crypto.Generator
	hasher *crypto.Hasher
	lookup *service.LookupService
}

func newApp(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) *app {
	c := client.New(cfg.ClientEndpoints(), cfg.HTTPTimeout)
	return &app{
		ctx:    ctx,
		in:     in,
		out:    out,
		cfg:    cfg,
		gen:    crypto.NewGenerator(),
		hasher: crypto.NewHasher(crypto.DefaultArgon2Params()),
		lookup: service.NewLookupService(c, cfg.ProfileFallback),
	}
}

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(os.Stderr, cfg.Env, cfg.LogLevel))
	logConfigSources(envErr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(newApp(ctx, cfg, os.Stdin, os.Stdout), os.Args[1:]); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		var parseErr *flags.Error
		if errors.As(err, &parseErr) {
			os.Exit(2)
		}
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func logConfigSources(envErr error, cfg config.Config) {
	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	if cfg.ConfigFile == "" {
		slog.Debug("no config file, using defaults")
	} else {
		slog.Debug("loaded config file", "path", cfg.ConfigFile)
	}
}

// run parses args and executes the selected command.
func run(a *app, args []string) error {
	opts := newOptions(a)
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash|flags.PrintErrors)
	parser.Name = "toolbox"
	parser.LongDescription = "Password generation and public API lookups (CEP, currency quotes, random profiles)."

	_, err := parser.ParseArgs(args)
	return err
}
