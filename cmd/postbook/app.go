package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"postbook/internal/config"
	"postbook/internal/database"
	"postbook/internal/models"
	"postbook/internal/observability"
	"postbook/internal/repository"
	"postbook/internal/service"
	"postbook/internal/views"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const serviceName = "postbook"

// app holds what every subcommand needs once the root command has run its setup.
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	ownsDB   bool
	format   views.Format
	users    *service.UserService
	posts    *service.PostService
	shutdown func(context.Context) error
	connect  func(*config.Config) (*gorm.DB, error)
}

func newApp() *app {
	return &app{connect: database.Connect}
}

// run executes the command line in args and releases resources afterwards.
func run(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if closeErr := a.close(ctx); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	var format string

	root := &cobra.Command{
		Use:           "postbook",
		Short:         "Manage postbook users and posts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			f, err := views.ParseFormat(format)
			if err != nil {
				return err
			}
			a.format = f

			ctx := observability.WithCorrelationID(cmd.Context(), observability.NewCorrelationID())
			cmd.SetContext(ctx)
			return a.setup(ctx)
		},
	}
	root.PersistentFlags().StringVarP(&format, "format", "o", string(views.FormatJSON), "output format (json|yaml)")

	root.AddCommand(
		newSchemaCmd(a),
		newSeedCmd(a),
		newUserCmd(a),
		newPostCmd(a),
	)
	return root
}

// setup loads configuration and connects, unless a database was supplied.
func (a *app) setup(ctx context.Context) error {
	if a.db == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		a.cfg = cfg

		observability.ConfigureLogger(cfg.LogLevel, cfg.LogFormat)
		if err := models.SetBcryptCost(cfg.BcryptCost); err != nil {
			return err
		}

		shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
			ServiceName:  serviceName,
			Environment:  cfg.Env,
			Enabled:      cfg.TracingEnabled,
			Exporter:     cfg.TracingExporter,
			OTLPEndpoint: cfg.OTLPEndpoint,
			SamplerRatio: cfg.TracingSampleRatio,
		})
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		a.shutdown = shutdown

		db, err := a.connect(cfg)
		if err != nil {
			return err
		}
		a.db = db
		a.ownsDB = true
	}

	users := repository.NewUserRepository(a.db)
	posts := repository.NewPostRepository(a.db)
	a.users = service.NewUserService(users)
	a.posts = service.NewPostService(posts, users)
	return nil
}

// close flushes metrics and traces and closes a connection opened by setup.
func (a *app) close(ctx context.Context) error {
	var errs []error
	if a.cfg != nil && a.cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
		a.shutdown = nil
	}
	if a.ownsDB {
		if err := database.Close(a.db); err != nil {
			observability.Logger.Warn("closing database", slog.String("error", err.Error()))
		}
		a.db = nil
		a.ownsDB = false
	}
	return errors.Join(errs...)
}

func (a *app) print(cmd *cobra.Command, v interface{}) error {
	out, err := views.Encode(a.format, v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

// optionalID returns a pointer to the named uint flag's value if it was set.
func optionalID(cmd *cobra.Command, name string) (*uint, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	id, err := cmd.Flags().GetUint(name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
