package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/MKhiriev/go-user-service/internal/adapter"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
)

type App struct {
	adapter   adapter.ServerAdapter
	session   SessionStore
	buildInfo models.AppBuildInfo

	out    io.Writer
	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, session SessionStore, buildInfo models.AppBuildInfo, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter:   serverAdapter,
		session:   session,
		buildInfo: buildInfo,
		out:       out,
		logger:    logger,
	}
}

// Run executes one subcommand. Errors are rendered to the output and
// returned so that the caller can set the exit code.
func (a *App) Run(ctx context.Context, args []string) error {
	err := a.run(ctx, args)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(a.out, renderError(err))
	}
	return err
}

func (a *App) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, renderUsage())
		return ErrNoCommand
	}

	command, args := args[0], args[1:]
	switch command {
	case "health":
		return a.health(ctx)
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "profile":
		return a.profile(ctx)
	case "update":
		return a.update(ctx, args)
	case "logout":
		return a.logout()
	case "version":
		fmt.Fprintln(a.out, renderBuildInfo(a.buildInfo))
		return nil
	case "help", "-h", "--help":
		fmt.Fprintln(a.out, renderUsage())
		return nil
	default:
		fmt.Fprintln(a.out, renderUsage())
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (a *App) health(ctx context.Context) error {
	body, err := a.adapter.Health(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderMessage(body))
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	var req models.RegisterRequest

	fs := a.newFlagSet("register")
	fs.StringVar(&req.FirstName, "first", "", "first name")
	fs.StringVar(&req.LastName, "last", "", "last name")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.adapter.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderAccount(resp))
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	var req models.LoginRequest

	fs := a.newFlagSet("login")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		return err
	}

	if err = a.session.Save(a.adapter.Token()); err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderAccount(resp))
	return nil
}

func (a *App) profile(ctx context.Context) error {
	if err := a.restoreSession(); err != nil {
		return err
	}

	user, err := a.adapter.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderUser("Profile", user))
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.newFlagSet("update")
	firstName := fs.String("first", "", "new first name")
	lastName := fs.String("last", "", "new last name")
	email := fs.String("email", "", "new email")
	password := fs.String("password", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags given on the command line are sent.
	var update models.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "first":
			update.FirstName = firstName
		case "last":
			update.LastName = lastName
		case "email":
			update.Email = email
		case "password":
			update.Password = password
		}
	})
	if update == (models.ProfileUpdate{}) {
		return ErrNothingToApply
	}

	if err := a.restoreSession(); err != nil {
		return err
	}

	previous := a.adapter.Token()
	resp, err := a.adapter.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	if token := a.adapter.Token(); token != previous {
		a.logger.Debug().Msg("storing rotated session")
		if err = a.session.Save(token); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out, renderAccount(resp))
	return nil
}

func (a *App) logout() error {
	if err := a.session.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, renderMessage("Logged out"))
	return nil
}

func (a *App) restoreSession() error {
	token, err := a.session.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return adapter.ErrNoSession
	}

	a.adapter.SetToken(token)
	return nil
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}
