// Command backoffice is a terminal front end for the back-office client:
// log in, inspect the current session, and run tenant-scoped queries the
// same way the admin screens do.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-backoffice-client/authclient"
	"github.com/jrsteele09/go-backoffice-client/credentials"
	"github.com/jrsteele09/go-backoffice-client/gateway"
	"github.com/jrsteele09/go-backoffice-client/gqlclient"
	"github.com/jrsteele09/go-backoffice-client/internal/config"
	"github.com/jrsteele09/go-backoffice-client/internal/localstore"
	"github.com/jrsteele09/go-backoffice-client/navigation"
	"github.com/jrsteele09/go-backoffice-client/session"
	"github.com/jrsteele09/go-backoffice-client/tenant"
)

const usage = `usage: backoffice <command> [args]

commands:
  login <username> <password>     authenticate and persist the session
  register <username> <password>  create an account and persist the session
  whoami                          show the stored session
  query <tenant-id> <graphql>     run a tenant-scoped query
  logout                          clear the stored session
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg      config.Config
	creds    credentials.Store
	tenants  tenant.Store
	sessions *session.Context
	nav      *navigation.Memory
	auth     *authclient.Client
	gql      *gqlclient.Factory
	logger   zerolog.Logger
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	switch args[0] {
	case "login":
		return a.login(args[1:], a.auth.Login)
	case "register":
		return a.login(args[1:], a.auth.Register)
	case "whoami":
		return a.whoami()
	case "query":
		return a.query(args[1:])
	case "logout":
		a.auth.Logout()
		fmt.Println("logged out")
		return nil
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newApp(cfg config.Config) (*app, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	kv, err := openKV(cfg)
	if err != nil {
		return nil, err
	}

	creds := credentials.NewKVStore(kv)
	tenants := tenant.NewKVStore(kv)
	nav := navigation.NewMemory("/")

	sessions, err := session.NewContext(creds)
	if err != nil {
		return nil, err
	}

	gw, err := gateway.New(cfg.AdminAPIURL, creds, nav,
		gateway.WithTimeout(cfg.RequestTimeout),
		gateway.WithLoginPath(cfg.LoginPath),
		gateway.WithLogger(logger),
		gateway.WithUnauthorizedHook(sessions.Invalidate),
	)
	if err != nil {
		return nil, err
	}

	auth, err := authclient.New(gw, sessions, nav,
		authclient.WithLoginDestination(cfg.LoginPath),
		authclient.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	gql, err := gqlclient.NewFactory(cfg.TenantGraphQLURL, creds, tenants,
		gqlclient.WithHTTPClient(gw.NewHTTPClient()))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		creds:    creds,
		tenants:  tenants,
		sessions: sessions,
		nav:      nav,
		auth:     auth,
		gql:      gql,
		logger:   logger,
	}, nil
}

func openKV(cfg config.Config) (localstore.KV, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return localstore.OpenSQLiteKV(filepath.Join(cfg.DataFolder, "state.db"))
	default:
		return localstore.NewFileKV(filepath.Join(cfg.DataFolder, "state.json"))
	}
}

type authenticate func(ctx context.Context, creds authclient.Credentials) (*authclient.LoginResponse, error)

func (a *app) login(args []string, fn authenticate) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <username> <password>")
	}

	figure.NewFigure(a.cfg.AppName, "cybermedium", true).Print()
	fmt.Println()

	resp, err := fn(context.Background(), authclient.Credentials{
		Username: args[0],
		Password: args[1],
	})
	if err != nil {
		return err
	}

	fmt.Printf("signed in as %s\n", resp.UserInfo.Username)
	if expiry, ok := a.sessions.Current().ExpiresAt(); ok {
		fmt.Printf("session expires %s\n", expiry.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *app) whoami() error {
	current := a.sessions.Current()
	if !current.Authenticated() {
		fmt.Println("not signed in")
		return nil
	}

	fmt.Printf("user: %s\n", current.User.Username)
	if sub := current.Subject(); sub != "" {
		fmt.Printf("subject: %s\n", sub)
	}
	if tenantID := a.tenants.GetTenantID(); tenantID != "" {
		fmt.Printf("tenant: %s\n", tenantID)
	}
	return nil
}

func (a *app) query(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("expected <tenant-id> <graphql>")
	}

	// Entering a tenant scope mirrors navigating into /t/{id} in the UI.
	a.nav.Navigate("/t/" + args[0])
	tenantCtx, err := tenant.NewContext(a.nav, a.tenants)
	if err != nil {
		return err
	}
	a.logger.Debug().Str("tenant", tenantCtx.TenantID()).Msg("tenant resolved")

	var out json.RawMessage
	if err := a.gql.New().Run(context.Background(), args[1], nil, &out); err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
