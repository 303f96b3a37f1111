package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hrygo/agendabot/internal/profile"
	"github.com/hrygo/agendabot/internal/version"
	"github.com/hrygo/agendabot/plugin/ptime"
	"github.com/hrygo/agendabot/server"
	"github.com/hrygo/agendabot/server/timezone"
	"github.com/hrygo/agendabot/store"
	"github.com/hrygo/agendabot/store/db"
)

var (
	rootCmd = &cobra.Command{
		Use:   "agendabot",
		Short: "Agenda em português: transforma mensagens do Telegram e WhatsApp em eventos de calendário.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	resolveCmd = &cobra.Command{
		Use:   "resolve <text>",
		Short: "Resolve the date, time and title of a message",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}

	titleCmd = &cobra.Command{
		Use:   "title <text>",
		Short: "Extract the event title from a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, map[string]string{"title": ptime.ExtractEventTitle(args[0])})
		},
	}

	timezoneCmd = &cobra.Command{
		Use:   "timezone",
		Short: "Manage user timezone preferences",
	}

	timezoneSetCmd = &cobra.Command{
		Use:   "set <user> <zone>",
		Short: "Store a user's timezone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withResolver(cmd.Context(), func(r *timezone.Resolver, _ *profile.Profile) error {
				if err := r.SetPreference(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"userId": args[0], "timezone": args[1]})
			})
		},
	}

	timezoneGetCmd = &cobra.Command{
		Use:   "get <user>",
		Short: "Show the timezone a user resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withResolver(cmd.Context(), func(r *timezone.Resolver, _ *profile.Profile) error {
				locale, _ := cmd.Flags().GetString("locale")
				return printJSON(cmd, map[string]string{"userId": args[0], "timezone": r.Resolve(args[0], locale)})
			})
		},
	}
)

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("port", 8081)

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver (sqlite or postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name(aka. DSN)")

	for _, key := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("agendabot")
	viper.AutomaticEnv()

	resolveCmd.Flags().String("user", "", "user id (Telegram id or WhatsApp JID)")
	resolveCmd.Flags().String("locale", "", "locale hint, e.g. pt-BR or an IANA zone")
	resolveCmd.Flags().String("now", "", "reference instant in RFC 3339 (default: now)")
	timezoneGetCmd.Flags().String("locale", "", "locale hint, e.g. pt-BR or an IANA zone")

	timezoneCmd.AddCommand(timezoneSetCmd, timezoneGetCmd)
	rootCmd.AddCommand(serveCmd, resolveCmd, titleCmd, timezoneCmd)
}

func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:   viper.GetString("mode"),
		Addr:   viper.GetString("addr"),
		Port:   viper.GetInt("port"),
		Data:   viper.GetString("data"),
		Driver: viper.GetString("driver"),
		DSN:    viper.GetString("dsn"),
	}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Version = version.GetCurrentVersion(p.Mode)
	return p, nil
}

func openStore(ctx context.Context, p *profile.Profile) (*store.Store, error) {
	dbDriver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, err
	}
	s := store.New(dbDriver, p)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, errors.Wrap(err, "failed to migrate")
	}
	return s, nil
}

// withResolver opens the store, loads stored preferences and runs fn.
func withResolver(ctx context.Context, fn func(*timezone.Resolver, *profile.Profile) error) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	s, err := openStore(ctx, p)
	if err != nil {
		return err
	}
	defer s.Close()

	r := timezone.NewResolver(
		timezone.WithPreferenceStore(s),
		timezone.WithDefaultZone(p.DefaultTimezone),
	)
	if _, err := r.Warm(ctx); err != nil {
		return err
	}
	return fn(r, p)
}

func runServe(ctx context.Context) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}
	s, err := openStore(ctx, p)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(ctx, p, s, slog.Default())
	if err != nil {
		_ = s.Close()
		return err
	}

	printGreetings(p)
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func runResolve(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	locale, _ := cmd.Flags().GetString("locale")
	nowFlag, _ := cmd.Flags().GetString("now")

	var ref time.Time
	if nowFlag != "" {
		t, err := time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			return errors.Wrap(err, "--now must be RFC 3339")
		}
		ref = t
	}

	return withResolver(cmd.Context(), func(r *timezone.Resolver, p *profile.Profile) error {
		svc := ptime.NewService(r, ptime.WithDefaultTime(p.DefaultEventHour, p.DefaultEventMinute))
		ev, err := svc.Resolve(cmd.Context(), ptime.RawUtterance{Text: args[0], UserID: userID, LocaleHint: locale}, ref)
		if err != nil {
			return err
		}
		return printJSON(cmd, ev)
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printGreetings(p *profile.Profile) {
	fmt.Printf("agendabot %s started successfully!\n", p.Version)
	if p.IsDev() {
		fmt.Fprintf(os.Stderr, "Development mode is enabled\n")
		fmt.Fprintf(os.Stderr, "Database driver: %s\nDSN: %s\n", p.Driver, p.DSN)
	}
	fmt.Printf("Data directory: %s\n", p.Data)
	if p.Addr == "" {
		fmt.Printf("Listening on http://localhost:%d\n", p.Port)
	} else {
		fmt.Printf("Listening on http://%s:%d\n", p.Addr, p.Port)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
