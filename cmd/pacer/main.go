package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/pacer/internal/calendar"
	"github.com/alexanderramin/pacer/internal/cli"
	"github.com/alexanderramin/pacer/internal/config"
	"github.com/alexanderramin/pacer/internal/db"
	"github.com/alexanderramin/pacer/internal/feed"
	"github.com/alexanderramin/pacer/internal/httpapi"
	"github.com/alexanderramin/pacer/internal/logging"
	"github.com/alexanderramin/pacer/internal/metrics"
	"github.com/alexanderramin/pacer/internal/notify"
	"github.com/alexanderramin/pacer/internal/repository"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/alexanderramin/pacer/internal/session"
	"github.com/mattn/go-isatty"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("PACER_CONFIG"))
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Open database
	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	slotRepo := repository.NewSQLiteScheduleRepo(database)
	configRepo := repository.NewSQLiteNotificationConfigRepo(database)
	firedRepo := repository.NewSQLiteFiredReminderRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	clock := service.SystemClock(loc)
	m := metrics.New()

	// NATS is optional: without it change events and notifications stay local.
	var nc *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err = nats.Connect(cfg.NATS.URL, nats.Name("pacer"))
		if err != nil {
			return fmt.Errorf("connecting to nats: %w", err)
		}
		defer nc.Close()
	}

	opts := []service.Option{
		service.WithClock(clock),
		service.WithLogger(logger),
		service.WithObservers(service.NewZapUseCaseObserver(logger), m),
	}
	dispatcher := notify.Fanout{notify.NewLogDispatcher(logger)}
	if nc != nil {
		opts = append(opts, service.WithChangeNotifier(feed.NewNATSNotifier(nc, logger)))
		dispatcher = append(dispatcher, notify.NewNATSDispatcher(nc))
	}

	// Wire services
	notifySvc := service.NewConfigService(configRepo, opts...)
	dashboardSvc := service.NewDashboardService(taskRepo, slotRepo, opts...)
	snapshots := feed.NewStoreSource(taskRepo, slotRepo, notifySvc)

	app := &cli.App{
		UserID:    cfg.User.ID,
		Now:       clock,
		Tasks:     service.NewTaskService(taskRepo, opts...),
		Schedule:  service.NewScheduleService(slotRepo, uow, opts...),
		Records:   service.NewRecordService(taskRepo, slotRepo, uow, dispatcher, opts...),
		Dashboard: dashboardSvc,
		Notify:    notifySvc,
		Import:    service.NewImportService(uow, opts...),
		Snapshots: snapshots,
	}

	// Detect interactive terminal for forms and the watch view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.Serve = func(ctx context.Context) error {
		sess := session.New(cfg.User.ID, snapshots, dispatcher, firedRepo,
			session.WithTickInterval(cfg.Reminder.Tick),
			session.WithPollInterval(cfg.Reminder.Poll),
			session.WithClock(clock),
			session.WithLogger(logger),
			session.WithObserver(m),
		)
		server, err := httpapi.NewServer(httpapi.Services{Dashboard: dashboardSvc, Config: notifySvc}, m.Handler(), logger, cfg.HTTP.Addr)
		if err != nil {
			return err
		}
		return serve(ctx, logger, sess, server, nc, snapshots)
	}

	app.Calendar = func(ctx context.Context) (cli.SlotPusher, error) {
		srv, err := calendar.NewService(ctx, cfg.Calendar.Credentials, cfg.Calendar.Token)
		if err != nil {
			return nil, err
		}
		return calendar.NewPusher(srv, cfg.Calendar.ID, loc, logger), nil
	}
	app.CalendarAuth = func(ctx context.Context, in io.Reader, out io.Writer) error {
		oc, err := calendar.OAuthConfig(cfg.Calendar.Credentials)
		if err != nil {
			return err
		}
		return calendar.Authorize(ctx, oc, cfg.Calendar.Token, in, out)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

// serve runs the reminder session and the HTTP API until ctx is cancelled.
// With NATS configured, change events from other processes refresh the
// session immediately.
func serve(ctx context.Context, logger *zap.Logger, sess *session.Session, server *httpapi.Server, nc *nats.Conn, source feed.Source) error {
	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer sess.Stop()

	if nc != nil {
		sub, err := feed.NewNATSWatcher(nc, source, logger).Watch(ctx, sess.UserID(), sess.Replace)
		if err != nil {
			return fmt.Errorf("watching changes: %w", err)
		}
		defer func() { _ = sub.Unsubscribe() }()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
