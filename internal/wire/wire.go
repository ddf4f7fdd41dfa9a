// Package wire provides dependency injection for the newsroom application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"os"
	"sync"

	"github.com/example/newsroom/internal/adapters/cli"
	"github.com/example/newsroom/internal/adapters/identity"
	"github.com/example/newsroom/internal/adapters/sqlite"
	"github.com/example/newsroom/internal/api"
	"github.com/example/newsroom/internal/app"
	"github.com/example/newsroom/internal/config"
	"github.com/example/newsroom/internal/db"
	"github.com/example/newsroom/internal/logging"
	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/ports/secondary"
)

var (
	cfg    *config.Config
	cfgMu  sync.Mutex
	local  *api.Services // services acting for the local session file
	remote *api.Services // services acting for bearer-token callers
	once   sync.Once
	apiOne sync.Once
)

// Configure sets the configuration used to build services. It must be
// called before the first service is requested; later calls have no effect
// on services that already exist.
func Configure(c *config.Config) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfg = c
	db.SetPath(c.DBPath)
}

// Config returns the active configuration, loading defaults when Configure
// was never called.
func Config() *config.Config {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	if cfg == nil {
		loaded, err := config.Load(config.LoadOptions{})
		if err != nil {
			logging.WithComponent("wire").Fatal().Err(err).Msg("failed to load configuration")
		}
		cfg = loaded
		db.SetPath(cfg.DBPath)
	}
	return cfg
}

// RundownService returns the singleton RundownService instance.
func RundownService() primary.RundownService {
	once.Do(initServices)
	return local.Rundowns
}

// ProgramService returns the singleton ProgramService instance.
func ProgramService() primary.ProgramService {
	once.Do(initServices)
	return local.Programs
}

// CommentService returns the singleton CommentService instance.
func CommentService() primary.CommentService {
	once.Do(initServices)
	return local.Comments
}

// TrashService returns the singleton TrashService instance.
func TrashService() primary.TrashService {
	once.Do(initServices)
	return local.Trash
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return local.Logs
}

// AuthService returns the singleton AuthService instance bound to the
// local session file.
func AuthService() primary.AuthService {
	once.Do(initServices)
	return local.Auth
}

// UserService returns the singleton UserService instance.
func UserService() primary.UserService {
	once.Do(initServices)
	return local.Users
}

// APIServices returns the services used by the HTTP API. They share the
// database with the CLI services but never read the local session file:
// callers are identified by their bearer token only.
func APIServices() *api.Services {
	apiOne.Do(func() {
		c := Config()
		database := mustDB()
		gateway := mustGateway(database, c, nil)
		remote = buildServices(database, c, gateway)
	})
	return remote
}

// DB returns the process-wide database connection.
func DB() *sql.DB {
	return mustDB()
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()
	database := mustDB()
	gateway := mustGateway(database, c, identity.NewFileStore(c.SessionFile))
	local = buildServices(database, c, gateway)
}

func buildServices(database *sql.DB, c *config.Config, gateway secondary.SessionGateway) *api.Services {
	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	programRepo := sqlite.NewProgramRepository(database)
	rundownRepo := sqlite.NewRundownRepository(database)
	blockRepo := sqlite.NewBlockRepository(database)
	itemRepo := sqlite.NewItemRepository(database)
	commentRepo := sqlite.NewCommentRepository(database)
	userRepo := sqlite.NewUserRepository(database)
	auditRepo := sqlite.NewAuditLogRepository(database)
	logWriter := sqlite.NewLogWriterAdapter(auditRepo)

	// Create services (primary ports implementation)
	return &api.Services{
		Rundowns: app.NewRundownService(programRepo, rundownRepo, blockRepo, itemRepo, gateway, logWriter, app.RundownOptions{
			DefaultAirTime: c.DefaultAirTime,
			Location:       c.Location(),
		}),
		Programs: app.NewProgramService(programRepo, logWriter),
		Comments: app.NewCommentService(commentRepo, rundownRepo, gateway, logWriter),
		Trash:    app.NewTrashService(rundownRepo, logWriter),
		Logs:     app.NewLogService(auditRepo),
		Auth:     app.NewAuthService(gateway, userRepo),
		Users:    app.NewUserService(userRepo, gateway, logWriter),
	}
}

func mustDB() *sql.DB {
	Config()
	database, err := db.GetDB()
	if err != nil {
		logging.WithComponent("wire").Fatal().Err(err).Msg("failed to initialize database")
	}
	return database
}

func mustGateway(database *sql.DB, c *config.Config, store identity.TokenStore) *identity.Gateway {
	gateway, err := identity.NewGateway(sqlite.NewUserRepository(database), identity.Config{
		Secret:   c.JWTSecret,
		TokenTTL: c.TokenTTL,
	}, store)
	if err != nil {
		logging.WithComponent("wire").Fatal().Err(err).Msg("failed to initialize session gateway")
	}
	return gateway
}

// RundownAdapter returns a new RundownAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func RundownAdapter() *cli.RundownAdapter {
	return RundownAdapterWithOutput(os.Stdout)
}

// RundownAdapterWithOutput returns a new RundownAdapter writing to the given output.
func RundownAdapterWithOutput(out io.Writer) *cli.RundownAdapter {
	return cli.NewRundownAdapter(RundownService(), out)
}

// ProgramAdapter returns a new ProgramAdapter writing to stdout.
func ProgramAdapter() *cli.ProgramAdapter {
	return cli.NewProgramAdapter(ProgramService(), os.Stdout)
}

// CommentAdapter returns a new CommentAdapter writing to stdout.
func CommentAdapter() *cli.CommentAdapter {
	return cli.NewCommentAdapter(CommentService(), os.Stdout)
}

// TrashAdapter returns a new TrashAdapter writing to stdout.
func TrashAdapter() *cli.TrashAdapter {
	return cli.NewTrashAdapter(TrashService(), os.Stdout)
}

// AuthAdapter returns a new AuthAdapter writing to stdout.
func AuthAdapter() *cli.AuthAdapter {
	return cli.NewAuthAdapter(AuthService(), UserService(), os.Stdout)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cli.LogAdapter {
	return cli.NewLogAdapter(LogService(), os.Stdout)
}

// Desk returns a new interactive desk writing to out.
func Desk(out io.Writer) *cli.Desk {
	return cli.NewDesk(RundownService(), out)
}
