package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidnexus/internal/navigation"
	"github.com/desertthunder/vidnexus/internal/repositories"
	"github.com/desertthunder/vidnexus/internal/services"
	"github.com/desertthunder/vidnexus/internal/session"
	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/desertthunder/vidnexus/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The session client is built on first use so commands like setup never touch the database.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	reader     *bufio.Reader

	db      *sql.DB
	ownsDB  bool
	cookies *repositories.CookieRepository
	cache   *repositories.NoteRepository
	jar     *session.Jar
	gateway *session.Gateway
	history *navigation.History
	notes   *services.NotesService
	auth    *services.AuthService
	api     *services.APIService
	engine  *tasks.ExportEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	// DB replaces the database named in Config. The caller keeps ownership.
	DB *sql.DB
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		db:         opts.DB,
	}
}

// SetLogger swaps the logger. Call it before the session client is built.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, notesCommand, exportCommand, apiCommand, tuiCommand, devCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// connect builds the session client: database, cookie jar, gateway, history and services.
func (r *Runner) connect() error {
	if r.gateway != nil {
		return nil
	}

	if err := r.config.Validate(); err != nil {
		return err
	}

	if r.db == nil {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		r.db, r.ownsDB = db, true
	} else if err := shared.RunMigrations(r.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.cookies = repositories.NewCookieRepository(r.db)
	r.cache = repositories.NewNoteRepository(r.db)

	var persister session.CookiePersister
	if r.config.Session.PersistCookies {
		persister = r.cookies
	}
	jar, err := session.NewJar(persister, r.logger)
	if err != nil {
		return err
	}

	store := session.NewStore()
	history := navigation.NewHistory(store, navigation.RootPath)

	gw, err := session.NewGateway(session.Options{
		BaseURL:    r.config.API.BaseURL,
		HTTPClient: r.httpClient,
		Jar:        jar,
		Navigator:  history,
		Store:      store,
		Logger:     r.logger,
	})
	if err != nil {
		return err
	}

	r.jar = jar
	r.gateway = gw
	r.history = history
	r.notes = services.NewNotesService(gw, repositories.NewNoteCacheAdapter(r.cache), r.logger)
	r.auth = services.NewAuthService(gw)
	r.api = services.NewAPIService(gw)
	r.engine = tasks.NewExportEngine(r.notes, r.logger)
	return nil
}

// Close releases the database when the runner opened it.
func (r *Runner) Close() error {
	if r.db != nil && r.ownsDB {
		err := r.db.Close()
		r.db = nil
		return err
	}
	return nil
}

// prompt asks for a value on the terminal. Secret values are read without echo when stdin is a terminal.
func (r *Runner) prompt(label string, secret bool) (string, error) {
	r.writePlain("%s: ", label)

	if f, ok := r.input.(*os.File); ok && secret && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		r.writePlain("\n")
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
		}
		return string(b), nil
	}

	if r.reader == nil {
		r.reader = bufio.NewReader(r.input)
	}
	line, err := r.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
