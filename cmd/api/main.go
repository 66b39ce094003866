package main

import (
	"context"
	"database/sql"
	"errors"
	"expvar"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	// Import the pq driver so that it can register itself with the database/sql package.
	_ "github.com/lib/pq"

	"github.com/myk4040okothogodo/moviecatalog/internal/data"
	"github.com/myk4040okothogodo/moviecatalog/internal/jsonlog"
	"github.com/myk4040okothogodo/moviecatalog/internal/posters"
)

const version = "1.0.0"

// config holds all the configuration settings for the application. The values are read from command-line flags,
// which default to environment variables (optionally loaded from a .env file).
type config struct {
	port int
	env  string
	db   struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	// uploads.dir is where poster images are written and served from under /StaticFiles/.
	uploads struct {
		dir string
	}
	cors struct {
		trustedOrigins []string
	}
}

// application holds the dependencies for our HTTP handlers, helpers, and middleware.
type application struct {
	config  config
	logger  *jsonlog.Logger
	models  data.Models
	posters *posters.Store
}

func main() {
	// Load a .env file, if there is one, before reading the flags so its values can act as defaults.
	// Variables already set in the environment win.
	dotenvErr := godotenv.Load()

	var cfg config

	flag.IntVar(&cfg.port, "port", envInt("PORT", 4000), "API server port")
	flag.StringVar(&cfg.env, "env", envString("MOVIES_ENV", "development"), "Environment (development|staging|production)")

	flag.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("MOVIES_DB_DSN"), "PostgreSQL DSN")
	flag.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	flag.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m", "PostgreSQL max connection idle time")

	flag.StringVar(&cfg.uploads.dir, "upload-dir", envString("MOVIES_UPLOAD_DIR", "./uploads"), "Directory poster images are stored in and served from")

	// Any origin is allowed unless a list of trusted origins is given.
	cfg.cors.trustedOrigins = []string{"*"}
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated, * for any)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	if dotenvErr != nil && !errors.Is(dotenvErr, fs.ErrNotExist) {
		logger.PrintError(dotenvErr, map[string]string{"file": ".env"})
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()

	logger.PrintInfo("database connection pool established", nil)

	expvar.NewString("version").Set(version)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))

	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	app := &application{
		config:  cfg,
		logger:  logger,
		models:  data.NewModels(db),
		posters: posters.New(cfg.uploads.dir),
	}

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// openDB returns a sql.DB connection pool.
func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	// Passing a value less than or equal to 0 for either limit means there is no limit.
	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)

	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	// Establish a new connection within a 5 second deadline so a bad DSN fails at startup.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
