// Package app wires startup: configuration, database, discovery, matching,
// migration, and the generated HTTP surface. Everything here runs once,
// sequentially, before the server accepts requests.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/autocrud/autocrud/internal/config"
	"github.com/autocrud/autocrud/internal/crud"
	"github.com/autocrud/autocrud/internal/db"
	"github.com/autocrud/autocrud/internal/discovery"
	"github.com/autocrud/autocrud/internal/models"
	"github.com/autocrud/autocrud/internal/schemas"
	log "github.com/sirupsen/logrus"
)

// shutdownTimeout bounds graceful shutdown after the context is canceled.
const shutdownTimeout = 5 * time.Second

// RunServer boots the auto-CRUD server and blocks until the context is
// canceled or the listener fails.
func RunServer(ctx context.Context, cfg config.AppConfig, defaultPort int) error {
	configPath := config.ResolveConfigPath(cfg.ConfigPath)

	dsn, errDSN := config.LoadDatabaseDSN(configPath)
	if errors.Is(errDSN, config.ErrMissingDatabaseDSN) {
		log.Warnf("no database dsn configured, using %s", db.DefaultSQLiteDSN)
		dsn = db.DefaultSQLiteDSN
	} else if errDSN != nil {
		return errDSN
	}

	conn, errOpen := db.Open(dsn)
	if errOpen != nil {
		return errOpen
	}
	log.Infof("connected to %s database", db.DialectName(conn))
	if db.IsSQLite(conn) {
		log.Warn("running on a local sqlite database")
	}

	loader, matched, errSetup := Setup(conn)
	if errSetup != nil {
		return errSetup
	}
	log.Infof("discovered %d models and %d schema sets, generated CRUD routes for %d keys",
		loader.ModelCount(), loader.SchemaSetCount(), len(matched))

	engine := BuildEngine(conn, matched)

	srvCfg := config.LoadServerConfig(configPath, defaultPort)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", srvCfg.Port),
		Handler: engine,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		if errServe := srv.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			serveErr <- errServe
		}
		close(serveErr)
	}()

	select {
	case errServe := <-serveErr:
		return errServe
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if errShutdown := srv.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("app: shutdown: %w", errShutdown)
	}
	return nil
}

// Setup runs discovery, matching, and table migration against an open
// connection and returns the populated loader with its matched models.
func Setup(conn *gorm.DB) (*discovery.Loader, []discovery.MatchedModel, error) {
	loader := discovery.NewLoader()
	loader.DiscoverModels(models.Units())
	loader.DiscoverSchemas(schemas.Units())
	matched := loader.Match()

	if errMigrate := db.Migrate(conn, loader.ModelValues()); errMigrate != nil {
		return nil, nil, errMigrate
	}
	return loader, matched, nil
}

// BuildEngine assembles the Gin engine: service metadata, liveness, and the
// generated CRUD routes.
func BuildEngine(conn *gorm.DB, matched []discovery.MatchedModel) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/", rootHandler(matched))
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Auto CRUD API is running"})
	})

	crud.Mount(engine, conn, matched)
	return engine
}

// rootHandler reports service metadata and the generated endpoints.
func rootHandler(matched []discovery.MatchedModel) gin.HandlerFunc {
	endpoints := make(map[string]string, len(matched))
	for _, m := range matched {
		endpoints[m.Key] = fmt.Sprintf("/%ss/", m.Key)
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Auto CRUD API",
			"info":      "CRUD APIs generated from discovered models and schemas",
			"endpoints": endpoints,
		})
	}
}
