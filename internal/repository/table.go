package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/repository/postgres"
	"github.com/iamasit07/connect4-engine/internal/repository/sqlite"
)

// Table is a durable table of solved positions.
type Table interface {
	Lookup(ctx context.Context, key uint64) (int, bool, error)
	Store(ctx context.Context, key uint64, score int) error
	Count(ctx context.Context) (int, error)
	Close() error
}

type postgresTable struct {
	*postgres.PositionRepo
}

func (t postgresTable) Close() error {
	return t.DB.Close()
}

// OpenTable opens the table selected by cfg.TableDriver. It returns a nil
// Table when the driver is none.
func OpenTable(ctx context.Context, cfg *config.Config) (Table, error) {
	switch cfg.TableDriver {
	case config.TableDriverNone:
		return nil, nil

	case config.TableDriverSQLite:
		path := cfg.TablePath
		if path == "" {
			var err error
			if path, err = sqlite.DefaultPath(); err != nil {
				return nil, fmt.Errorf("resolve table path: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite table: %w", err)
		}
		log.Info().Str("component", "table").Str("path", path).Msg("using sqlite position table")
		return store, nil

	case config.TableDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres table needs DATABASE_URL")
		}
		db, err := postgres.InitDB(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info().Str("component", "table").Msg("using postgres position table")
		return postgresTable{postgres.NewPositionRepo(db)}, nil
	}
	return nil, fmt.Errorf("unknown table driver %q", cfg.TableDriver)
}
