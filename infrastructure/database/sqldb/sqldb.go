package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/vfg2006/billing-status-sync/internal/config"
)

type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	DriverName() string
}

type Connection struct {
	*sql.DB
	driver string
}

// NewConnection abre a conexão de leitura com a base de origem
func NewConnection(
	ctx context.Context,
	cfg config.Source,
) (*Connection, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão %s: %w", cfg.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao conectar em %s: %w", cfg.Host, err)
	}

	return &Connection{DB: db, driver: cfg.Driver}, nil
}

// Wrap usa um *sql.DB já aberto, como o do sqlmock nos testes
func Wrap(db *sql.DB, driver string) *Connection {
	return &Connection{DB: db, driver: driver}
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) DriverName() string {
	return c.driver
}

func (c *Connection) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, query, args...)
}

func (c *Connection) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.DB.QueryRowContext(ctx, query, args...)
}
