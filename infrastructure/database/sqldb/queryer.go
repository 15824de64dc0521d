package sqldb

import (
	"context"
	"database/sql"
)

// Queryer cobre apenas leitura; a origem nunca é alterada pelo job
type Queryer interface {
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row
}
