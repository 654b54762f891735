package mariadb

import (
	"database/sql"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/c14220110/poliklinik-dashboard/config"
	_ "github.com/go-sql-driver/mysql"
)

var (
	db      *sql.DB
	connErr error
	once    sync.Once
)

// DSN builds username:password@tcp(host:port)/dbname?parseTime=true&loc=<zone>.
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, url.QueryEscape(cfg.Timezone))
}

// Connect membuka koneksi ke database MariaDB sekali per proses.
// Only the billing data source needs it; the service runs without a database
// when DATA_SOURCE=api.
func Connect(cfg *config.Config) (*sql.DB, error) {
	once.Do(func() {
		var err error
		db, err = sql.Open("mysql", DSN(cfg))
		if err != nil {
			connErr = fmt.Errorf("open mariadb: %w", err)
			return
		}
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetMaxOpenConns(10)

		if err = db.Ping(); err != nil {
			connErr = fmt.Errorf("ping mariadb: %w", err)
			return
		}
	})
	return db, connErr
}
