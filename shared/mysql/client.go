package mysql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Config holds MySQL connection configuration
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	Database  string
	Charset   string
	Collation string
}

// DSN builds the go-sql-driver connection string.
// parseTime makes DATE/DATETIME columns scan as time.Time.
func (c *Config) DSN() string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		c.User, c.Password, c.Host, c.Port, c.Database)
	if c.Charset != "" {
		dsn += "&charset=" + c.Charset
	}
	if c.Collation != "" {
		dsn += "&collation=" + c.Collation
	}
	return dsn
}

// ConnectionError wraps a failed connection handshake. The scheduler
// treats it as transient and retries after the configured interval.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return "failed to connect to MySQL: " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Client represents a MySQL database client. One export job owns one
// client for its whole lifetime; the connection pool is capped at a
// single connection because the exports run strictly in sequence.
type Client struct {
	db     *sqlx.DB
	config *Config
	logger *slog.Logger
}

// Connect opens and verifies a connection to MySQL
func Connect(config *Config, logger *slog.Logger) (*Client, error) {
	logger.Info("Connecting to MySQL",
		slog.String("host", config.Host),
		slog.Int("port", config.Port),
		slog.String("database", config.Database),
	)

	db, err := sqlx.Connect("mysql", config.DSN())
	if err != nil {
		logger.Error("Failed to connect to MySQL",
			slog.Any("error", err),
		)
		return nil, &ConnectionError{Err: err}
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("Failed to ping MySQL",
			slog.Any("error", err),
		)
		db.Close()
		return nil, &ConnectionError{Err: err}
	}

	logger.Info("Successfully connected to MySQL")

	return &Client{
		db:     db,
		config: config,
		logger: logger,
	}, nil
}

// QueryxContext executes a query and returns the rows
func (c *Client) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return c.db.QueryxContext(ctx, query, args...)
}

// Close closes the database connection. Safe to call more than once
// and on a client whose handshake never completed.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	c.logger.Info("Closing MySQL connection")

	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close MySQL connection",
			slog.Any("error", err),
		)
		return err
	}

	return nil
}
