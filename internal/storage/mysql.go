package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	pkgerrors "github.com/pkg/errors"

	_ "github.com/go-sql-driver/mysql" //import for driver support
)

const tableSlots string = "slots"

type mySql struct {
	config struct {
		connectConfig
		Hostname string
		Port     string
		Username string
		Password string
		Database string
	}
	*sql.DB
	logger utilities.Logger
}

func NewMySql(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Storage
} {
	m := &mySql{logger: utilities.NewNullLogger()}
	for _, parameter := range parameters {
		switch v := parameter.(type) {
		case utilities.Logger:
			m.logger = v
		}
	}
	return m
}

func (s *mySql) Configure(envs map[string]string) error {
	s.config.configure(envs)
	s.config.Hostname, s.config.Port = "localhost", "3306"
	if databaseHost := envs["DATABASE_HOST"]; databaseHost != "" {
		s.config.Hostname = databaseHost
	}
	if databasePort := envs["DATABASE_PORT"]; databasePort != "" {
		s.config.Port = databasePort
	}
	if database := envs["DATABASE_NAME"]; database != "" {
		s.config.Database = database
	}
	if username := envs["DATABASE_USER"]; username != "" {
		s.config.Username = username
	}
	if password := envs["DATABASE_PASSWORD"]; password != "" {
		s.config.Password = password
	}
	return nil
}

func (s *mySql) Open(ctx context.Context) error {
	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s)/%s",
		s.config.Username, s.config.Password,
		net.JoinHostPort(s.config.Hostname, s.config.Port), s.config.Database)
	db, err := sql.Open("mysql", dataSourceName)
	if err != nil {
		return err
	}
	if err := connect(ctx, s.logger, "mysql", s.config.connectMaxTries,
		func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
			defer cancel()
			return db.PingContext(ctx)
		}); err != nil {
		_ = db.Close()
		return pkgerrors.Wrap(err, "error while connecting to mysql")
	}
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		slot_key VARCHAR(64) NOT NULL PRIMARY KEY,
		slot_value LONGTEXT NOT NULL
	);`, tableSlots)
	if _, err := db.ExecContext(ctx, query); err != nil {
		_ = db.Close()
		return pkgerrors.Wrap(err, "error while creating slots table")
	}
	s.DB = db
	return nil
}

func (s *mySql) Close(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		s.logger.Error(ctx, "error while closing sql: %s", err)
	}
	return nil
}

func (s *mySql) Read(ctx context.Context, key string) (string, error) {
	var value string

	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	query := fmt.Sprintf(`SELECT slot_value FROM %s WHERE slot_key = ?;`, tableSlots)
	if err := s.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *mySql) Write(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	query := fmt.Sprintf(`INSERT INTO %s (slot_key, slot_value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value);`, tableSlots)
	if _, err := s.ExecContext(ctx, query, key, value); err != nil {
		return err
	}
	return nil
}

func (s *mySql) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.timeout)
	defer cancel()
	query := fmt.Sprintf(`DELETE FROM %s WHERE slot_key = ?;`, tableSlots)
	if _, err := s.ExecContext(ctx, query, key); err != nil {
		return err
	}
	return nil
}
