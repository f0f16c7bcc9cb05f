package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

type DatabaseConfig interface {
	DBUrl() string
}

type DatabaseService interface {
	Close() error
	GetLayout() ([]byte, error)
	WriteLayout(ctx context.Context, layout []byte) error
}

type service struct {
	cfg DatabaseConfig
	db  *sql.DB
}

var dbInstance *service

func NewDatabaseService(cfg DatabaseConfig) DatabaseService {
	if dbInstance != nil {
		return dbInstance
	}

	db, err := sql.Open("sqlite3", cfg.DBUrl())
	if err != nil {
		panic(fmt.Sprintf("could not open database %s", err))
	}

	dbInstance = &service{cfg, db}

	_, err = db.Exec("CREATE TABLE IF NOT EXISTS layout (id INTEGER PRIMARY KEY AUTOINCREMENT, layout text NOT NULL)")
	if err != nil {
		panic(fmt.Sprintf("could not initialise database %s", err))
	}

	return dbInstance
}

func (s *service) Close() error {
	log.Printf("disconnected from database: %s", s.cfg.DBUrl())
	return s.db.Close()
}

func (s *service) GetLayout() ([]byte, error) {
	rows, err := s.db.Query("SELECT layout FROM layout WHERE id=0")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var layout []byte
	for rows.Next() {
		if err := rows.Scan(&layout); err != nil {
			return nil, err
		}
	}
	return layout, rows.Err()
}

func (s *service) WriteLayout(ctx context.Context, layout []byte) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	_, err = tx.Exec("INSERT INTO layout (id, layout) VALUES (0, ?) ON CONFLICT (id) DO UPDATE SET layout=?", layout, layout)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
