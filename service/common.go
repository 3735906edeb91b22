package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"gorm.io/gorm"

	"inkwell/app/repositories"
	"inkwell/config"
)

// openDatabase connects to the relational store and brings its schema up to date
func openDatabase(cfg config.Config) (*gorm.DB, error) {
	db, err := repositories.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		repositories.Close(db)
		return nil, err
	}
	return db, nil
}

// openSessions opens the badger session store, creating its directory
func openSessions(cfg config.Config) (*badger.DB, error) {
	if cfg.SessionStore != "" {
		if err := os.MkdirAll(cfg.SessionStore, 0755); err != nil {
			return nil, fmt.Errorf("failed to create session store directory: %w", err)
		}
	}
	return repositories.OpenSessionStore(cfg.SessionStore)
}

// openPersistentSessions is openSessions for commands that make no sense
// against an in-memory store.
func openPersistentSessions(cfg config.Config) (*badger.DB, error) {
	if cfg.SessionStore == "" {
		return nil, fmt.Errorf("session_store is empty; sessions are kept in memory")
	}
	return openSessions(cfg)
}

// confirm asks a yes/no question, defaulting to no
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
