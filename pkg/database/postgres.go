package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Sarojsin/school-management-system-by-group/pkg/config"
)

// Stores bundles the four physically independent database pools. No
// connection, transaction or foreign key ever spans two of them; any
// cross-store link is a plain stored identifier.
type Stores struct {
	Public    *sqlx.DB
	Student   *sqlx.DB
	Teacher   *sqlx.DB
	Authority *sqlx.DB
}

// NewPostgres returns a configured PostgreSQL client for one store.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenStores connects to all four stores. A failure on any store closes the
// ones already opened; the portal cannot run degraded.
func OpenStores(cfg config.StoresConfig) (*Stores, error) {
	stores := &Stores{}

	open := []struct {
		name string
		cfg  config.DatabaseConfig
		dst  **sqlx.DB
	}{
		{config.StorePublic, cfg.Public, &stores.Public},
		{config.StoreStudent, cfg.Student, &stores.Student},
		{config.StoreTeacher, cfg.Teacher, &stores.Teacher},
		{config.StoreAuthority, cfg.Authority, &stores.Authority},
	}

	for _, entry := range open {
		db, err := NewPostgres(entry.cfg)
		if err != nil {
			stores.Close()
			return nil, fmt.Errorf("open %s store: %w", entry.name, err)
		}
		*entry.dst = db
	}

	return stores, nil
}

// Close releases every pool. Safe on partially opened stores.
func (s *Stores) Close() {
	for _, db := range []*sqlx.DB{s.Public, s.Student, s.Teacher, s.Authority} {
		if db != nil {
			_ = db.Close()
		}
	}
}
