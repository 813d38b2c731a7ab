package dbstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yiblet/eqplot/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath is the database file used when the sqlite backend is selected
// without an explicit path.
const DefaultPath = "equation_history.db"

// SQLiteStore is a SQLite-backed implementation of store.HistoryStore
type SQLiteStore struct {
	db     *gorm.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite-backed store at the specified path.
// It initializes the database schema and records the schema version.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&PlotRecordModel{}, &MetaModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := s.initMeta(); err != nil {
		return nil, fmt.Errorf("failed to init meta: %w", err)
	}

	return s, nil
}

// initMeta sets the schema version if not already present
func (s *SQLiteStore) initMeta() error {
	if _, err := s.Meta("schema_version"); err == nil {
		return nil
	}
	return s.db.Create(&MetaModel{Key: "schema_version", Value: SchemaVersion}).Error
}

// Meta retrieves a value from the meta table
func (s *SQLiteStore) Meta(key string) (string, error) {
	var model MetaModel
	if err := s.db.First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("meta key not found: %s", key)
		}
		return "", fmt.Errorf("failed to get meta: %w", err)
	}
	return model.Value, nil
}

// Load returns every record ordered by position
func (s *SQLiteStore) Load() ([]store.Record, error) {
	var models []PlotRecordModel
	if err := s.db.Order("position ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	records := make([]store.Record, len(models))
	for i := range models {
		records[i] = models[i].ToRecord()
	}
	return records, nil
}

// Save replaces the stored history with records in a single transaction
func (s *SQLiteStore) Save(records []store.Record) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&PlotRecordModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		if len(records) == 0 {
			return nil
		}

		models := make([]*PlotRecordModel, len(records))
		for i, r := range records {
			models[i] = fromRecord(i, r)
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("failed to write history: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Count returns the total number of stored records
func (s *SQLiteStore) Count() (int, error) {
	var count int64
	if err := s.db.Model(&PlotRecordModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return int(count), nil
}

// Location returns the database path
func (s *SQLiteStore) Location() string {
	return s.dbPath
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
