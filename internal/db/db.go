package db

import (
	"errors"
	"fmt"
	"time"

	"json2sql/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrConnection is returned when the database file cannot be opened.
var ErrConnection = errors.New("db: connection failed")

// SamplesTable is the default table for polled error samples.
const SamplesTable = "error_samples"

// AristaDB wraps the local SQLite event database.
type AristaDB struct {
	DB *gorm.DB
}

// SampleFilter narrows SearchTable. Zero values match everything.
type SampleFilter struct {
	Interface string
	Since     time.Time
	Until     time.Time
	Limit     int
}

// Open connects to the database at path and migrates the sample tables.
func Open(path string, debug bool) (*AristaDB, error) {
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, path, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, path, err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, path, err)
	}

	if err := gdb.AutoMigrate(&models.ErrorSample{}, &models.InterfaceState{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &AristaDB{DB: gdb}, nil
}

func (d *AristaDB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateTable runs CREATE TABLE IF NOT EXISTS with the given name and
// column list, e.g. "test(x)". The fragment is not quoted or escaped.
func (d *AristaDB) CreateTable(fragment string) error {
	return d.DB.Exec("CREATE TABLE IF NOT EXISTS " + fragment).Error
}

// RemoveTable runs DROP TABLE IF EXISTS. The name is not quoted or escaped.
func (d *AristaDB) RemoveTable(name string) error {
	return d.DB.Exec("DROP TABLE IF EXISTS " + name).Error
}

func (d *AristaDB) TableExists(name string) (bool, error) {
	var n int64
	err := d.DB.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n).Error
	return n > 0, err
}

func (d *AristaDB) table(name string) string {
	if name == "" {
		return SamplesTable
	}
	return name
}

// InsertRow stores one sample in table (SamplesTable if empty).
func (d *AristaDB) InsertRow(row *models.ErrorSample, table string) error {
	if row.PolledAt.IsZero() {
		row.PolledAt = time.Now().UTC()
	}
	return d.DB.Table(d.table(table)).Create(row).Error
}

// SearchTable returns samples matching filter, newest first.
func (d *AristaDB) SearchTable(filter SampleFilter, table string) ([]models.ErrorSample, error) {
	q := d.DB.Table(d.table(table))
	if filter.Interface != "" {
		q = q.Where("interface = ?", filter.Interface)
	}
	if !filter.Since.IsZero() {
		q = q.Where("polled_at >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("polled_at <= ?", filter.Until)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var samples []models.ErrorSample
	err := q.Order("polled_at desc, id desc").Find(&samples).Error
	return samples, err
}

// LatestSamples returns the newest sample of every interface.
func (d *AristaDB) LatestSamples() ([]models.ErrorSample, error) {
	var samples []models.ErrorSample
	latest := d.DB.Model(&models.ErrorSample{}).Select("MAX(id)").Group("interface")
	err := d.DB.Where("id IN (?)", latest).Order("interface asc").Find(&samples).Error
	return samples, err
}

func (d *AristaDB) LoadStates() (map[string]models.InterfaceState, error) {
	var states []models.InterfaceState
	if err := d.DB.Order("interface asc").Find(&states).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.InterfaceState, len(states))
	for _, s := range states {
		out[s.Interface] = s
	}
	return out, nil
}

func (d *AristaDB) States() ([]models.InterfaceState, error) {
	var states []models.InterfaceState
	err := d.DB.Order("interface asc").Find(&states).Error
	return states, err
}

// Transaction runs fn against a store bound to one database transaction.
// The transaction is rolled back if fn returns an error.
func (d *AristaDB) Transaction(fn func(tx *AristaDB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&AristaDB{DB: tx})
	})
}

// SaveState upserts the tracking row of one interface.
func (d *AristaDB) SaveState(state *models.InterfaceState) error {
	return d.DB.Save(state).Error
}
