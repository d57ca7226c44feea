package objectstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	domainerrors "gisteam.backend/internal/domain/errors"
)

// Blob is one stored object in the sql backend.
type Blob struct {
	Path      string `gorm:"primaryKey;type:varchar(512)"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Blob) TableName() string { return "object_blobs" }

// SQLStore keeps objects as rows of a single table. It gives the blob
// contract on top of Postgres or SQLite; nothing relies on its stronger
// consistency.
type SQLStore struct {
	db *gorm.DB
}

// OpenSQLStore connects with the given driver ("postgres" or "sqlite") and
// migrates the blob table.
func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true})
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return NewSQLStore(db)
}

// NewSQLStore wraps an existing connection and migrates the blob table.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("migrate object_blobs: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) Put(ctx context.Context, path string, data []byte) error {
	blob := &Blob{Path: path, Data: data, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "path"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(blob).Error
	if err != nil {
		return domainerrors.Transient("sql put "+path, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	var blob Blob
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, domainerrors.Transient("sql get "+path, err)
	}
	return blob.Data, true, nil
}

func (s *SQLStore) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	err := s.db.WithContext(ctx).
		Model(&Blob{}).
		Where("path LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Pluck("path", &paths).Error
	if err != nil {
		return nil, domainerrors.Transient("sql list "+prefix, err)
	}
	return paths, nil
}

func (s *SQLStore) Delete(ctx context.Context, path string) (bool, error) {
	result := s.db.WithContext(ctx).Where("path = ?", path).Delete(&Blob{})
	if result.Error != nil {
		return false, domainerrors.Transient("sql delete "+path, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
