package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"arbor/internal/domain"
	"arbor/internal/logging"
	"arbor/internal/ports"
)

// SQLiteRepository implements ports.FeatureRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.FeatureRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the arbor logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("ARBOR_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode. Connection-scoped pragmas go in the DSN
	// so every pooled connection gets them, not just the first.
	dsn := dbPath + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access (persistent, database-scoped)
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	// Auto-migrate the features table
	if err := db.AutoMigrate(&FeatureModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate features schema: %w", err)
		}
	}

	// Manually create the dependency edge table so the foreign keys cascade
	migrator := db.Migrator()
	if !migrator.HasTable(&FeatureDependencyModel{}) {
		if err := db.Exec(`
			CREATE TABLE IF NOT EXISTS feature_dependencies (
				feature_name TEXT NOT NULL,
				depends_on TEXT NOT NULL,
				created_at DATETIME,
				PRIMARY KEY (feature_name, depends_on),
				FOREIGN KEY (feature_name) REFERENCES features(name) ON UPDATE CASCADE ON DELETE CASCADE
			)
		`).Error; err != nil {
			return nil, fmt.Errorf("failed to create feature_dependencies table: %w", err)
		}
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

// Add inserts a feature and its dependency edges in one transaction
func (r *SQLiteRepository) Add(ctx context.Context, feature domain.Feature) error {
	model, deps := featureToModel(feature)

	return withRetry(func() error {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
			if len(deps) > 0 {
				if err := tx.Create(&deps).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if isDuplicateKey(err) {
			return domain.NewFeatureExistsError(feature.Name)
		}
		return err
	}, 3)
}

// Get returns a feature by name
func (r *SQLiteRepository) Get(ctx context.Context, name string) (*domain.Feature, error) {
	var model FeatureModel
	err := r.db.WithContext(ctx).First(&model, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewFeatureNotFoundError(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get feature %s: %w", name, err)
	}

	var deps []FeatureDependencyModel
	if err := r.db.WithContext(ctx).
		Where("feature_name = ?", name).
		Order("depends_on").
		Find(&deps).Error; err != nil {
		return nil, fmt.Errorf("failed to get dependencies for %s: %w", name, err)
	}

	feature := featureToDomain(model, deps)
	return &feature, nil
}

// List returns all features ordered by position then name
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Feature, error) {
	var models []FeatureModel
	if err := r.db.WithContext(ctx).
		Order("position, name").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}

	var deps []FeatureDependencyModel
	if err := r.db.WithContext(ctx).
		Order("depends_on").
		Find(&deps).Error; err != nil {
		return nil, fmt.Errorf("failed to list dependencies: %w", err)
	}

	features := make([]domain.Feature, 0, len(models))
	for _, model := range models {
		features = append(features, featureToDomain(model, deps))
	}
	return features, nil
}

// UpdateStatus sets the status of a feature
func (r *SQLiteRepository) UpdateStatus(ctx context.Context, name, status string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).
			Model(&FeatureModel{}).
			Where("name = ?", name).
			Update("status", status)
		if result.Error != nil {
			return fmt.Errorf("failed to update status for %s: %w", name, result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewFeatureNotFoundError(name)
		}
		return nil
	}, 3)
}

// Delete removes a feature; dependency edges cascade
func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Delete(&FeatureModel{}, "name = ?", name)
		if result.Error != nil {
			return fmt.Errorf("failed to delete feature %s: %w", name, result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewFeatureNotFoundError(name)
		}
		return nil
	}, 3)
}

// Close closes the underlying database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isDuplicateKey detects a primary key violation on insert
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
