// Package store persists the course catalog and processed scorecard uploads in Postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"scorekeeper/models"
	"scorekeeper/pkg/coursematch"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// DefaultCourses seeds an empty catalog.
var DefaultCourses = []string{
	"Tourist Trap", "Cherry Blossom", "Mars Gardens", "Shangri-La", "Atlantis",
	"Gardens of Babylon", "Alfheim", "Archipelago", "Labyrinth", "Bogey's Bonanza",
	"Tiki a Coco", "El Guerrero's Hideout", "20,000 Leagues", "Widow's Walk",
	"Olympus", "Quixote Valley", "Alice's Adventures in Wonderland",
}

// Store wraps a gorm connection.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Open connects to Postgres.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return New(db, logger), nil
}

// New wraps an existing connection.
func New(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// DB exposes the underlying connection.
func (s *Store) DB() *gorm.DB { return s.db }

// Migrate creates or updates the tables. Each model is migrated on its own so
// one failure does not block the other.
func (s *Store) Migrate() error {
	var errs []error
	for _, m := range []any{&models.Course{}, &models.ScorecardUpload{}} {
		if err := s.db.AutoMigrate(m); err != nil {
			s.logger.Warn("migration warning", "model", fmt.Sprintf("%T", m), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SeedCourses inserts any of names missing from the catalog.
func (s *Store) SeedCourses(ctx context.Context, names []string) error {
	db := s.db.WithContext(ctx)
	for _, name := range names {
		slug := models.Slugify(name)
		var cnt int64
		if err := db.Model(&models.Course{}).Where("slug = ?", slug).Count(&cnt).Error; err != nil {
			return fmt.Errorf("count course %s: %w", slug, err)
		}
		if cnt > 0 {
			continue
		}
		c := models.Course{Slug: slug, Name: name, Active: true}
		if err := db.Create(&c).Error; err != nil {
			return fmt.Errorf("seed course %s: %w", slug, err)
		}
		s.logger.Info("seeded course", "course_id", slug)
	}
	return nil
}

// ListCourses returns the active catalog ordered by name.
func (s *Store) ListCourses(ctx context.Context) ([]coursematch.Course, error) {
	var rows []models.Course
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	out := make([]coursematch.Course, len(rows))
	for i, r := range rows {
		out[i] = r.CatalogEntry()
	}
	return out, nil
}

// SaveUpload inserts or updates an upload record.
func (s *Store) SaveUpload(ctx context.Context, up *models.ScorecardUpload) error {
	if up.PublicID == uuid.Nil {
		up.PublicID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Save(up).Error; err != nil {
		return fmt.Errorf("save upload %s: %w", up.FileName, err)
	}
	return nil
}

// GetUpload loads an upload by its public id.
func (s *Store) GetUpload(ctx context.Context, id uuid.UUID) (*models.ScorecardUpload, error) {
	var up models.ScorecardUpload
	err := s.db.WithContext(ctx).Where("public_id = ?", id).First(&up).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get upload %s: %w", id, err)
	}
	return &up, nil
}

// ListUploads returns the newest uploads first, optionally only those needing review.
func (s *Store) ListUploads(ctx context.Context, reviewOnly bool, limit int) ([]models.ScorecardUpload, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.db.WithContext(ctx).Model(&models.ScorecardUpload{})
	if reviewOnly {
		q = q.Where("needs_review = ?", true)
	}
	var ups []models.ScorecardUpload
	if err := q.Order("id desc").Limit(limit).Find(&ups).Error; err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return ups, nil
}
