package relstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docvoice/internal/domain/docmodel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sectionInsertBatch = 200

// GormStore is the MySQL-backed system of record.
type GormStore struct {
	db *gorm.DB
}

// Open connects, configures the pool and migrates the document tables.
func Open(ctx context.Context, dsn string) (*GormStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open mysql failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get mysql sql db failed: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping mysql failed: %w", err)
	}

	if err := db.AutoMigrate(
		&docmodel.Document{},
		&docmodel.DocumentVersion{},
		&docmodel.ShareSurface{},
		&docmodel.Section{},
		&docmodel.JobRecord{},
	); err != nil {
		return nil, fmt.Errorf("migrate document tables failed: %w", err)
	}

	return &GormStore{db: db}, nil
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) UpsertDocument(ctx context.Context, doc docmodel.Document) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "slug"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("upsert document failed: %w", err)
	}
	return nil
}

func (s *GormStore) UpsertVersion(ctx context.Context, version docmodel.DocumentVersion) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document_id", "status", "source_uri", "version"}),
	}).Create(&version).Error
	if err != nil {
		return fmt.Errorf("upsert doc version failed: %w", err)
	}
	return nil
}

func (s *GormStore) SetVersionStatus(ctx context.Context, versionID string, status docmodel.VersionStatus) error {
	err := s.db.WithContext(ctx).Model(&docmodel.DocumentVersion{}).
		Where("id = ?", versionID).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("set version status failed: %w", err)
	}
	return nil
}

func (s *GormStore) UpsertShareSurface(ctx context.Context, surface docmodel.ShareSurface) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"live_version_id", "page_slug", "page_url", "mode", "private"}),
	}).Create(&surface).Error
	if err != nil {
		return fmt.Errorf("upsert share surface failed: %w", err)
	}
	return nil
}

func (s *GormStore) GetShareSurfaceBySlug(ctx context.Context, slug string) (docmodel.ShareSurface, bool, error) {
	var surface docmodel.ShareSurface
	err := s.db.WithContext(ctx).Where("page_slug = ?", slug).First(&surface).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docmodel.ShareSurface{}, false, nil
	}
	if err != nil {
		return docmodel.ShareSurface{}, false, fmt.Errorf("get share surface by slug failed: %w", err)
	}
	return surface, true, nil
}

// ReplaceSections swaps a version's persisted chunks in one transaction so a
// concurrent reader never sees a half-written set.
func (s *GormStore) ReplaceSections(ctx context.Context, versionID string, sections []docmodel.Section) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doc_version_id = ?", versionID).Delete(&docmodel.Section{}).Error; err != nil {
			return err
		}
		if len(sections) == 0 {
			return nil
		}
		return tx.CreateInBatches(&sections, sectionInsertBatch).Error
	})
	if err != nil {
		return fmt.Errorf("replace sections failed: %w", err)
	}
	return nil
}

func (s *GormStore) UpsertJob(ctx context.Context, job docmodel.JobRecord) error {
	job.UpdatedAt = time.Now().UTC()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "document_id"}, {Name: "doc_version_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "error", "updated_at"}),
	}).Create(&job).Error
	if err != nil {
		return fmt.Errorf("upsert job failed: %w", err)
	}
	return nil
}
