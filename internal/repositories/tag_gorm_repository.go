package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"catalogue/internal/apperrors"
	"catalogue/internal/models"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// List retrieves one page of tags and the total tag count.
func (r *GORMTagRepository) List(offset, limit int) ([]models.Tag, int64, error) {
	var total int64
	if err := r.db.Model(&models.Tag{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	var tags []models.Tag
	if err := r.db.Order("id").Offset(offset).Limit(limit).Find(&tags).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, total, nil
}

// GetByID retrieves a single tag by its ID.
func (r *GORMTagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "Tag non trouvé")
		}
		return nil, fmt.Errorf("failed to get tag by ID %d: %w", id, err)
	}
	return &tag, nil
}

// FindByNames retrieves every tag whose name is in names (exact,
// case-sensitive match). Names with no tag are simply absent from the
// result; the caller decides whether that is an error.
func (r *GORMTagRepository) FindByNames(names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := r.db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to find tags by names: %w", err)
	}
	return tags, nil
}

// Create inserts a new tag. A name already in use signals Conflict.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	var existing models.Tag
	err := r.db.Where("name = ?", tag.Name).First(&existing).Error
	if err == nil {
		return apperrors.New(apperrors.Conflict, fmt.Sprintf("Le tag \"%s\" existe déjà.", tag.Name))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check tag name %q: %w", tag.Name, err)
	}
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// FirstOrCreate returns the tag named name, creating it when absent.
// Idempotent with respect to the name.
func (r *GORMTagRepository) FirstOrCreate(name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create tag %q: %w", name, err)
	}
	return &tag, nil
}

// Update persists the tag's fields.
func (r *GORMTagRepository) Update(tag *models.Tag) error {
	res := r.db.Save(tag)
	if res.Error != nil {
		return fmt.Errorf("failed to update tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, "Tag non trouvé")
	}
	return nil
}

// Delete removes the tag and its product associations in one
// transaction. Products keep existing; only the join rows go.
func (r *GORMTagRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.NotFound, "Tag non trouvé")
			}
			return fmt.Errorf("failed to get tag %d for deletion: %w", id, err)
		}
		if err := tx.Exec("DELETE FROM product_tags WHERE tag_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to clear associations of tag %d: %w", id, err)
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return fmt.Errorf("failed to delete tag %d: %w", id, err)
		}
		return nil
	})
}
