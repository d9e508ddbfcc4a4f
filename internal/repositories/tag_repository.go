package repositories

import "catalogue/internal/models"

// TagRepository defines the interface for tag data access.
//
// Duplicate-name contract: Create signals Conflict when the name is
// already taken (strict creation); FirstOrCreate silently returns the
// existing tag instead (permissive reconciliation).
type TagRepository interface {
	List(offset, limit int) ([]models.Tag, int64, error)
	GetByID(id uint) (*models.Tag, error)
	FindByNames(names []string) ([]models.Tag, error)
	Create(tag *models.Tag) error
	FirstOrCreate(name string) (*models.Tag, error)
	Update(tag *models.Tag) error
	Delete(id uint) error
}
