package services

import (
	"catalogue/internal/models"
	"catalogue/internal/repositories"
)

// TagPage is one page of the tag listing.
type TagPage struct {
	Tags        []models.Tag `json:"tags"`
	TotalTags   int64        `json:"totalTags"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
}

// TagService handles business logic related to tags.
type TagService struct {
	tagRepo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repositories.TagRepository) *TagService {
	return &TagService{
		tagRepo: tagRepo,
	}
}

// List returns one page of tags with the same pagination semantics as
// the product listing.
func (s *TagService) List(page, pageSize int) (*TagPage, error) {
	page, pageSize = normalizePagination(page, pageSize)

	tags, total, err := s.tagRepo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	return &TagPage{
		Tags:        tags,
		TotalTags:   total,
		TotalPages:  totalPages(total, pageSize),
		CurrentPage: page,
	}, nil
}

// GetTagByID retrieves a single tag.
func (s *TagService) GetTagByID(id uint) (*models.Tag, error) {
	return s.tagRepo.GetByID(id)
}

// CreateTag creates a tag under the strict duplicate policy: an
// existing name is a Conflict, never a silent reuse.
func (s *TagService) CreateTag(name string) (*models.Tag, error) {
	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag renames a tag.
func (s *TagService) UpdateTag(id uint, name string) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		tag.Name = name
	}
	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes the tag and its product associations.
func (s *TagService) DeleteTag(id uint) error {
	return s.tagRepo.Delete(id)
}
