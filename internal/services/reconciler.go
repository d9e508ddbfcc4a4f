package services

import (
	"catalogue/internal/apperrors"
	"catalogue/internal/models"
	"catalogue/internal/repositories"
)

// ReconcilePolicy selects how requested tag names are resolved against
// the store. The two policies are never mixed within one request.
type ReconcilePolicy int

const (
	// ReconcileStrict rejects the whole request when any requested
	// name has no existing tag. Nothing is written on failure.
	ReconcileStrict ReconcilePolicy = iota
	// ReconcilePermissive creates missing tags on demand and never
	// fails on unknown names.
	ReconcilePermissive
)

// TagReconciler resolves requested tag names to tag rows.
type TagReconciler struct {
	tagRepo repositories.TagRepository
}

// NewTagReconciler creates a new TagReconciler.
func NewTagReconciler(tagRepo repositories.TagRepository) *TagReconciler {
	return &TagReconciler{
		tagRepo: tagRepo,
	}
}

// Resolve maps names to tag rows under policy. Duplicate names within
// the request collapse to one tag; input order is preserved.
func (r *TagReconciler) Resolve(names []string, policy ReconcilePolicy) ([]models.Tag, error) {
	unique := dedupe(names)
	if len(unique) == 0 {
		return nil, nil
	}

	switch policy {
	case ReconcileStrict:
		return r.resolveStrict(unique)
	case ReconcilePermissive:
		return r.resolvePermissive(unique)
	default:
		return nil, apperrors.New(apperrors.Internal, "unknown reconciliation policy")
	}
}

func (r *TagReconciler) resolveStrict(names []string) ([]models.Tag, error) {
	found, err := r.tagRepo.FindByNames(names)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]models.Tag, len(found))
	for _, tag := range found {
		byName[tag.Name] = tag
	}

	var missing []string
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		tags = append(tags, tag)
	}
	if len(missing) > 0 {
		return nil, &apperrors.Error{
			Kind:        apperrors.Validation,
			Message:     "Certains tags n'existent pas.",
			MissingTags: missing,
		}
	}
	return tags, nil
}

func (r *TagReconciler) resolvePermissive(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := r.tagRepo.FirstOrCreate(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// dedupe removes duplicates from names, keeping first-seen order and
// dropping empty strings.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
