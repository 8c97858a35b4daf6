package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"digilib-go/internal/model"
)

// MaterialDraft carries the submitted fields for a create or update.
// URL and Upload are mutually exclusive: a non-nil Upload wins and its
// content is inlined as the material's embedded link.
type MaterialDraft struct {
	Title       string
	Description string
	Type        model.MaterialType
	URL         string
	Upload      *Upload
}

// Upload is a file submitted with a draft. Content is read exactly once,
// before the material record is constructed; a read failure aborts the
// whole operation with a FileReadError.
type Upload struct {
	Name      string
	MediaType string
	Content   io.Reader
}

// LoadCatalog reads the persisted material collection, reconciling it with
// the built-in seed catalog.
//
// Absent document: the seed catalog is persisted and returned. Present
// document: any seed record whose id is not in the persisted collection is
// appended, in seed order, after the persisted records. A document that
// fails to parse is treated as absent and reset to the seed catalog (the
// store is writable by anything on the machine, so corruption is not worth
// dying over); the reset is logged.
//
// The reconciled collection is persisted before returning, so two
// consecutive loads with no mutation in between yield identical results.
func (s *LibraryService) LoadCatalog() ([]model.Material, error) {
	raw, err := s.store.Get(KeyMaterials)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			seeded := seedCatalog()
			if err := s.SaveCatalog(seeded); err != nil {
				return nil, fmt.Errorf("persisting seed catalog: %w", err)
			}
			s.logger.Info("catalog seeded", "count", len(seeded))
			return seeded, nil
		}
		return nil, fmt.Errorf("reading materials document: %w", err)
	}

	var materials []model.Material
	if err := json.Unmarshal(raw, &materials); err != nil {
		s.logger.Warn("materials document corrupt, resetting to seed", "error", err)
		seeded := seedCatalog()
		if err := s.SaveCatalog(seeded); err != nil {
			return nil, fmt.Errorf("resetting corrupt catalog: %w", err)
		}
		return seeded, nil
	}

	merged := mergeSeed(materials, seedCatalog())
	if err := s.SaveCatalog(merged); err != nil {
		return nil, fmt.Errorf("persisting reconciled catalog: %w", err)
	}
	return merged, nil
}

// mergeSeed appends seed records missing from the persisted collection.
// Persisted records come first in their stored order, then missing seed
// records in seed-definition order. Nothing is overwritten or removed.
func mergeSeed(persisted, seed []model.Material) []model.Material {
	have := make(map[int64]bool, len(persisted))
	for _, m := range persisted {
		have[m.ID] = true
	}
	merged := persisted
	for _, m := range seed {
		if !have[m.ID] {
			merged = append(merged, m)
		}
	}
	return merged
}

// SaveCatalog overwrites the persisted collection with the given sequence.
// Must be called after every mutation; there is no incremental diffing.
func (s *LibraryService) SaveCatalog(materials []model.Material) error {
	raw, err := json.Marshal(materials)
	if err != nil {
		return fmt.Errorf("encoding materials document: %w", err)
	}
	if err := s.store.Put(KeyMaterials, raw); err != nil {
		return fmt.Errorf("writing materials document: %w", err)
	}
	return nil
}

// GetMaterial returns the material with the given id.
// Returns a *NotFoundError when the id does not resolve.
func (s *LibraryService) GetMaterial(id int64) (*model.Material, error) {
	materials, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}
	for i := range materials {
		if materials[i].ID == id {
			return &materials[i], nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// CreateMaterial validates the draft, resolves its link (inlining an upload
// if one is supplied), assigns a fresh id and appends the new record to the
// catalog. No record is created when the upload fails to read.
func (s *LibraryService) CreateMaterial(draft MaterialDraft) (*model.Material, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	link, fileName, err := resolveLink(draft)
	if err != nil {
		return nil, err
	}

	materials, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}

	m := model.Material{
		ID:          s.nextID(materials),
		Title:       draft.Title,
		Type:        draft.Type,
		Description: draft.Description,
		Link:        link,
		FileName:    fileName,
		Feedbacks:   []model.Feedback{},
	}

	materials = append(materials, m)
	if err := s.SaveCatalog(materials); err != nil {
		return nil, err
	}

	s.logger.Info("material created", "id", m.ID, "title", m.Title, "type", string(m.Type))
	return &m, nil
}

// UpdateMaterial applies the draft to an existing record. The id and the
// accumulated feedback sequence are preserved; everything else is replaced.
// Returns a *NotFoundError when the id does not resolve.
func (s *LibraryService) UpdateMaterial(id int64, draft MaterialDraft) (*model.Material, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}

	link, fileName, err := resolveLink(draft)
	if err != nil {
		return nil, err
	}

	materials, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}

	for i := range materials {
		if materials[i].ID != id {
			continue
		}
		feedbacks := materials[i].Feedbacks
		if feedbacks == nil {
			feedbacks = []model.Feedback{}
		}
		materials[i] = model.Material{
			ID:          id,
			Title:       draft.Title,
			Type:        draft.Type,
			Description: draft.Description,
			Link:        link,
			FileName:    fileName,
			Feedbacks:   feedbacks,
		}
		if err := s.SaveCatalog(materials); err != nil {
			return nil, err
		}
		s.logger.Info("material updated", "id", id, "title", draft.Title)
		return &materials[i], nil
	}

	return nil, &NotFoundError{ID: id}
}

// DeleteMaterial removes the record with the given id. Deleting an absent
// id is a no-op, not an error. Ledger entries referencing the material are
// kept: they are historical records, not foreign keys.
func (s *LibraryService) DeleteMaterial(id int64) error {
	materials, err := s.LoadCatalog()
	if err != nil {
		return err
	}

	kept := materials[:0]
	for _, m := range materials {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(materials) {
		return nil
	}

	if err := s.SaveCatalog(kept); err != nil {
		return err
	}
	s.logger.Info("material deleted", "id", id)
	return nil
}

// ByCategory partitions materials into the four fixed categories, keyed by
// type with Educational Resource as the default for an absent type. Source
// order is preserved within each group. A material with an unrecognized
// type appears in no partition; the construction boundary rejects such
// types, so only hand-edited documents can reach that state.
func (s *LibraryService) ByCategory(materials []model.Material) map[model.MaterialType][]model.Material {
	groups := make(map[model.MaterialType][]model.Material, 4)
	for _, c := range model.Categories() {
		groups[c] = []model.Material{}
	}
	for _, m := range materials {
		c, ok := m.Category()
		if !ok {
			continue
		}
		groups[c] = append(groups[c], m)
	}
	return groups
}

// Search returns the materials whose title, description or type contains
// the query, case-insensitively. The empty query matches everything.
func (s *LibraryService) Search(materials []model.Material, query string) []model.Material {
	q := strings.ToLower(query)
	matched := make([]model.Material, 0, len(materials))
	for _, m := range materials {
		if strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Description), q) ||
			strings.Contains(strings.ToLower(string(m.Type)), q) {
			matched = append(matched, m)
		}
	}
	return matched
}

// nextID returns a fresh id: the current timestamp in milliseconds, bumped
// past any collision with an existing record.
func (s *LibraryService) nextID(materials []model.Material) int64 {
	taken := make(map[int64]bool, len(materials))
	for _, m := range materials {
		taken[m.ID] = true
	}
	id := s.ids.NewID(s.clock.Now())
	for taken[id] {
		id++
	}
	return id
}

// validateDraft enforces the construction rules: required title and
// description, and a category inside the fixed enum. An absent type
// defaults to Educational Resource rather than failing.
func validateDraft(d *MaterialDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(d.Description) == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if d.Type == "" {
		d.Type = model.TypeEducationalResource
	}
	if !d.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown category %q", string(d.Type))}
	}
	return nil
}

// resolveLink decides between the submitted URL and an uploaded file.
// A non-nil upload wins: its content is read in full and inlined as a data
// URL, and its name becomes the suggested save name. Read failures surface
// as a *FileReadError before any record is touched.
func resolveLink(d MaterialDraft) (link, fileName string, err error) {
	if d.Upload == nil {
		return d.URL, "", nil
	}
	data, err := io.ReadAll(d.Upload.Content)
	if err != nil {
		return "", "", &FileReadError{Name: d.Upload.Name, Err: err}
	}
	return model.EncodeDataURL(d.Upload.MediaType, data), d.Upload.Name, nil
}
