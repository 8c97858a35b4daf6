package library

import (
	"encoding/json"
	"errors"
	"fmt"

	"digilib-go/internal/model"
)

// RecordAccess appends a ledger entry for (materialID, username) unless one
// already exists for that exact pair. Dedup is a linear scan of the ledger.
// Returns whether a new entry was appended; repeated calls for the same
// pair are safe no-ops after the first.
func (s *LibraryService) RecordAccess(materialID int64, materialTitle, username string) (bool, error) {
	entries, err := s.readAccessLogs()
	if err != nil {
		return false, err
	}

	for _, e := range entries {
		if e.MaterialID == materialID && e.Username == username {
			return false, nil
		}
	}

	entries = append(entries, model.AccessLogEntry{
		MaterialID:    materialID,
		MaterialTitle: materialTitle,
		Username:      username,
		Time:          s.clock.Now().Format(accessTimeLayout),
	})
	if err := s.writeAccessLogs(entries); err != nil {
		return false, err
	}

	s.logger.Info("access recorded", "material", materialID, "user", username)
	return true, nil
}

// AccessedBy returns the ids of all materials the user has accessed, in
// ledger order. Used to drive "already accessed" affordances.
func (s *LibraryService) AccessedBy(username string) ([]int64, error) {
	entries, err := s.readAccessLogs()
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if e.Username == username {
			ids = append(ids, e.MaterialID)
		}
	}
	return ids, nil
}

// AccessLog returns the full ledger in insertion order. There is no
// pagination and no retention policy; the ledger only grows.
func (s *LibraryService) AccessLog() ([]model.AccessLogEntry, error) {
	return s.readAccessLogs()
}

// OpenKind discriminates what the caller should do with an opened material.
type OpenKind int

const (
	// OpenNone: the material has no link; nothing to dispatch.
	OpenNone OpenKind = iota
	// OpenBrowse: open URL in a browser, without referrer/opener leakage.
	OpenBrowse
	// OpenDownload: save Data under FileName.
	OpenDownload
)

// OpenAction is the presentation-layer instruction produced by OpenMaterial.
type OpenAction struct {
	Kind      OpenKind
	URL       string
	FileName  string
	MediaType string
	Data      []byte

	// Logged reports whether this open appended a new ledger entry.
	Logged bool
}

// OpenMaterial records the access and resolves the material's link into an
// OpenAction. Ordering is log-then-open: the ledger entry is written before
// the link is even parsed, and it stands regardless of what the caller does
// with the action.
func (s *LibraryService) OpenMaterial(id int64, username string) (*OpenAction, error) {
	m, err := s.GetMaterial(id)
	if err != nil {
		return nil, err
	}

	logged, err := s.RecordAccess(m.ID, m.Title, username)
	if err != nil {
		return nil, err
	}

	link, err := m.ParsedLink()
	if err != nil {
		return nil, fmt.Errorf("resolving link for material %d: %w", id, err)
	}

	action := &OpenAction{Logged: logged}
	switch link.Kind {
	case model.LinkURL:
		action.Kind = OpenBrowse
		action.URL = link.URL
	case model.LinkEmbedded:
		action.Kind = OpenDownload
		action.FileName = link.FileName
		action.MediaType = link.MediaType
		action.Data = link.Data
	default:
		action.Kind = OpenNone
	}
	return action, nil
}

// readAccessLogs loads the ledger document. An absent document is an empty
// ledger; a corrupt one reads as empty too (logged) but is not rewritten
// until the next append.
func (s *LibraryService) readAccessLogs() ([]model.AccessLogEntry, error) {
	raw, err := s.store.Get(KeyAccessLogs)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []model.AccessLogEntry{}, nil
		}
		return nil, fmt.Errorf("reading access log document: %w", err)
	}

	var entries []model.AccessLogEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("access log document corrupt, treating as empty", "error", err)
		return []model.AccessLogEntry{}, nil
	}
	if entries == nil {
		entries = []model.AccessLogEntry{}
	}
	return entries, nil
}

func (s *LibraryService) writeAccessLogs(entries []model.AccessLogEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding access log document: %w", err)
	}
	if err := s.store.Put(KeyAccessLogs, raw); err != nil {
		return fmt.Errorf("writing access log document: %w", err)
	}
	return nil
}
