package library

import "digilib-go/internal/model"

// ExportState gathers everything an archive snapshot carries: the
// reconciled catalog and the full access ledger. The session document is
// deliberately excluded; sessions belong to a machine, not a library.
func (s *LibraryService) ExportState() ([]model.Material, []model.AccessLogEntry, error) {
	materials, err := s.LoadCatalog()
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.readAccessLogs()
	if err != nil {
		return nil, nil, err
	}
	return materials, entries, nil
}

// ImportState replaces both persisted documents wholesale with the
// snapshot's contents. There is no merging: an import is a restore.
func (s *LibraryService) ImportState(materials []model.Material, entries []model.AccessLogEntry) error {
	if materials == nil {
		materials = []model.Material{}
	}
	if entries == nil {
		entries = []model.AccessLogEntry{}
	}
	if err := s.SaveCatalog(materials); err != nil {
		return err
	}
	if err := s.writeAccessLogs(entries); err != nil {
		return err
	}
	s.logger.Info("library state imported", "materials", len(materials), "accessLogs", len(entries))
	return nil
}
