package app

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"digilib-go/internal/archive"
	"digilib-go/internal/config"
	"digilib-go/internal/library"
	"digilib-go/internal/model"
	"digilib-go/internal/store"
)

// LibraryApp is the application layer between the CLI and LibraryService.
// It constructs all dependencies from config, enforces the role checks the
// presentation layer relies on, and plays identity provider: Login and
// Logout write the session document that the library core only reads.
type LibraryApp struct {
	cfg     *config.Config
	store   library.Store
	service *library.LibraryService
	logFile *os.File
}

// NewLibraryApp creates a fully wired LibraryApp from the given config.
// operation identifies the CLI command being run (e.g. "CatalogAdd", "Open").
// The caller must call Close when done.
func NewLibraryApp(cfg *config.Config, operation string) (*LibraryApp, error) {
	st, err := store.NewStoreFromConfig(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	if err := st.ValidateSetup(); err != nil {
		st.Close()
		return nil, fmt.Errorf("validating store: %w", err)
	}

	logger, logFile, err := newLogger(cfg.LogDir, operation)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := library.NewLibraryService(st, &slogAdapter{l: logger}, library.RealClock{}, library.TimestampIDGenerator{})

	return &LibraryApp{
		cfg:     cfg,
		store:   st,
		service: svc,
		logFile: logFile,
	}, nil
}

// Close releases the store and the log file.
func (a *LibraryApp) Close() error {
	err := a.store.Close()
	if a.logFile != nil {
		if cerr := a.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Session

// Login writes the session document. There is no credential check: the
// store is local and client-editable, so roles are advisory.
func (a *LibraryApp) Login(username string, admin bool) error {
	if username == "" {
		return fmt.Errorf("username required")
	}
	role := "student"
	if admin {
		role = model.RoleAdmin
	}
	raw, err := json.Marshal(model.User{Username: username, Role: role})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := a.store.Put(library.KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Logout removes the session document. Logging out while logged out is fine.
func (a *LibraryApp) Logout() error {
	if err := a.store.Delete(library.KeyCurrentUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// WhoAmI returns the current session, or nil when there is none.
func (a *LibraryApp) WhoAmI() (*model.User, error) {
	return a.service.CurrentUser()
}

// Catalog

// BrowseCatalog returns the catalog partitioned by category, filtered by
// query first when it is non-empty. Requires a session.
func (a *LibraryApp) BrowseCatalog(query string) (map[model.MaterialType][]model.Material, error) {
	if _, err := a.service.RequireUser(); err != nil {
		return nil, err
	}
	materials, err := a.service.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return a.service.ByCategory(a.service.Search(materials, query)), nil
}

// AccessedMaterials returns the ids of materials the current user has
// already opened.
func (a *LibraryApp) AccessedMaterials() ([]int64, error) {
	u, err := a.service.RequireUser()
	if err != nil {
		return nil, err
	}
	return a.service.AccessedBy(u.Username)
}

// AccessedLog returns the current user's own ledger entries, in the order
// they were recorded.
func (a *LibraryApp) AccessedLog() ([]model.AccessLogEntry, error) {
	u, err := a.service.RequireUser()
	if err != nil {
		return nil, err
	}
	entries, err := a.service.AccessLog()
	if err != nil {
		return nil, err
	}
	mine := make([]model.AccessLogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Username == u.Username {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

// AddMaterial creates a catalog entry from raw CLI fields. filePath, when
// non-empty, wins over url: the file is uploaded and inlined. Admin only.
func (a *LibraryApp) AddMaterial(title, description, typeName, url, filePath string) (*model.Material, error) {
	if _, err := a.service.RequireAdmin(); err != nil {
		return nil, err
	}
	draft, cleanup, err := buildDraft(title, description, typeName, url, filePath)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return a.service.CreateMaterial(draft)
}

// EditMaterial replaces an existing entry's fields, preserving its
// feedback history. Admin only.
func (a *LibraryApp) EditMaterial(id int64, title, description, typeName, url, filePath string) (*model.Material, error) {
	if _, err := a.service.RequireAdmin(); err != nil {
		return nil, err
	}
	draft, cleanup, err := buildDraft(title, description, typeName, url, filePath)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return a.service.UpdateMaterial(id, draft)
}

// RemoveMaterial deletes a catalog entry. Removing an absent id is a
// no-op. Admin only.
func (a *LibraryApp) RemoveMaterial(id int64) error {
	if _, err := a.service.RequireAdmin(); err != nil {
		return err
	}
	return a.service.DeleteMaterial(id)
}

// buildDraft assembles a MaterialDraft from raw CLI fields. The returned
// cleanup closes the upload file handle (a no-op for URL drafts) and must
// run after the draft has been consumed.
func buildDraft(title, description, typeName, url, filePath string) (library.MaterialDraft, func(), error) {
	draft := library.MaterialDraft{
		Title:       title,
		Description: description,
		Type:        model.MaterialType(typeName),
		URL:         url,
	}
	if filePath == "" {
		return draft, func() {}, nil
	}

	f, err := os.Open(filePath)
	if err != nil {
		return draft, func() {}, &library.FileReadError{Name: filePath, Err: err}
	}
	draft.Upload = &library.Upload{
		Name:      filepath.Base(filePath),
		MediaType: mime.TypeByExtension(filepath.Ext(filePath)),
		Content:   f,
	}
	return draft, func() { f.Close() }, nil
}

// Access ledger

// Open records the access and resolves what to do with the material's
// link. Requires a session; the ledger entry is written before the action
// is returned.
func (a *LibraryApp) Open(id int64) (*library.OpenAction, error) {
	u, err := a.service.RequireUser()
	if err != nil {
		return nil, err
	}
	return a.service.OpenMaterial(id, u.Username)
}

// Audit returns the full access ledger for the admin audit view.
func (a *LibraryApp) Audit() ([]model.AccessLogEntry, error) {
	if _, err := a.service.RequireAdmin(); err != nil {
		return nil, err
	}
	return a.service.AccessLog()
}

// Feedback

// SubmitFeedback appends a comment by the current user to the material.
func (a *LibraryApp) SubmitFeedback(id int64, text string) (*model.Material, error) {
	u, err := a.service.RequireUser()
	if err != nil {
		return nil, err
	}
	return a.service.SubmitFeedback(id, u.Username, text)
}

// ListFeedback returns a material's title and its feedback sequence.
func (a *LibraryApp) ListFeedback(id int64) (string, []model.Feedback, error) {
	if _, err := a.service.RequireUser(); err != nil {
		return "", nil, err
	}
	m, err := a.service.GetMaterial(id)
	if err != nil {
		return "", nil, err
	}
	return m.Title, a.service.Feedbacks(m), nil
}

// Archive

// Export writes a snapshot of the whole library to w, encrypted when
// passphrase is non-empty. Admin only.
func (a *LibraryApp) Export(w io.Writer, passphrase string) (*archive.Snapshot, error) {
	if _, err := a.service.RequireAdmin(); err != nil {
		return nil, err
	}
	materials, entries, err := a.service.ExportState()
	if err != nil {
		return nil, err
	}
	snap := archive.NewSnapshot(materials, entries, library.RealClock{}.Now())
	if err := archive.Write(w, snap, passphrase); err != nil {
		return nil, err
	}
	return snap, nil
}

// Import restores a snapshot from r, replacing the catalog and the access
// ledger wholesale. Admin only.
func (a *LibraryApp) Import(r io.Reader, passphrase string) (*archive.Snapshot, error) {
	if _, err := a.service.RequireAdmin(); err != nil {
		return nil, err
	}
	snap, err := archive.Read(r, passphrase)
	if err != nil {
		return nil, err
	}
	if err := a.service.ImportState(snap.Materials, snap.AccessLogs); err != nil {
		return nil, err
	}
	return snap, nil
}
