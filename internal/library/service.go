package library

// LibraryService is the orchestration layer owning the catalog repository,
// the access ledger and the feedback subsystem. All state lives in the
// injected Store as whole JSON documents; every mutation rewrites the
// affected document in full.
type LibraryService struct {
	store  Store
	logger Logger
	clock  Clock
	ids    IDGenerator
}

// NewLibraryService creates a LibraryService with the provided dependencies.
func NewLibraryService(store Store, logger Logger, clock Clock, ids IDGenerator) *LibraryService {
	return &LibraryService{
		store:  store,
		logger: logger,
		clock:  clock,
		ids:    ids,
	}
}
