package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"digilib-go/internal/model"
	"digilib-go/internal/testutil"
)

// fakeStore is a map-backed Store for tests. The real backends live in a
// package that depends on this one, so tests carry their own.
type fakeStore struct {
	docs map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string][]byte)}
}

func (f *fakeStore) Get(key string) ([]byte, error) {
	data, ok := f.docs[key]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", key, ErrKeyNotFound)
	}
	return data, nil
}

func (f *fakeStore) Put(key string, data []byte) error {
	f.docs[key] = data
	return nil
}

func (f *fakeStore) Delete(key string) error {
	delete(f.docs, key)
	return nil
}

func (f *fakeStore) ValidateSetup() error { return nil }
func (f *fakeStore) Close() error         { return nil }

// put marshals v into the store under key, failing the test on error.
func (f *fakeStore) put(t *testing.T, key string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling %s fixture: %v", key, err)
	}
	f.docs[key] = raw
}

func newTestService(t *testing.T) (*LibraryService, *fakeStore) {
	t.Helper()
	st := newFakeStore()
	svc := NewLibraryService(st, NewNopLogger(), testutil.FixedClock(), testutil.NewStubIDGenerator(1000))
	return svc, st
}

func mustCreate(t *testing.T, svc *LibraryService, draft MaterialDraft) *model.Material {
	t.Helper()
	m, err := svc.CreateMaterial(draft)
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}
	return m
}

// errReader always fails; used to exercise upload read errors.
type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }
