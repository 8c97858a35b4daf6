// Package archive reads and writes whole-library snapshots: a single JSON
// document carrying the catalog and the access ledger, optionally encrypted
// with a passphrase. An archive is the only way library state leaves the
// document store, so it doubles as the backup format.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"filippo.io/age"
	"github.com/google/uuid"

	"digilib-go/internal/model"
)

// Snapshot is one exported library state. ID identifies the export itself,
// not the library it came from; importing never compares ids.
type Snapshot struct {
	ID         string                 `json:"id"`
	CreatedAt  string                 `json:"createdAt"`
	Materials  []model.Material       `json:"materials"`
	AccessLogs []model.AccessLogEntry `json:"materialAccessLogs"`
}

// NewSnapshot assembles a snapshot with a fresh id and creation stamp.
func NewSnapshot(materials []model.Material, accessLogs []model.AccessLogEntry, now time.Time) *Snapshot {
	return &Snapshot{
		ID:         uuid.New().String(),
		CreatedAt:  now.UTC().Format(time.RFC3339),
		Materials:  materials,
		AccessLogs: accessLogs,
	}
}

// ageHeader is the first line of every age-encrypted file.
const ageHeader = "age-encryption.org/v1"

// Write serializes the snapshot to w. With a non-empty passphrase the
// payload is age-encrypted using a scrypt recipient; otherwise it is plain
// JSON.
func Write(w io.Writer, snap *Snapshot, passphrase string) error {
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if passphrase == "" {
		if _, err := w.Write(payload); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		return nil
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}

	encWriter, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := encWriter.Write(payload); err != nil {
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Read parses a snapshot from r, decrypting it first when it carries the
// age header. An encrypted archive without a passphrase is an error; so is
// a wrong passphrase.
func Read(r io.Reader, passphrase string) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}

	if bytes.HasPrefix(data, []byte(ageHeader)) {
		if passphrase == "" {
			return nil, fmt.Errorf("archive is encrypted: passphrase required")
		}
		identity, err := age.NewScryptIdentity(passphrase)
		if err != nil {
			return nil, fmt.Errorf("creating scrypt identity: %w", err)
		}
		decReader, err := age.Decrypt(bytes.NewReader(data), identity)
		if err != nil {
			return nil, fmt.Errorf("decrypting archive: %w", err)
		}
		data, err = io.ReadAll(decReader)
		if err != nil {
			return nil, fmt.Errorf("reading decrypted archive: %w", err)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}
