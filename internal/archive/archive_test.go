package archive

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"digilib-go/internal/model"
)

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	return NewSnapshot(
		[]model.Material{
			{ID: 1, Title: "React Basics", Type: model.TypeTextbook, Description: "Intro to React", Link: "https://react.dev", Feedbacks: []model.Feedback{}},
		},
		[]model.AccessLogEntry{
			{MaterialID: 1, MaterialTitle: "React Basics", Username: "ana", Time: "2024-01-15 10:30:00"},
		},
		time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	)
}

func TestWriteRead_Plain(t *testing.T) {
	snap := testSnapshot(t)

	var buf bytes.Buffer
	if err := Write(&buf, snap, ""); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Plain archives are readable JSON.
	if !strings.Contains(buf.String(), `"materials"`) {
		t.Error("plain archive does not look like JSON")
	}

	got, err := Read(&buf, "")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.ID != snap.ID {
		t.Errorf("ID = %q, want %q", got.ID, snap.ID)
	}
	if got.CreatedAt != "2024-01-15T10:30:00Z" {
		t.Errorf("CreatedAt = %q", got.CreatedAt)
	}
	if len(got.Materials) != 1 || got.Materials[0].Title != "React Basics" {
		t.Errorf("Materials = %+v", got.Materials)
	}
	if len(got.AccessLogs) != 1 || got.AccessLogs[0].Username != "ana" {
		t.Errorf("AccessLogs = %+v", got.AccessLogs)
	}
}

func TestWriteRead_Encrypted(t *testing.T) {
	snap := testSnapshot(t)

	var buf bytes.Buffer
	if err := Write(&buf, snap, "correct horse"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if !strings.HasPrefix(buf.String(), ageHeader) {
		t.Fatal("encrypted archive missing age header")
	}
	if strings.Contains(buf.String(), "React Basics") {
		t.Error("plaintext leaked into encrypted archive")
	}

	got, err := Read(bytes.NewReader(buf.Bytes()), "correct horse")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.ID != snap.ID || len(got.Materials) != 1 {
		t.Errorf("decrypted snapshot = %+v", got)
	}
}

func TestRead_WrongPassphrase(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testSnapshot(t), "right"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if _, err := Read(bytes.NewReader(buf.Bytes()), "wrong"); err == nil {
		t.Error("Read() with wrong passphrase expected error")
	}
}

func TestRead_EncryptedWithoutPassphrase(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testSnapshot(t), "secret"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	_, err := Read(bytes.NewReader(buf.Bytes()), "")
	if err == nil {
		t.Fatal("Read() expected error")
	}
	if !strings.Contains(err.Error(), "passphrase required") {
		t.Errorf("error = %q, want passphrase required", err)
	}
}

func TestRead_MalformedJSON(t *testing.T) {
	if _, err := Read(strings.NewReader("{truncated"), ""); err == nil {
		t.Error("Read() of malformed JSON expected error")
	}
}
