package model

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeDataURL(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		data      []byte
		wantType  string
	}{
		{name: "pdf", mediaType: "application/pdf", data: []byte("%PDF-1.4 fake"), wantType: "application/pdf"},
		{name: "empty media type defaults", mediaType: "", data: []byte("bytes"), wantType: "application/octet-stream"},
		{name: "empty payload", mediaType: "text/plain", data: []byte{}, wantType: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := EncodeDataURL(tt.mediaType, tt.data)
			if !strings.HasPrefix(url, "data:") {
				t.Fatalf("EncodeDataURL() = %q, want data: prefix", url)
			}

			mediaType, data, err := DecodeDataURL(url)
			if err != nil {
				t.Fatalf("DecodeDataURL() error = %v", err)
			}
			if mediaType != tt.wantType {
				t.Errorf("mediaType = %q, want %q", mediaType, tt.wantType)
			}
			if !bytes.Equal(data, tt.data) {
				t.Errorf("data = %q, want %q", data, tt.data)
			}
		})
	}
}

func TestDecodeDataURL_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not a data url", in: "https://example.com"},
		{name: "missing payload separator", in: "data:application/pdf;base64"},
		{name: "unsupported encoding", in: "data:text/plain;charset=utf8,hello"},
		{name: "bad base64", in: "data:text/plain;base64,!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeDataURL(tt.in); err == nil {
				t.Errorf("DecodeDataURL(%q) expected error", tt.in)
			}
		})
	}
}

func TestParseLink(t *testing.T) {
	t.Run("empty link", func(t *testing.T) {
		link, err := ParseLink("", "")
		if err != nil {
			t.Fatalf("ParseLink() error = %v", err)
		}
		if link.Kind != LinkNone {
			t.Errorf("Kind = %v, want LinkNone", link.Kind)
		}
	})

	t.Run("external url", func(t *testing.T) {
		link, err := ParseLink("https://react.dev", "")
		if err != nil {
			t.Fatalf("ParseLink() error = %v", err)
		}
		if link.Kind != LinkURL {
			t.Errorf("Kind = %v, want LinkURL", link.Kind)
		}
		if link.URL != "https://react.dev" {
			t.Errorf("URL = %q", link.URL)
		}
	})

	t.Run("embedded file", func(t *testing.T) {
		raw := EncodeDataURL("application/pdf", []byte("content"))
		link, err := ParseLink(raw, "notes.pdf")
		if err != nil {
			t.Fatalf("ParseLink() error = %v", err)
		}
		if link.Kind != LinkEmbedded {
			t.Fatalf("Kind = %v, want LinkEmbedded", link.Kind)
		}
		if link.FileName != "notes.pdf" {
			t.Errorf("FileName = %q, want %q", link.FileName, "notes.pdf")
		}
		if link.MediaType != "application/pdf" {
			t.Errorf("MediaType = %q", link.MediaType)
		}
		if string(link.Data) != "content" {
			t.Errorf("Data = %q", link.Data)
		}
	})

	t.Run("embedded file without a name gets a default", func(t *testing.T) {
		raw := EncodeDataURL("application/pdf", []byte("content"))
		link, err := ParseLink(raw, "")
		if err != nil {
			t.Fatalf("ParseLink() error = %v", err)
		}
		if link.FileName != "downloaded-material" {
			t.Errorf("FileName = %q, want default", link.FileName)
		}
	})

	t.Run("malformed embedded link", func(t *testing.T) {
		if _, err := ParseLink("data:application/pdf;base64,???", ""); err == nil {
			t.Error("ParseLink() expected error for malformed data URL")
		}
	})
}

func TestMaterialCategory(t *testing.T) {
	tests := []struct {
		name   string
		typ    MaterialType
		want   MaterialType
		wantOK bool
	}{
		{name: "textbook", typ: TypeTextbook, want: TypeTextbook, wantOK: true},
		{name: "absent type defaults", typ: "", want: TypeEducationalResource, wantOK: true},
		{name: "unknown type has no category", typ: "Webinar", want: "Webinar", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Material{Type: tt.typ}
			got, ok := m.Category()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Category() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Username: "a", Role: "admin"}).IsAdmin() != true {
		t.Error("admin role should be admin")
	}
	if (&User{Username: "a", Role: "student"}).IsAdmin() {
		t.Error("student role should not be admin")
	}
	if (&User{Username: "a"}).IsAdmin() {
		t.Error("empty role should not be admin")
	}
	var nobody *User
	if nobody.IsAdmin() {
		t.Error("nil user should not be admin")
	}
}
