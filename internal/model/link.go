package model

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// LinkKind discriminates the two shapes a material link can take.
type LinkKind int

const (
	// LinkNone means the material carries no link at all.
	LinkNone LinkKind = iota
	// LinkURL is an external URL to open in a browser.
	LinkURL
	// LinkEmbedded is an uploaded file inlined as a data URL.
	LinkEmbedded
)

// Link is the parsed, tagged form of Material.Link. Exactly one shape is
// populated: URL for LinkURL, or Data/MediaType/FileName for LinkEmbedded.
type Link struct {
	Kind      LinkKind
	URL       string
	Data      []byte
	MediaType string
	FileName  string
}

const dataURLPrefix = "data:"

// EncodeDataURL inlines file content as an RFC 2397 data URL. The result is
// self-describing: it carries its own media type, so the retrieval path can
// reconstruct a downloadable file without separate metadata.
func EncodeDataURL(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return dataURLPrefix + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its media type and content.
func DecodeDataURL(s string) (mediaType string, data []byte, err error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	rest := s[len(dataURLPrefix):]
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL: missing payload separator")
	}
	mediaType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("unsupported data URL encoding: %q", encoding)
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL payload: %w", err)
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return mediaType, data, nil
}

// ParseLink turns the raw persisted link string into its tagged form.
// fileName is the suggested save name recorded alongside embedded content;
// it falls back to a generic default when empty.
func ParseLink(raw, fileName string) (Link, error) {
	if raw == "" {
		return Link{Kind: LinkNone}, nil
	}
	if !strings.HasPrefix(raw, dataURLPrefix) {
		return Link{Kind: LinkURL, URL: raw}, nil
	}
	mediaType, data, err := DecodeDataURL(raw)
	if err != nil {
		return Link{}, fmt.Errorf("parsing embedded link: %w", err)
	}
	if fileName == "" {
		fileName = "downloaded-material"
	}
	return Link{Kind: LinkEmbedded, Data: data, MediaType: mediaType, FileName: fileName}, nil
}

// ParsedLink parses the material's own link and file name.
func (m *Material) ParsedLink() (Link, error) {
	return ParseLink(m.Link, m.FileName)
}
