package model

// MaterialType is one of the four fixed catalog categories.
// The values are the human-readable labels used in the persisted documents.
type MaterialType string

const (
	TypeEducationalResource MaterialType = "Educational Resource"
	TypeTextbook            MaterialType = "Textbook"
	TypeStudyGuide          MaterialType = "Study Guide"
	TypeResearchPaper       MaterialType = "Research Paper"
)

// Categories returns the fixed category set in display order.
func Categories() []MaterialType {
	return []MaterialType{
		TypeEducationalResource,
		TypeTextbook,
		TypeStudyGuide,
		TypeResearchPaper,
	}
}

// Valid reports whether t is one of the four known categories.
func (t MaterialType) Valid() bool {
	switch t {
	case TypeEducationalResource, TypeTextbook, TypeStudyGuide, TypeResearchPaper:
		return true
	}
	return false
}

// Material is one catalog entry. Field names mirror the persisted JSON
// layout of the `materials` document.
//
// Link is either an external URL or an RFC 2397 data URL holding an
// uploaded file inline; use ParseLink to branch on a real discriminant
// instead of sniffing the string. FileName is only meaningful for
// embedded links, where it is the suggested save name on retrieval.
type Material struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Type        MaterialType `json:"type"`
	Description string       `json:"description"`
	Link        string       `json:"link"`
	FileName    string       `json:"fileName,omitempty"`
	Feedbacks   []Feedback   `json:"feedbacks"`
}

// Category returns the category partition this material belongs to.
// An absent type defaults to Educational Resource; an unrecognized type
// belongs to no partition and the second return is false.
func (m *Material) Category() (MaterialType, bool) {
	t := m.Type
	if t == "" {
		t = TypeEducationalResource
	}
	return t, t.Valid()
}

// Feedback is one user comment on a material. Append-only: no edit,
// no delete, insertion order is the only ordering.
type Feedback struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	Date     string `json:"date"`
}

// AccessLogEntry is one ledger record: a user opened a material.
// MaterialTitle is a denormalized snapshot of the title at access time;
// it is not updated when the material is renamed or deleted.
type AccessLogEntry struct {
	MaterialID    int64  `json:"materialId"`
	MaterialTitle string `json:"materialTitle"`
	Username      string `json:"username"`
	Time          string `json:"time"`
}

// User is the session record read from the `currentUser` document.
// The library core never writes it; roles are whatever the document says.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// RoleAdmin is the only role with catalog mutation and audit rights.
// Any other value (including empty) is treated as a student.
const RoleAdmin = "admin"

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
