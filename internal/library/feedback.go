package library

import (
	"strings"

	"digilib-go/internal/model"
)

// anonymousAuthor is recorded when feedback arrives without a username,
// e.g. the session document lacks one.
const anonymousAuthor = "Student"

// SubmitFeedback appends a comment to the material's feedback sequence and
// returns the updated material. Text that trims to empty is rejected with
// ErrEmptyFeedback and the material is left untouched. Returns a
// *NotFoundError when the id does not resolve.
func (s *LibraryService) SubmitFeedback(materialID int64, username, text string) (*model.Material, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyFeedback
	}
	if username == "" {
		username = anonymousAuthor
	}

	materials, err := s.LoadCatalog()
	if err != nil {
		return nil, err
	}

	for i := range materials {
		if materials[i].ID != materialID {
			continue
		}
		materials[i].Feedbacks = append(materials[i].Feedbacks, model.Feedback{
			Username: username,
			Text:     text,
			Date:     s.clock.Now().Format(feedbackDateLayout),
		})
		if err := s.SaveCatalog(materials); err != nil {
			return nil, err
		}
		s.logger.Info("feedback submitted", "material", materialID, "user", username)
		return &materials[i], nil
	}

	return nil, &NotFoundError{ID: materialID}
}

// Feedbacks returns the material's feedback sequence in insertion order.
// Never nil: a material without feedback yields an empty slice.
func (s *LibraryService) Feedbacks(m *model.Material) []model.Feedback {
	if m == nil || m.Feedbacks == nil {
		return []model.Feedback{}
	}
	return m.Feedbacks
}
