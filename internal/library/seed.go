package library

import "digilib-go/internal/model"

// seedCatalog returns the built-in catalog. Seed records are merged into a
// persisted collection by id: once a seed id exists in the store it is never
// overwritten, so local edits to seed entries survive, while newly shipped
// seed records appear exactly once.
func seedCatalog() []model.Material {
	return []model.Material{
		{
			ID:          1,
			Title:       "React Basics",
			Type:        model.TypeTextbook,
			Description: "Intro to React",
			Link:        "https://react.dev",
			Feedbacks: []model.Feedback{
				{Username: "Anonymous", Text: "Great start!", Date: "2024-01-15"},
			},
		},
		{
			ID:          2,
			Title:       "MongoDB Workshop",
			Type:        model.TypeStudyGuide,
			Description: "Learn MongoDB",
			Link:        "https://www.mongodb.com",
			Feedbacks:   []model.Feedback{},
		},
		{
			ID:          3,
			Title:       "A Cyber Bridge Experiment",
			Type:        model.TypeResearchPaper,
			Description: "Journal of The Colloquium for Information Systems Security Education",
			Link:        "https://cisse.info/journal/index.php/cisse/article/view/192/192",
			Feedbacks:   []model.Feedback{},
		},
		{
			ID:          4,
			Title:       "Java Programming Notes",
			Type:        model.TypeEducationalResource,
			Description: "Introduction to Computing with Java",
			Link:        "https://www.iitk.ac.in/esc101/share/downloads/javanotes5.pdf",
			Feedbacks:   []model.Feedback{},
		},
		{
			ID:          5,
			Title:       "Full Stack Web Development",
			Type:        model.TypeTextbook,
			Description: "Comprehensive Guide to Full Stack Web Development",
			Link:        "https://cdn.chools.in/DIG_LIB/E-Book/Full-stack-web-development.pdf",
			Feedbacks:   []model.Feedback{},
		},
		{
			ID:          6,
			Title:       "Cloud Computing Digital Notes",
			Type:        model.TypeStudyGuide,
			Description: "Malla Reddy College of Engineering & Technology Digital Notes",
			Link:        "https://mrcet.com/downloads/digital_notes/IT/CLOUD%20COMPUTING%20DIGITAL%20NOTES%20(R18A0523).pdf",
			Feedbacks:   []model.Feedback{},
		},
		{
			ID:          7,
			Title:       "Data Structures Digital Notes",
			Type:        model.TypeEducationalResource,
			Description: "Malla Reddy College of Engineering & Technology Digital Notes for Data Structures",
			Link:        "https://mrcet.com/downloads/digital_notes/CSE/II%20Year/DATA%20STRUCTURES%20DIGITAL%20NOTES.pdf",
			Feedbacks:   []model.Feedback{},
		},
		{
			ID:          8,
			Title:       "Design and Analysis of Algorithms Reconsidered",
			Type:        model.TypeResearchPaper,
			Description: "ResearchGate Publication",
			Link:        "https://www.researchgate.net/publication/221538468_Design_and_analysis_of_algorithms_reconsidered",
			Feedbacks:   []model.Feedback{},
		},
		{
			ID:          9,
			Title:       "Probability and Statistics",
			Type:        model.TypeResearchPaper,
			Description: "MCA Semester II Study Material - Mumbai University",
			Link:        "https://archive.mu.ac.in/myweb_test/MCA%20study%20material/M.C.A.%20(Sem%20-%20II)%20Probability%20and%20Statistics.pdf",
			Feedbacks:   []model.Feedback{},
		},
	}
}
