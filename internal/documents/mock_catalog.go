package documents

import (
	"context"
	"time"
)

type mockCatalog struct {
	documents  []Document
	categories []string
	stats      []Stat
}

// NewMockCatalog returns the fixed Catalog the dashboard shows until the
// GED API serves documents.
func NewMockCatalog() Catalog {
	return &mockCatalog{
		documents: []Document{
			{
				ID:       1,
				Name:     "Rapport_Securite_Q1_2025.pdf",
				Category: "Sécurité",
				Size:     "2.4 MB",
				Modified: day(2025, time.January, 15),
				Author:   "Marie Dubois",
				Status:   StatusValidated,
			},
			{
				ID:       2,
				Name:     "Procedures_Embarquement.docx",
				Category: "Procédures",
				Size:     "856 KB",
				Modified: day(2025, time.January, 14),
				Author:   "Jean Kamdem",
				Status:   StatusDraft,
			},
			{
				ID:       3,
				Name:     "Maintenance_Pistes_Janvier.xlsx",
				Category: "Maintenance",
				Size:     "1.2 MB",
				Modified: day(2025, time.January, 13),
				Author:   "Paul Mvondo",
				Status:   StatusReview,
			},
		},
		categories: []string{
			AllCategories,
			"Sécurité",
			"Procédures",
			"Maintenance",
			"Finances",
			"RH",
		},
		stats: []Stat{
			{Label: "Documents Total", Value: "1,247", Icon: "description", Color: "blue"},
			{Label: "Nouveaux ce mois", Value: "89", Icon: "add", Color: "green"},
			{Label: "En attente", Value: "23", Icon: "schedule", Color: "orange"},
			{Label: "Archivés", Value: "456", Icon: "folder", Color: "purple"},
		},
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func (m *mockCatalog) Categories() []string {
	return append([]string(nil), m.categories...)
}

func (m *mockCatalog) List(
	_ context.Context,
	filter Filter,
) ([]Document, error) {
	docs := []Document{}
	for _, doc := range m.documents {
		if filter.matches(doc) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (m *mockCatalog) Stats(context.Context) ([]Stat, error) {
	return append([]Stat(nil), m.stats...), nil
}
