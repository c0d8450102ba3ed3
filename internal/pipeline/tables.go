package pipeline

import (
	"github.com/ppiankov/qticonv/internal/extract"
	"github.com/ppiankov/qticonv/internal/model"
	"github.com/sirupsen/logrus"
)

// Tables are the run-scoped identifier lookups built from every document
// before any reference is resolved
type Tables struct {
	Assessments map[string]*model.Assessment
	Banks       map[string]*model.QuestionBank

	assessmentOrder []string
	bankOrder       []string
}

// NewTables creates empty lookup tables
func NewTables() *Tables {
	return &Tables{
		Assessments: make(map[string]*model.Assessment),
		Banks:       make(map[string]*model.QuestionBank),
	}
}

// Merge adds a document's contribution. A later document with an identifier
// already present replaces the earlier entry.
func (t *Tables) Merge(doc *extract.DocumentResult, log logrus.FieldLogger) {
	if doc == nil {
		return
	}

	if a := doc.Assessment; a != nil {
		if _, exists := t.Assessments[a.Ident]; exists {
			log.WithFields(logrus.Fields{"document": doc.Path, "assessment": a.Ident}).Warn("duplicate assessment identifier, replacing")
		} else {
			t.assessmentOrder = append(t.assessmentOrder, a.Ident)
		}
		t.Assessments[a.Ident] = a
	}

	if b := doc.Bank; b != nil {
		if _, exists := t.Banks[b.Ident]; exists {
			log.WithFields(logrus.Fields{"document": doc.Path, "bank": b.Ident}).Warn("duplicate bank identifier, replacing")
		} else {
			t.bankOrder = append(t.bankOrder, b.Ident)
		}
		t.Banks[b.Ident] = b
	}
}

// AssessmentList returns assessments in the order they were first seen
func (t *Tables) AssessmentList() []*model.Assessment {
	out := make([]*model.Assessment, 0, len(t.assessmentOrder))
	for _, ident := range t.assessmentOrder {
		out = append(out, t.Assessments[ident])
	}
	return out
}

// BankList returns banks in the order they were first seen
func (t *Tables) BankList() []*model.QuestionBank {
	out := make([]*model.QuestionBank, 0, len(t.bankOrder))
	for _, ident := range t.bankOrder {
		out = append(out, t.Banks[ident])
	}
	return out
}
