package extract

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/qticonv/internal/model"
	"github.com/sirupsen/logrus/hooks/test"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", "export", "non_cc_assessments", name)
}

func newTestReader() (*Reader, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewReader(NewTextReducer(nil), model.DefaultMatchingMarker, logger), hook
}

func TestReader_ReadFile_Bank(t *testing.T) {
	r, hook := newTestReader()

	result, err := r.ReadFile(fixture("g0bank01.xml.qti"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Assessment != nil {
		t.Error("expected no assessment in a bank document")
	}

	bank := result.Bank
	if bank == nil {
		t.Fatal("expected a bank")
	}
	if bank.Ident != "g0bank01" {
		t.Errorf("expected ident g0bank01, got %q", bank.Ident)
	}
	if bank.Title != "Week 1: Basics" {
		t.Errorf("expected title %q, got %q", "Week 1: Basics", bank.Title)
	}

	// true/false, three matching variations, multiple choice; essay dropped
	if len(bank.Questions) != 5 {
		t.Fatalf("expected 5 expanded questions, got %d", len(bank.Questions))
	}
	if bank.VisibleCount() != 3 {
		t.Errorf("expected visible count 3, got %d", bank.VisibleCount())
	}

	tf := bank.Questions[0]
	if tf.Text != "The sky is blue." {
		t.Errorf("unexpected true/false text %q", tf.Text)
	}
	if !tf.Answers[0].Correct || tf.Answers[1].Correct {
		t.Errorf("expected True correct and False incorrect, got %+v", tf.Answers)
	}

	for i, want := range []string{"Paris", "Rome", "Madrid"} {
		q := bank.Questions[1+i]
		if q.Variation != i+1 {
			t.Errorf("expected variation %d, got %d", i+1, q.Variation)
		}
		for _, a := range q.Answers {
			if a.Correct != (a.Text == want) {
				t.Errorf("variation %d: answer %q correct=%v", q.Variation, a.Text, a.Correct)
			}
		}
	}

	unsupported := 0
	for _, e := range hook.AllEntries() {
		if e.Data["type"] == "essay_question" {
			unsupported++
		}
	}
	if unsupported != 1 {
		t.Errorf("expected 1 unsupported diagnostic, got %d", unsupported)
	}
}

func TestReader_ReadFile_Assessment(t *testing.T) {
	r, _ := newTestReader()

	result, err := r.ReadFile(fixture("g0quiz01.xml.qti"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Bank != nil {
		t.Error("expected no bank in an assessment document")
	}

	a := result.Assessment
	if a == nil {
		t.Fatal("expected an assessment")
	}
	if a.Ident != "g0quiz01" || a.Title != "Quiz 1: Intro" {
		t.Errorf("unexpected assessment identity %q / %q", a.Ident, a.Title)
	}
	if len(a.BankRefs) != 2 || a.BankRefs[0] != "g0bank01" || a.BankRefs[1] != "g0bank02" {
		t.Errorf("unexpected bank refs %v", a.BankRefs)
	}
}

func TestReader_ReadFile_Malformed(t *testing.T) {
	r, _ := newTestReader()

	if _, err := r.ReadFile(fixture("g0broken.xml.qti")); err == nil {
		t.Error("expected error for malformed document")
	}
	if _, err := r.ReadFile(fixture("does-not-exist.xml.qti")); err == nil {
		t.Error("expected error for missing document")
	}
}

func TestReader_Read_DefaultTitleAndBothElements(t *testing.T) {
	r, _ := newTestReader()

	doc, err := ParseDocument("inline", strings.NewReader(`<questestinterop xmlns="`+testNS+`">
	  <assessment ident="a1" title="A"/>
	  <objectbank ident="b1"/>
	</questestinterop>`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if doc.Namespace() != testNS {
		t.Errorf("expected namespace %q, got %q", testNS, doc.Namespace())
	}

	result := r.Read(doc)
	if result.Assessment == nil || result.Bank == nil {
		t.Fatal("expected both an assessment and a bank")
	}
	if result.Bank.Title != "Unknown" {
		t.Errorf("expected default title Unknown, got %q", result.Bank.Title)
	}
	if len(result.Bank.Questions) != 0 {
		t.Errorf("expected empty bank, got %d questions", len(result.Bank.Questions))
	}
}

func TestReader_Read_ForeignNamespaceIgnored(t *testing.T) {
	r, _ := newTestReader()

	doc, err := ParseDocument("inline", strings.NewReader(`<questestinterop xmlns="`+testNS+`">
	  <x:objectbank xmlns:x="urn:other" ident="b1"/>
	</questestinterop>`))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result := r.Read(doc); result.Bank != nil {
		t.Error("expected elements outside the default namespace to be ignored")
	}
}
