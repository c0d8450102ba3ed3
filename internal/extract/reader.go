package extract

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/qticonv/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	elemAssessment    = "assessment"
	elemObjectBank    = "objectbank"
	elemSourceBankRef = "sourcebank_ref"

	defaultBankTitle = "Unknown"
)

// Document is one parsed source document
type Document struct {
	Path string
	Root *Node

	ns     string
	nsDone bool
}

// ParseDocument parses a QTI document read from r
func ParseDocument(path string, r io.Reader) (*Document, error) {
	root, err := ParseTree(r)
	if err != nil {
		return nil, err
	}
	return &Document{Path: path, Root: root}, nil
}

// Namespace returns the document's default namespace, discovered from the
// root declaration on first call and reused afterwards
func (d *Document) Namespace() string {
	if !d.nsDone {
		d.ns = d.Root.DefaultNamespace()
		d.nsDone = true
	}
	return d.ns
}

// DocumentResult holds what one source document contributes to the run.
// Either field may be nil.
type DocumentResult struct {
	Path       string
	Assessment *model.Assessment
	Bank       *model.QuestionBank
}

// Reader extracts assessments and question banks from QTI documents
type Reader struct {
	reducer *TextReducer
	marker  string
	log     logrus.FieldLogger
}

// NewReader creates a new document reader
func NewReader(reducer *TextReducer, marker string, log logrus.FieldLogger) *Reader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{
		reducer: reducer,
		marker:  marker,
		log:     log,
	}
}

// ReadFile opens, parses and reads the document at path
func (r *Reader) ReadFile(path string) (*DocumentResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := ParseDocument(path, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return r.Read(doc), nil
}

// Read extracts at most one assessment and at most one question bank from
// the root of doc
func (r *Reader) Read(doc *Document) *DocumentResult {
	ns := doc.Namespace()
	log := r.log.WithField("document", doc.Path)
	builder := NewQuestionBuilder(ns, r.reducer, r.marker, log)

	result := &DocumentResult{Path: doc.Path}

	if elem := doc.Root.Child(xml.Name{Space: ns, Local: elemAssessment}); elem != nil {
		result.Assessment = readAssessment(elem, ns)
	}
	if elem := doc.Root.Child(xml.Name{Space: ns, Local: elemObjectBank}); elem != nil {
		result.Bank = readBank(elem, ns, builder)
	}

	return result
}

func readAssessment(elem *Node, ns string) *model.Assessment {
	a := &model.Assessment{
		Ident: elem.AttrValue("ident"),
		Title: elem.AttrValue("title"),
	}
	for _, ref := range elem.FindAll(Named(xml.Name{Space: ns, Local: elemSourceBankRef})) {
		a.BankRefs = append(a.BankRefs, strings.TrimSpace(ref.Text))
	}
	return a
}

func readBank(elem *Node, ns string, builder *QuestionBuilder) *model.QuestionBank {
	bank := &model.QuestionBank{
		Ident: elem.AttrValue("ident"),
		Title: defaultBankTitle,
	}

	// Last bank_title wins
	for _, f := range builder.Metadata(elem) {
		if f.Label == labelBankTitle {
			bank.Title = f.Entry
		}
	}

	for _, item := range elem.ChildrenNamed(xml.Name{Space: ns, Local: elemItem}) {
		bank.Questions = append(bank.Questions, builder.Build(item)...)
	}
	return bank
}
