package extract

import (
	"encoding/xml"
	"strings"

	"github.com/ppiankov/qticonv/internal/model"
	"github.com/sirupsen/logrus"
)

// QTI element and metadata names used by the builder
const (
	elemItem          = "item"
	elemMattext       = "mattext"
	elemFieldLabel    = "fieldlabel"
	elemFieldEntry    = "fieldentry"
	elemResponseLid   = "response_lid"
	elemResponseLabel = "response_label"
	elemVarEqual      = "varequal"
	elemNot           = "not"

	labelQuestionType = "question_type"
	labelBankTitle    = "bank_title"
)

// MetadataField is one fieldlabel/fieldentry pair
type MetadataField struct {
	Label string
	Entry string
}

// QuestionBuilder turns QTI item elements into model questions
type QuestionBuilder struct {
	ns      string
	reducer *TextReducer
	marker  string
	log     logrus.FieldLogger
}

// NewQuestionBuilder creates a builder for documents in namespace ns.
// marker is inserted between a matching prompt and the term it asks about.
func NewQuestionBuilder(ns string, reducer *TextReducer, marker string, log logrus.FieldLogger) *QuestionBuilder {
	if reducer == nil {
		reducer = NewTextReducer(nil)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &QuestionBuilder{
		ns:      ns,
		reducer: reducer,
		marker:  marker,
		log:     log,
	}
}

func (b *QuestionBuilder) name(local string) xml.Name {
	return xml.Name{Space: b.ns, Local: local}
}

// Metadata returns every fieldlabel/fieldentry pair below n in document order
func (b *QuestionBuilder) Metadata(n *Node) []MetadataField {
	var fields []MetadataField
	for _, label := range n.FindAll(Named(b.name(elemFieldLabel))) {
		parent := label.Parent
		if parent == nil {
			continue
		}
		field := MetadataField{Label: strings.TrimSpace(label.Text)}
		if entry := parent.FindFirst(Named(b.name(elemFieldEntry))); entry != nil {
			field.Entry = strings.TrimSpace(entry.Text)
		}
		fields = append(fields, field)
	}
	return fields
}

// Classify returns the question type of an item along with the raw
// question_type value. Items without the field are unsupported.
func (b *QuestionBuilder) Classify(item *Node) (model.QuestionType, string) {
	for _, f := range b.Metadata(item) {
		if f.Label == labelQuestionType {
			return model.ParseQuestionType(f.Entry), f.Entry
		}
	}
	return model.QuestionUnsupported, ""
}

// Build converts one item into questions. Matching items expand into one
// question per response; unsupported items yield nothing.
func (b *QuestionBuilder) Build(item *Node) []model.Question {
	qtype, raw := b.Classify(item)
	ident := item.AttrValue("ident")

	switch qtype {
	case model.QuestionMatching:
		return b.buildMatching(item, raw)
	case model.QuestionTrueFalse, model.QuestionMultiAnswer, model.QuestionMultiChoice:
		q := model.Question{
			Ident:      ident,
			Type:       qtype,
			SourceType: raw,
			Text:       b.Text(item),
			Answers:    b.Answers(item, item),
		}
		return []model.Question{q}
	default:
		b.log.WithFields(logrus.Fields{
			"item": ident,
			"type": raw,
		}).Warn("question type not supported, skipping")
		return nil
	}
}

// buildMatching fans a matching item out into one multiple choice question
// per term, linked by variations 1..N
func (b *QuestionBuilder) buildMatching(item *Node, raw string) []model.Question {
	ident := item.AttrValue("ident")
	prompt := b.Text(item)

	var questions []model.Question
	for i, response := range item.FindAll(Named(b.name(elemResponseLid))) {
		q := model.Question{
			Ident:      ident,
			Type:       model.QuestionMatching,
			SourceType: raw,
			Text:       prompt + b.marker + b.Text(response),
			Answers:    b.Answers(response, b.ruleScope(item, response)),
			Variation:  i + 1,
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		b.log.WithField("item", ident).Warn("matching question has no responses, skipping")
	}
	return questions
}

// ruleScope locates the respcondition holding the match rule for response.
// It falls back to the whole item when no rule references the response.
func (b *QuestionBuilder) ruleScope(item, response *Node) *Node {
	respIdent := response.AttrValue("ident")
	rule := item.FindFirst(func(n *Node) bool {
		return n.Name == b.name(elemVarEqual) && n.AttrValue("respident") == respIdent
	})
	if rule != nil && rule.Parent != nil && rule.Parent.Parent != nil {
		return rule.Parent.Parent
	}

	b.log.WithFields(logrus.Fields{
		"item":     item.AttrValue("ident"),
		"response": respIdent,
	}).Warn("no match rule for response, resolving against whole item")
	return item
}

// Text returns the reduced text of the first mattext below n
func (b *QuestionBuilder) Text(n *Node) string {
	mattext := n.FindFirst(Named(b.name(elemMattext)))
	if mattext == nil {
		return ""
	}
	return b.reducer.Reduce(mattext.Text)
}

// Answers enumerates the response labels in answerScope and marks as correct
// every answer referenced by a non-negated varequal rule in ruleScope
func (b *QuestionBuilder) Answers(answerScope, ruleScope *Node) []model.Answer {
	var answers []model.Answer
	for _, label := range answerScope.FindAll(Named(b.name(elemResponseLabel))) {
		answers = append(answers, model.Answer{
			Ident: label.AttrValue("ident"),
			Text:  b.Text(label),
		})
	}

	for _, rule := range ruleScope.FindAll(Named(b.name(elemVarEqual))) {
		if rule.Parent != nil && rule.Parent.Name == b.name(elemNot) {
			continue
		}
		ref := strings.TrimSpace(rule.Text)
		for i := range answers {
			if answers[i].Ident == ref {
				answers[i].Correct = true
			}
		}
	}

	return answers
}
