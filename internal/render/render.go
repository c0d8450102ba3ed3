package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/qticonv/internal/model"
	"github.com/sirupsen/logrus"
)

// ErrUnsupported is returned when rendering a question of unsupported type
var ErrUnsupported = errors.New("question type not supported")

// blockSeparator follows every question block in a bank
const blockSeparator = "\n\n\n"

// Description returns the destination header description for q
func Description(q model.Question) (string, error) {
	var desc string
	switch q.Type {
	case model.QuestionTrueFalse:
		// No shuffle so True always comes first
		desc = "multiple choice, no shuffle"
	case model.QuestionMultiAnswer:
		desc = "checkbox, partial credit, shuffle"
	case model.QuestionMultiChoice, model.QuestionMatching:
		desc = "multiple choice, shuffle"
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, q.SourceType)
	}

	if q.HasVariation() {
		desc = fmt.Sprintf("%s, variation %d", desc, q.Variation)
	}
	return desc, nil
}

// Answers renders the answer lines of q. Correct answers are starred; every
// incorrect answer is followed by an empty Feedback line.
func Answers(q model.Question) string {
	var buf strings.Builder
	for i, a := range q.Answers {
		if a.Correct {
			fmt.Fprintf(&buf, "*%s: %s\n", Label(i), a.Text)
			continue
		}
		fmt.Fprintf(&buf, "%s: %s\n", Label(i), a.Text)
		buf.WriteString("Feedback: \n")
	}
	return buf.String()
}

// Question renders a single question block numbered number
func Question(q model.Question, number int) (string, error) {
	desc, err := Description(q)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Question %d - %s \n%s\n%s", number, desc, q.Text, Answers(q)), nil
}

// Renderer renders banks and assessments, reporting diagnostics
type Renderer struct {
	log           logrus.FieldLogger
	warnNoCorrect bool
}

// NewRenderer creates a new renderer. When warnNoCorrect is set, questions
// without any correct answer are rendered but reported.
func NewRenderer(log logrus.FieldLogger, warnNoCorrect bool) *Renderer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{
		log:           log,
		warnNoCorrect: warnNoCorrect,
	}
}

// Bank renders every question of b starting at question number start and
// returns the text along with the number of visible questions it used.
// Variations of one matching question share a number.
func (r *Renderer) Bank(b *model.QuestionBank, start int) (string, int) {
	var buf strings.Builder
	number := start
	visible := 0

	var prev *model.Question
	for i := range b.Questions {
		q := b.Questions[i]
		log := r.log.WithFields(logrus.Fields{"bank": b.Ident, "item": q.Ident})

		if !q.Type.Supported() {
			log.WithError(fmt.Errorf("%w: %s", ErrUnsupported, q.SourceType)).Warn("skipping question")
			continue
		}

		if prev == nil || !model.ContinuesChain(*prev, q) {
			if prev != nil {
				number++
			}
			visible++
		}
		prev = &b.Questions[i]

		if r.warnNoCorrect && q.CorrectCount() == 0 {
			log.WithField("number", number).Warn("question has no correct answer")
		}

		block, err := Question(q, number)
		if err != nil {
			log.WithError(err).Warn("skipping question")
			continue
		}
		buf.WriteString(block)
		buf.WriteString(blockSeparator)
	}

	return buf.String(), visible
}

// Assessment renders the resolved banks of a in reference order, numbering
// continuously across bank boundaries
func (r *Renderer) Assessment(a *model.Assessment) string {
	var buf strings.Builder
	number := 1
	for _, b := range a.Banks {
		text, visible := r.Bank(b, number)
		buf.WriteString(text)
		number += visible
	}
	return buf.String()
}
