package render

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/ppiankov/qticonv/internal/model"
	"github.com/sirupsen/logrus/hooks/test"
)

func trueFalse() model.Question {
	return model.Question{
		Ident: "tf",
		Type:  model.QuestionTrueFalse,
		Text:  "The sky is blue.",
		Answers: []model.Answer{
			{Ident: "1", Text: "True", Correct: true},
			{Ident: "2", Text: "False"},
		},
	}
}

func plain(ident string) model.Question {
	return model.Question{
		Ident: ident,
		Type:  model.QuestionMultiChoice,
		Text:  "Question " + ident,
		Answers: []model.Answer{
			{Ident: "a", Text: "yes", Correct: true},
			{Ident: "b", Text: "no"},
		},
	}
}

func matching(ident string, n int) []model.Question {
	var out []model.Question
	for i := 1; i <= n; i++ {
		q := plain(ident)
		q.Type = model.QuestionMatching
		q.Variation = i
		out = append(out, q)
	}
	return out
}

func newTestRenderer() (*Renderer, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return NewRenderer(logger, true), hook
}

func TestQuestion_TrueFalseScenario(t *testing.T) {
	got, err := Question(trueFalse(), 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "Question 1 - multiple choice, no shuffle \n" +
		"The sky is blue.\n" +
		"*A: True\n" +
		"B: False\n" +
		"Feedback: \n"
	if got != want {
		t.Errorf("unexpected block:\n%q\nwant:\n%q", got, want)
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		q    model.Question
		want string
	}{
		{"true false", model.Question{Type: model.QuestionTrueFalse}, "multiple choice, no shuffle"},
		{"multiple answers", model.Question{Type: model.QuestionMultiAnswer}, "checkbox, partial credit, shuffle"},
		{"multiple choice", model.Question{Type: model.QuestionMultiChoice}, "multiple choice, shuffle"},
		{"matching", model.Question{Type: model.QuestionMatching}, "multiple choice, shuffle"},
		{"matching variation", model.Question{Type: model.QuestionMatching, Variation: 3}, "multiple choice, shuffle, variation 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Description(tt.q)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestQuestion_Unsupported(t *testing.T) {
	_, err := Question(model.Question{Type: model.QuestionUnsupported, SourceType: "essay_question"}, 1)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestAnswers_LettersAndFeedback(t *testing.T) {
	q := model.Question{Type: model.QuestionMultiAnswer}
	for i := 0; i < 5; i++ {
		q.Answers = append(q.Answers, model.Answer{Text: "opt", Correct: i%2 == 0})
	}

	lines := strings.Split(strings.TrimSuffix(Answers(q), "\n"), "\n")

	answerLine := regexp.MustCompile(`^\*?([A-Z]+): opt$`)
	var letters []string
	feedback := 0
	for i, line := range lines {
		if line == "Feedback: " {
			feedback++
			prev := lines[i-1]
			if strings.HasPrefix(prev, "*") {
				t.Errorf("feedback line follows correct answer %q", prev)
			}
			continue
		}
		m := answerLine.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("unexpected line %q", line)
		}
		letters = append(letters, m[1])
	}

	if strings.Join(letters, "") != "ABCDE" {
		t.Errorf("expected letters ABCDE, got %v", letters)
	}
	if feedback != len(q.Answers)-q.CorrectCount() {
		t.Errorf("expected %d feedback lines, got %d", len(q.Answers)-q.CorrectCount(), feedback)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := Label(tt.i); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

var headerNumber = regexp.MustCompile(`(?m)^Question (\d+) - `)

func numbers(text string) []string {
	var out []string
	for _, m := range headerNumber.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

func TestRenderer_BankNumbering(t *testing.T) {
	r, _ := newTestRenderer()

	bank := &model.QuestionBank{Ident: "b"}
	bank.Questions = append(bank.Questions, plain("p1"))
	bank.Questions = append(bank.Questions, matching("m", 3)...)
	bank.Questions = append(bank.Questions, plain("p2"))

	text, visible := r.Bank(bank, 1)

	if got := strings.Join(numbers(text), ","); got != "1,2,2,2,3" {
		t.Errorf("expected numbers 1,2,2,2,3, got %s", got)
	}
	if visible != 3 {
		t.Errorf("expected visible count 3, got %d", visible)
	}
	if visible != bank.VisibleCount() {
		t.Errorf("expected rendered count to match model count %d", bank.VisibleCount())
	}
	if strings.Count(text, blockSeparator) != 5 {
		t.Errorf("expected 5 separated blocks, got %d", strings.Count(text, blockSeparator))
	}
}

func TestRenderer_BankMatchingVisibleCount(t *testing.T) {
	r, _ := newTestRenderer()

	only := &model.QuestionBank{Questions: matching("m", 3)}
	text, visible := r.Bank(only, 1)
	if visible != 1 {
		t.Errorf("expected visible count 1, got %d", visible)
	}
	if strings.Count(text, "variation") != 3 {
		t.Errorf("expected 3 variation blocks, got %d", strings.Count(text, "variation"))
	}
	for i, v := range []string{"variation 1", "variation 2", "variation 3"} {
		if !strings.Contains(text, v) {
			t.Errorf("expected block %d to carry %q", i, v)
		}
	}

	withPlain := &model.QuestionBank{Questions: append(matching("m", 3), plain("p"))}
	if _, visible := r.Bank(withPlain, 1); visible != 2 {
		t.Errorf("expected visible count 2, got %d", visible)
	}

	backToBack := &model.QuestionBank{Questions: append(matching("m1", 2), matching("m2", 2)...)}
	text, visible = r.Bank(backToBack, 5)
	if got := strings.Join(numbers(text), ","); got != "5,5,6,6" {
		t.Errorf("expected numbers 5,5,6,6, got %s", got)
	}
	if visible != 2 {
		t.Errorf("expected visible count 2, got %d", visible)
	}
}

func TestRenderer_BankSkipsUnsupported(t *testing.T) {
	r, hook := newTestRenderer()

	bank := &model.QuestionBank{Questions: []model.Question{
		plain("p1"),
		{Ident: "essay", Type: model.QuestionUnsupported, SourceType: "essay_question"},
		plain("p2"),
	}}

	text, visible := r.Bank(bank, 1)
	if got := strings.Join(numbers(text), ","); got != "1,2" {
		t.Errorf("expected numbers 1,2, got %s", got)
	}
	if visible != 2 {
		t.Errorf("expected visible count 2, got %d", visible)
	}
	if hook.LastEntry() == nil || hook.LastEntry().Data["item"] != "essay" {
		t.Error("expected diagnostic for the unsupported question")
	}
}

func TestRenderer_WarnsOnNoCorrectAnswer(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := NewRenderer(logger, true)

	q := plain("p")
	q.Answers[0].Correct = false
	text, _ := r.Bank(&model.QuestionBank{Questions: []model.Question{q}}, 1)

	if strings.Contains(text, "*") {
		t.Error("expected no starred answer")
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(hook.Entries))
	}

	quiet := NewRenderer(logger, false)
	hook.Reset()
	quiet.Bank(&model.QuestionBank{Questions: []model.Question{q}}, 1)
	if len(hook.Entries) != 0 {
		t.Errorf("expected no warning when disabled, got %d", len(hook.Entries))
	}
}

func TestRenderer_AssessmentCarriesNumbering(t *testing.T) {
	r, _ := newTestRenderer()

	bankA := &model.QuestionBank{Ident: "a", Questions: append([]model.Question{plain("a1")}, matching("am", 2)...)}
	bankB := &model.QuestionBank{Ident: "b", Questions: []model.Question{plain("b1"), plain("b2")}}

	a := &model.Assessment{Banks: []*model.QuestionBank{bankA, bankB}}
	text := r.Assessment(a)

	if got := strings.Join(numbers(text), ","); got != "1,2,2,3,4" {
		t.Errorf("expected numbers 1,2,2,3,4, got %s", got)
	}

	empty := r.Assessment(&model.Assessment{})
	if empty != "" {
		t.Errorf("expected empty output for assessment without banks, got %q", empty)
	}
}
