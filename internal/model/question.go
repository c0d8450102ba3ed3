package model

// QuestionType is the closed set of question kinds the converter understands
type QuestionType int

const (
	QuestionUnsupported QuestionType = iota
	QuestionTrueFalse
	QuestionMultiAnswer
	QuestionMultiChoice
	QuestionMatching
)

// sourceQuestionTypes maps the question_type metadata values to types
var sourceQuestionTypes = map[string]QuestionType{
	"true_false_question":       QuestionTrueFalse,
	"multiple_answers_question": QuestionMultiAnswer,
	"multiple_choice_question":  QuestionMultiChoice,
	"matching_question":         QuestionMatching,
}

// ParseQuestionType maps a question_type metadata value to a QuestionType.
// Unknown or empty values map to QuestionUnsupported.
func ParseQuestionType(s string) QuestionType {
	if t, ok := sourceQuestionTypes[s]; ok {
		return t
	}
	return QuestionUnsupported
}

func (t QuestionType) String() string {
	switch t {
	case QuestionTrueFalse:
		return "true_false_question"
	case QuestionMultiAnswer:
		return "multiple_answers_question"
	case QuestionMultiChoice:
		return "multiple_choice_question"
	case QuestionMatching:
		return "matching_question"
	default:
		return "unsupported"
	}
}

// Supported reports whether questions of this type can be rendered
func (t QuestionType) Supported() bool {
	return t != QuestionUnsupported
}

// Question is a single renderable question.
// Matching questions are expanded into one Question per term, each with a
// Variation in 1..N; every other question has Variation 0.
type Question struct {
	Ident      string       `json:"ident"`
	Type       QuestionType `json:"type"`
	SourceType string       `json:"source_type,omitempty"` // Raw question_type value
	Text       string       `json:"text"`
	Answers    []Answer     `json:"answers"`
	Variation  int          `json:"variation,omitempty"`
}

// HasVariation reports whether the question belongs to a variation chain
func (q Question) HasVariation() bool {
	return q.Variation > 0
}

// CorrectCount returns the number of answers marked correct
func (q Question) CorrectCount() int {
	n := 0
	for _, a := range q.Answers {
		if a.Correct {
			n++
		}
	}
	return n
}

// ContinuesChain reports whether cur is a further variation of the same
// destination question as prev, i.e. it must share prev's question number.
func ContinuesChain(prev, cur Question) bool {
	return prev.HasVariation() && cur.HasVariation() && cur.Variation > prev.Variation
}
