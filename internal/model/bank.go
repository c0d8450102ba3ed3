package model

// QuestionBank is an ordered collection of questions sharing a bank identity.
// Questions holds every expanded question in source order, so its length can
// exceed VisibleCount when matching questions are present.
type QuestionBank struct {
	Ident     string     `json:"ident"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// VisibleCount returns the number of distinct question numbers the bank
// occupies in the destination format.
func (b *QuestionBank) VisibleCount() int {
	count := 0
	for i, q := range b.Questions {
		if i == 0 || !ContinuesChain(b.Questions[i-1], q) {
			count++
		}
	}
	return count
}
