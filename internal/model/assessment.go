package model

// Assessment is a named quiz drawing questions from one or more banks
type Assessment struct {
	Ident    string          `json:"ident"`
	Title    string          `json:"title"`
	BankRefs []string        `json:"bank_refs"` // sourcebank_ref values in document order
	Banks    []*QuestionBank `json:"-"`         // Resolved references, shared with the bank table
}

// Resolve looks up every bank reference in banks and replaces Banks with the
// references found, in reference order. Identifiers with no matching bank are
// returned; the caller decides whether that is fatal.
func (a *Assessment) Resolve(banks map[string]*QuestionBank) []string {
	var missing []string
	a.Banks = make([]*QuestionBank, 0, len(a.BankRefs))
	for _, ref := range a.BankRefs {
		bank, ok := banks[ref]
		if !ok {
			missing = append(missing, ref)
			continue
		}
		a.Banks = append(a.Banks, bank)
	}
	return missing
}
