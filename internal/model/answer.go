package model

// Answer is one candidate answer of a question
type Answer struct {
	Ident   string `json:"ident"`   // response_label ident, unique within the question
	Text    string `json:"text"`    // Plain text (markup stripped)
	Correct bool   `json:"correct"` // Set during correctness resolution
}
