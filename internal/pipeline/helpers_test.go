package pipeline

import (
	"github.com/ppiankov/qticonv/internal/extract"
	"github.com/ppiankov/qticonv/internal/model"
)

func docWithBank(path, ident, title string) *extract.DocumentResult {
	return &extract.DocumentResult{
		Path: path,
		Bank: &model.QuestionBank{Ident: ident, Title: title},
	}
}
