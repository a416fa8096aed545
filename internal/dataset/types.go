package dataset

// Document is one benchmark document. Content lives either in a source file
// referenced by Path or inline in Text; exactly one of the two is set.
type Document struct {
	ID        string            `json:"id" yaml:"id"`
	Title     string            `json:"title" yaml:"title"`
	Path      string            `json:"path,omitempty" yaml:"path"`
	Text      string            `json:"-" yaml:"text"`
	SizeBytes int64             `json:"size_bytes" yaml:"-"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata"`
}

// Inline reports whether the document carries its content directly.
func (d Document) Inline() bool {
	return d.Path == ""
}

// Question is one question about a document, with its reference answer.
type Question struct {
	ID        string            `json:"id" yaml:"id"`
	Text      string            `json:"text" yaml:"text"`
	Reference string            `json:"reference" yaml:"reference"`
	Metadata  map[string]string `json:"metadata,omitempty" yaml:"metadata"`
}

// Set is a loaded dataset: ordered documents and their questions.
type Set struct {
	Name                string
	Documents           []Document
	QuestionsByDocument map[string][]Question
}

// TotalQuestions counts questions across every document in the set.
func (s Set) TotalQuestions() int {
	total := 0
	for _, questions := range s.QuestionsByDocument {
		total += len(questions)
	}
	return total
}
