package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSpec mirrors the on-disk dataset format.
type fileSpec struct {
	Name      string         `yaml:"name"`
	Documents []documentSpec `yaml:"documents"`
}

type documentSpec struct {
	Document  `yaml:",inline"`
	Questions []Question `yaml:"questions"`
}

// LoadOptions tunes dataset loading.
type LoadOptions struct {
	// MaxQuestionsPerDoc truncates each document's question list when > 0.
	MaxQuestionsPerDoc int
}

// Load reads a dataset file and resolves document sizes. Relative document
// paths are resolved against the dataset file's directory.
func Load(path string, opts LoadOptions) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read dataset: %w", err)
	}
	var parsed fileSpec
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Set{}, fmt.Errorf("parse dataset: %w", err)
	}
	if len(parsed.Documents) == 0 {
		return Set{}, fmt.Errorf("dataset %s has no documents", path)
	}

	baseDir := filepath.Dir(path)
	set := Set{
		Name:                parsed.Name,
		Documents:           make([]Document, 0, len(parsed.Documents)),
		QuestionsByDocument: make(map[string][]Question, len(parsed.Documents)),
	}
	seen := map[string]bool{}
	for _, entry := range parsed.Documents {
		doc := entry.Document
		if strings.TrimSpace(doc.ID) == "" {
			return Set{}, fmt.Errorf("dataset %s: document with empty id", path)
		}
		if seen[doc.ID] {
			return Set{}, fmt.Errorf("dataset %s: duplicate document id %q", path, doc.ID)
		}
		seen[doc.ID] = true
		if doc.Path != "" && doc.Text != "" {
			return Set{}, fmt.Errorf("document %s: path and text are mutually exclusive", doc.ID)
		}
		if doc.Path == "" && doc.Text == "" {
			return Set{}, fmt.Errorf("document %s: one of path or text is required", doc.ID)
		}
		if doc.Title == "" {
			doc.Title = doc.ID
		}
		if doc.Path != "" {
			if !filepath.IsAbs(doc.Path) {
				doc.Path = filepath.Join(baseDir, doc.Path)
			}
			info, err := os.Stat(doc.Path)
			if err != nil {
				return Set{}, fmt.Errorf("document %s: %w", doc.ID, err)
			}
			doc.SizeBytes = info.Size()
		} else {
			doc.SizeBytes = int64(len(doc.Text))
		}

		questions := entry.Questions
		if len(questions) == 0 {
			return Set{}, fmt.Errorf("document %s has no questions", doc.ID)
		}
		if opts.MaxQuestionsPerDoc > 0 && len(questions) > opts.MaxQuestionsPerDoc {
			questions = questions[:opts.MaxQuestionsPerDoc]
		}
		for i, question := range questions {
			if strings.TrimSpace(question.ID) == "" {
				questions[i].ID = fmt.Sprintf("q%d", i+1)
			}
		}

		set.Documents = append(set.Documents, doc)
		set.QuestionsByDocument[doc.ID] = questions
	}
	return set, nil
}
