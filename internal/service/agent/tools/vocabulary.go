package tools

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"maichat/internal/domain"
)

// Canonical forms the vocabulary resolves to. The calculator branches on
// these, never on raw user input.
const (
	GenderMale   = "male"
	GenderFemale = "female"

	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"
	ActivityExtremelyActive  = "extremely_active"

	TargetMaintain = "maintain"
	TargetGain     = "gain"
	TargetLoss     = "loss"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

// vocabularyFile mirrors the embedded YAML: field -> canonical -> synonyms.
type vocabularyFile struct {
	Gender   map[string][]string `yaml:"gender"`
	Activity map[string][]string `yaml:"activity"`
	Target   map[string][]string `yaml:"target"`
}

// Vocabulary resolves free-text gender/activity/target values to their
// canonical forms via literal, case-insensitive synonym-set membership.
// It is immutable after construction and safe for concurrent use.
type Vocabulary struct {
	fields map[string]fieldTable
}

type fieldTable struct {
	synonyms map[string]string // lowercased synonym -> canonical
	accepted []string          // sorted synonym list, for error messages
}

// NewVocabulary parses the embedded synonym tables.
// Returns an error if the artifact is malformed or a synonym is ambiguous.
func NewVocabulary() (*Vocabulary, error) {
	var file vocabularyFile
	if err := yaml.Unmarshal(vocabularyYAML, &file); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}

	v := &Vocabulary{fields: make(map[string]fieldTable, 3)}
	for field, canonicals := range map[string]map[string][]string{
		"gender":   file.Gender,
		"activity": file.Activity,
		"target":   file.Target,
	} {
		table, err := buildFieldTable(field, canonicals)
		if err != nil {
			return nil, err
		}
		v.fields[field] = table
	}
	return v, nil
}

func buildFieldTable(field string, canonicals map[string][]string) (fieldTable, error) {
	if len(canonicals) == 0 {
		return fieldTable{}, fmt.Errorf("vocabulary field %q is empty", field)
	}

	table := fieldTable{synonyms: make(map[string]string)}
	for canonical, synonyms := range canonicals {
		for _, synonym := range synonyms {
			key := strings.ToLower(strings.TrimSpace(synonym))
			if existing, ok := table.synonyms[key]; ok && existing != canonical {
				return fieldTable{}, fmt.Errorf("vocabulary field %q: synonym %q maps to both %q and %q",
					field, synonym, existing, canonical)
			}
			table.synonyms[key] = canonical
			table.accepted = append(table.accepted, synonym)
		}
	}
	sort.Strings(table.accepted)
	return table, nil
}

// Resolve maps a raw value for the given field to its canonical form.
// An unrecognized value fails with InvalidArgumentError naming the field
// and the full accepted vocabulary.
func (v *Vocabulary) Resolve(field, raw string) (string, error) {
	table, ok := v.fields[field]
	if !ok {
		return "", fmt.Errorf("no vocabulary for field %q", field)
	}

	canonical, ok := table.synonyms[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", &domain.InvalidArgumentError{
			Field:    field,
			Message:  fmt.Sprintf("%q is not a recognized value", raw),
			Accepted: table.accepted,
		}
	}
	return canonical, nil
}

// Accepted returns the sorted accepted synonyms for a field, or nil for an
// unknown field.
func (v *Vocabulary) Accepted(field string) []string {
	return v.fields[field].accepted
}
