package migrate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glasscode/content-migrate/internal/platform/logger"
)

// FileShape tags the top-level structure of a content file. These
// shapes are the complete input grammar the reader accepts; anything
// else yields no records.
type FileShape int

const (
	ShapeUnknown FileShape = iota
	ShapeArray
	ShapeQuestionsObject
	ShapeLessonsObject
	ShapeSingleObject
)

func (s FileShape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeQuestionsObject:
		return "questions_object"
	case ShapeLessonsObject:
		return "lessons_object"
	case ShapeSingleObject:
		return "single_object"
	default:
		return "unknown"
	}
}

// RegistryModule is one entry of registry.json's modules array.
type RegistryModule struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Difficulty  string          `json:"difficulty"`
	Order       int             `json:"order"`
	Raw         json.RawMessage `json:"-"`
}

type Registry struct {
	Modules []RegistryModule `json:"modules"`
}

// ReadRegistry loads the module registry. A missing or malformed
// registry is a run-level failure; nothing downstream can resolve
// course parents without it.
func ReadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}
	var probe struct {
		Modules []json.RawMessage `json:"modules"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	reg := &Registry{Modules: make([]RegistryModule, 0, len(probe.Modules))}
	for i, m := range probe.Modules {
		var mod RegistryModule
		if err := json.Unmarshal(m, &mod); err != nil {
			return nil, fmt.Errorf("parse registry module %d: %w", i, err)
		}
		mod.Raw = m
		reg.Modules = append(reg.Modules, mod)
	}
	return reg, nil
}

// ReadRecords loads one content file and flattens it into a list of
// raw records, accepting a bare array, an object wrapping a
// "questions" or "lessons" array, or a single object. Malformed files
// are logged and produce zero records; a broken lesson file must
// never abort the run.
func ReadRecords(path string, log *logger.Logger) ([]map[string]any, FileShape) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ShapeUnknown
		}
		log.Warn("skipping unreadable content file", "file", path, "error", err)
		return nil, ShapeUnknown
	}

	shape := detectShape(raw)
	switch shape {
	case ShapeArray:
		var records []map[string]any
		if err := json.Unmarshal(raw, &records); err != nil {
			log.Warn("skipping malformed content file", "file", path, "shape", shape.String(), "error", err)
			return nil, ShapeUnknown
		}
		return records, shape
	case ShapeQuestionsObject, ShapeLessonsObject:
		var wrapper struct {
			Questions []map[string]any `json:"questions"`
			Lessons   []map[string]any `json:"lessons"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			log.Warn("skipping malformed content file", "file", path, "shape", shape.String(), "error", err)
			return nil, ShapeUnknown
		}
		if shape == ShapeQuestionsObject {
			return wrapper.Questions, shape
		}
		return wrapper.Lessons, shape
	case ShapeSingleObject:
		var record map[string]any
		if err := json.Unmarshal(raw, &record); err != nil {
			log.Warn("skipping malformed content file", "file", path, "shape", shape.String(), "error", err)
			return nil, ShapeUnknown
		}
		return []map[string]any{record}, shape
	default:
		log.Warn("skipping content file with unrecognized structure", "file", path)
		return nil, ShapeUnknown
	}
}

// detectShape decides the file's shape once, up front. Wrapped list
// shapes win over the generic single-object shape so quiz and lesson
// files unwrap to their record lists.
func detectShape(raw []byte) FileShape {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ShapeUnknown
	}
	switch v := probe.(type) {
	case []any:
		return ShapeArray
	case map[string]any:
		if qs, ok := v["questions"].([]any); ok && qs != nil {
			return ShapeQuestionsObject
		}
		if ls, ok := v["lessons"].([]any); ok && ls != nil {
			return ShapeLessonsObject
		}
		return ShapeSingleObject
	default:
		return ShapeUnknown
	}
}
