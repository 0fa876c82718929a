package migrate

import (
	"github.com/google/uuid"
)

// Kind names one entity level of the content hierarchy.
type Kind string

const (
	KindOrganisation Kind = "organisation"
	KindAcademy      Kind = "academy"
	KindCourse       Kind = "course"
	KindLesson       Kind = "lesson"
	KindQuiz         Kind = "quiz"
	KindQuestion     Kind = "question"
)

// Resolver maps natural keys to surrogate ids, one map per entity
// kind. It is populated as each parent level finishes its upserts and
// consulted when the next level down needs its parent id. The value is
// local to a single run; nothing about it is shared or ambient.
type Resolver struct {
	ids map[Kind]map[string]uuid.UUID
}

func NewResolver() *Resolver {
	return &Resolver{ids: make(map[Kind]map[string]uuid.UUID)}
}

func (r *Resolver) Register(kind Kind, naturalKey string, id uuid.UUID) {
	if naturalKey == "" || id == uuid.Nil {
		return
	}
	m, ok := r.ids[kind]
	if !ok {
		m = make(map[string]uuid.UUID)
		r.ids[kind] = m
	}
	m[naturalKey] = id
}

func (r *Resolver) Resolve(kind Kind, naturalKey string) (uuid.UUID, bool) {
	m, ok := r.ids[kind]
	if !ok {
		return uuid.Nil, false
	}
	id, ok := m[naturalKey]
	return id, ok
}

// Count reports how many distinct natural keys were registered for a
// kind. These counts back the audit row.
func (r *Resolver) Count(kind Kind) int {
	return len(r.ids[kind])
}
