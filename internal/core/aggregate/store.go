// Package aggregate accumulates extracted fields across a batch.
package aggregate

import (
	"maps"
	"slices"
	"sync"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

// Store keeps per-author discipline sets, per-discipline mention counts and
// per-discipline hour sums. Keys are the cleaned author/discipline strings;
// empty values are never inserted. Documents are recorded one at a time, the
// lock only protects readers such as the HTTP stats endpoint.
type Store struct {
	mu sync.RWMutex

	authorDisciplines      map[string]map[string]struct{}
	disciplineMentionCount map[string]int
	disciplineHours        map[string]int
}

func NewStore() *Store {
	return &Store{
		authorDisciplines:      make(map[string]map[string]struct{}),
		disciplineMentionCount: make(map[string]int),
		disciplineHours:        make(map[string]int),
	}
}

func (s *Store) RecordAuthorDiscipline(author, discipline string) {
	if author == "" || discipline == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.authorDisciplines[author]
	if !ok {
		set = make(map[string]struct{})
		s.authorDisciplines[author] = set
	}
	set[discipline] = struct{}{}
}

func (s *Store) RecordDisciplineMention(discipline string) {
	if discipline == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disciplineMentionCount[discipline]++
}

func (s *Store) RecordDisciplineHours(discipline string, hours int) {
	if discipline == "" || hours <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disciplineHours[discipline] += hours
}

// AuthorDisciplines returns a copy with each discipline set sorted.
func (s *Store) AuthorDisciplines() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]string, len(s.authorDisciplines))
	for author, set := range s.authorDisciplines {
		out[author] = slices.Sorted(maps.Keys(set))
	}
	return out
}

func (s *Store) DisciplineMentions() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.disciplineMentionCount)
}

func (s *Store) DisciplineHours() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.disciplineHours)
}

// Snapshot flattens the store into name-sorted slices. A discipline appears
// if it has mentions or hours.
func (s *Store) Snapshot() domain.Statistics {
	authors := s.AuthorDisciplines()
	mentions := s.DisciplineMentions()
	hours := s.DisciplineHours()

	stats := domain.Statistics{
		Authors:     make([]domain.AuthorStat, 0, len(authors)),
		Disciplines: make([]domain.DisciplineStat, 0, len(mentions)),
	}
	for _, author := range slices.Sorted(maps.Keys(authors)) {
		stats.Authors = append(stats.Authors, domain.AuthorStat{
			Author:      author,
			Disciplines: authors[author],
		})
	}

	names := make(map[string]struct{}, len(mentions)+len(hours))
	for name := range mentions {
		names[name] = struct{}{}
	}
	for name := range hours {
		names[name] = struct{}{}
	}
	for _, name := range slices.Sorted(maps.Keys(names)) {
		stats.Disciplines = append(stats.Disciplines, domain.DisciplineStat{
			Discipline: name,
			Mentions:   mentions[name],
			Hours:      hours[name],
		})
	}
	return stats
}
