package learning

import (
	"maps"
	"strings"
)

// Store maps item identifiers to their review progress. It performs no
// validation; absence of an id means the item was never reviewed.
// A Store is not safe for concurrent use.
type Store struct {
	cards     map[string]CardProgress
	questions map[string]QuizProgress
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		cards:     make(map[string]CardProgress),
		questions: make(map[string]QuizProgress),
	}
}

// NewStoreFrom creates a Store seeded with copies of the given maps.
func NewStoreFrom(cards map[string]CardProgress, questions map[string]QuizProgress) *Store {
	store := NewStore()
	maps.Copy(store.cards, cards)
	maps.Copy(store.questions, questions)
	return store
}

func (s *Store) Card(id string) (CardProgress, bool) {
	progress, ok := s.cards[id]
	return progress, ok
}

func (s *Store) SetCard(id string, progress CardProgress) {
	s.cards[id] = progress
}

func (s *Store) Question(id string) (QuizProgress, bool) {
	progress, ok := s.questions[id]
	return progress, ok
}

func (s *Store) SetQuestion(id string, progress QuizProgress) {
	s.questions[id] = progress
}

// Cards returns a copy of every card progress keyed by id.
func (s *Store) Cards() map[string]CardProgress {
	return maps.Clone(s.cards)
}

// Questions returns a copy of every question progress keyed by id.
func (s *Store) Questions() map[string]QuizProgress {
	return maps.Clone(s.questions)
}

// DeleteWithPrefix drops every record whose id starts with prefix and returns
// how many were removed. Study sets use it to forget their items on deletion.
func (s *Store) DeleteWithPrefix(prefix string) int {
	removed := 0
	for id := range s.cards {
		if strings.HasPrefix(id, prefix) {
			delete(s.cards, id)
			removed++
		}
	}
	for id := range s.questions {
		if strings.HasPrefix(id, prefix) {
			delete(s.questions, id)
			removed++
		}
	}
	return removed
}
