package studyset

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCategory = "General"
	DefaultTitle    = "Untitled set"
	ImportedTitle   = "Imported set"
)

var (
	ErrSetNotFound         = errors.New("study set not found")
	ErrEmptySet            = errors.New("study set has no flashcards and no quiz questions")
	ErrDefaultCategory     = errors.New("the default category cannot be deleted")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameMissing = errors.New("category name is empty")
)

// Library holds every saved set together with the category list.
type Library struct {
	sets       map[string]Set
	categories []string
	newID      func() string
}

func NewLibrary() *Library {
	return NewLibraryFrom(nil, nil)
}

// NewLibraryFrom wraps previously persisted sets and categories.
// The default category is always present.
func NewLibraryFrom(sets map[string]Set, categories []string) *Library {
	if sets == nil {
		sets = make(map[string]Set)
	}
	if !slices.Contains(categories, DefaultCategory) {
		categories = append([]string{DefaultCategory}, categories...)
	}
	return &Library{
		sets:       sets,
		categories: categories,
		newID:      uuid.NewString,
	}
}

// Save stores new content as a set. Blank titles and categories fall back
// to the defaults, and an unknown category is added to the list.
func (l *Library) Save(title, category string, flashcards []Flashcard, questions []QuizQuestion, now time.Time) (Set, error) {
	if len(flashcards) == 0 && len(questions) == 0 {
		return Set{}, ErrEmptySet
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	if !slices.Contains(l.categories, category) {
		l.categories = append(l.categories, category)
	}

	set := Set{
		ID:            l.newID(),
		Title:         title,
		Category:      category,
		Flashcards:    slices.Clone(flashcards),
		QuizQuestions: slices.Clone(questions),
		Created:       now,
	}
	l.sets[set.ID] = set
	return set, nil
}

// Put stores a set as is, replacing a set with the same id.
func (l *Library) Put(set Set) {
	if set.Category != "" && !slices.Contains(l.categories, set.Category) {
		l.categories = append(l.categories, set.Category)
	}
	l.sets[set.ID] = set
}

func (l *Library) Get(id string) (Set, error) {
	set, ok := l.sets[id]
	if !ok {
		return Set{}, ErrSetNotFound
	}
	return set, nil
}

// Load returns the set and records that it is being studied.
func (l *Library) Load(id string, now time.Time) (Set, error) {
	set, ok := l.sets[id]
	if !ok {
		return Set{}, ErrSetNotFound
	}
	studied := now
	set.LastStudied = &studied
	set.StudyCount++
	l.sets[id] = set
	return set, nil
}

func (l *Library) Delete(id string) error {
	if _, ok := l.sets[id]; !ok {
		return ErrSetNotFound
	}
	delete(l.sets, id)
	return nil
}

// Find resolves a set by id, falling back to a case-insensitive title match.
func (l *Library) Find(idOrTitle string) (Set, error) {
	if set, ok := l.sets[idOrTitle]; ok {
		return set, nil
	}
	for _, set := range l.List() {
		if strings.EqualFold(set.Title, idOrTitle) {
			return set, nil
		}
	}
	return Set{}, ErrSetNotFound
}

// List returns the sets, newest first.
func (l *Library) List() []Set {
	sets := slices.Collect(maps.Values(l.sets))
	slices.SortStableFunc(sets, func(a, b Set) int {
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return sets
}

// Sets returns a copy of the stored sets keyed by id.
func (l *Library) Sets() map[string]Set {
	return maps.Clone(l.sets)
}

func (l *Library) Len() int {
	return len(l.sets)
}

func (l *Library) Categories() []string {
	return slices.Clone(l.categories)
}

// CategorySummary totals the sets filed under one category.
type CategorySummary struct {
	Category      string
	Sets          int
	Flashcards    int
	QuizQuestions int
	TimesStudied  int
}

// CategorySummaries returns one summary per category, in category order.
func (l *Library) CategorySummaries() []CategorySummary {
	summaries := make([]CategorySummary, 0, len(l.categories))
	index := make(map[string]int, len(l.categories))
	for _, category := range l.categories {
		index[category] = len(summaries)
		summaries = append(summaries, CategorySummary{Category: category})
	}
	for _, set := range l.sets {
		i, ok := index[set.Category]
		if !ok {
			i = index[DefaultCategory]
		}
		summaries[i].Sets++
		summaries[i].Flashcards += len(set.Flashcards)
		summaries[i].QuizQuestions += len(set.QuizQuestions)
		summaries[i].TimesStudied += set.StudyCount
	}
	return summaries
}

func (l *Library) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCategoryNameMissing
	}
	if !slices.Contains(l.categories, name) {
		l.categories = append(l.categories, name)
	}
	return nil
}

// DeleteCategory removes a category and moves its sets to the default one.
func (l *Library) DeleteCategory(name string) error {
	if name == DefaultCategory {
		return ErrDefaultCategory
	}
	index := slices.Index(l.categories, name)
	if index < 0 {
		return ErrCategoryNotFound
	}
	l.categories = slices.Delete(l.categories, index, index+1)
	for id, set := range l.sets {
		if set.Category == name {
			set.Category = DefaultCategory
			l.sets[id] = set
		}
	}
	return nil
}
