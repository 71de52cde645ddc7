package studyset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary() *Library {
	library := NewLibrary()
	n := 0
	library.newID = func() string {
		n++
		return fmt.Sprintf("set-%d", n)
	}
	return library
}

func TestLibrary_Save(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	flashcards := []Flashcard{{Question: "q", Answer: "a", CreatedBy: CreatedByAI}}

	t.Run("defaults", func(t *testing.T) {
		library := newTestLibrary()
		set, err := library.Save("  ", "", flashcards, nil, now)
		require.NoError(t, err)

		assert.Equal(t, Set{
			ID:         "set-1",
			Title:      DefaultTitle,
			Category:   DefaultCategory,
			Flashcards: flashcards,
			Created:    now,
		}, set)
		got, err := library.Get("set-1")
		require.NoError(t, err)
		assert.Equal(t, set, got)
	})

	t.Run("new category is registered", func(t *testing.T) {
		library := newTestLibrary()
		_, err := library.Save("Cells", "Biology", flashcards, nil, now)
		require.NoError(t, err)
		assert.Equal(t, []string{DefaultCategory, "Biology"}, library.Categories())
	})

	t.Run("empty content", func(t *testing.T) {
		library := newTestLibrary()
		_, err := library.Save("Empty", "", nil, nil, now)
		assert.ErrorIs(t, err, ErrEmptySet)
		assert.Zero(t, library.Len())
	})

	t.Run("uuid ids", func(t *testing.T) {
		library := NewLibrary()
		set, err := library.Save("Cells", "", flashcards, nil, now)
		require.NoError(t, err)
		_, err = uuid.Parse(set.ID)
		assert.NoError(t, err)
	})
}

func TestLibrary_Load(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	studied := created.Add(48 * time.Hour)

	library := newTestLibrary()
	set, err := library.Save("Cells", "", []Flashcard{{Question: "q", Answer: "a"}}, nil, created)
	require.NoError(t, err)

	loaded, err := library.Load(set.ID, studied)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.StudyCount)
	require.NotNil(t, loaded.LastStudied)
	assert.Equal(t, studied, *loaded.LastStudied)

	loaded, err = library.Load(set.ID, studied)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.StudyCount)

	_, err = library.Load("missing", studied)
	assert.ErrorIs(t, err, ErrSetNotFound)
}

func TestLibrary_DeleteAndList(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	library := newTestLibrary()
	for i, title := range []string{"first", "second", "third"} {
		_, err := library.Save(title, "", []Flashcard{{Question: "q", Answer: "a"}}, nil, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}

	var titles []string
	for _, set := range library.List() {
		titles = append(titles, set.Title)
	}
	assert.Equal(t, []string{"third", "second", "first"}, titles)

	found, err := library.Find("SECOND")
	require.NoError(t, err)
	assert.Equal(t, "set-2", found.ID)

	require.NoError(t, library.Delete("set-2"))
	assert.ErrorIs(t, library.Delete("set-2"), ErrSetNotFound)
	_, err = library.Find("second")
	assert.ErrorIs(t, err, ErrSetNotFound)
	assert.Equal(t, 2, library.Len())
}

func TestLibrary_Categories(t *testing.T) {
	library := NewLibraryFrom(map[string]Set{
		"a": {ID: "a", Category: "Biology"},
		"b": {ID: "b", Category: "History"},
	}, []string{"Biology", "History"})
	assert.Equal(t, []string{DefaultCategory, "Biology", "History"}, library.Categories())

	assert.ErrorIs(t, library.AddCategory(" "), ErrCategoryNameMissing)
	require.NoError(t, library.AddCategory("Math"))
	require.NoError(t, library.AddCategory("Math"))
	assert.Equal(t, []string{DefaultCategory, "Biology", "History", "Math"}, library.Categories())

	assert.ErrorIs(t, library.DeleteCategory(DefaultCategory), ErrDefaultCategory)
	assert.ErrorIs(t, library.DeleteCategory("Art"), ErrCategoryNotFound)

	require.NoError(t, library.DeleteCategory("Biology"))
	assert.Equal(t, []string{DefaultCategory, "History", "Math"}, library.Categories())
	set, err := library.Get("a")
	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, set.Category)
}

func TestLibrary_CategorySummaries(t *testing.T) {
	library := NewLibraryFrom(map[string]Set{
		"a": {ID: "a", Category: "Biology", Flashcards: make([]Flashcard, 3), QuizQuestions: make([]QuizQuestion, 2), StudyCount: 4},
		"b": {ID: "b", Category: "Biology", Flashcards: make([]Flashcard, 1), StudyCount: 1},
		"c": {ID: "c", Category: "", QuizQuestions: make([]QuizQuestion, 5)},
	}, []string{"Biology", "History"})

	assert.Equal(t, []CategorySummary{
		{Category: DefaultCategory, Sets: 1, QuizQuestions: 5},
		{Category: "Biology", Sets: 2, Flashcards: 4, QuizQuestions: 2, TimesStudied: 5},
		{Category: "History"},
	}, library.CategorySummaries())
}

func TestExportSet(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	exportedAt := created.Add(time.Hour)
	set := Set{
		ID:            "s1",
		Title:         "Cell biology",
		Category:      "Biology",
		Flashcards:    []Flashcard{{Question: "q", Answer: "a", CreatedBy: CreatedByAI}},
		QuizQuestions: []QuizQuestion{{Question: "q", Options: []string{"a", "b", "c", "d"}, Correct: 2}},
		Created:       created,
		StudyCount:    4,
	}

	var buf bytes.Buffer
	require.NoError(t, ExportSet(&buf, set, exportedAt))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, ExportVersion, raw["version"])
	assert.Equal(t, "2025-03-10T10:00:00Z", raw["exportedAt"])
	assert.Equal(t, "Cell biology", raw["title"])
	assert.Contains(t, raw, "quizQuestions")
	assert.Nil(t, raw["lastStudied"])

	assert.Equal(t, "Cell_biology_flashcards.json", ExportFileName(set))
	assert.Equal(t, "s1_flashcards.json", ExportFileName(Set{ID: "s1"}))

	var exported SetExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))

	library := newTestLibrary()
	imported, err := library.ImportSet(exported.Set, exportedAt)
	require.NoError(t, err)
	assert.Equal(t, "set-1", imported.ID)
	assert.Equal(t, "Cell biology", imported.Title)
	assert.Equal(t, "Biology", imported.Category)
	assert.Equal(t, exportedAt, imported.Created)
	assert.Zero(t, imported.StudyCount)
	assert.Nil(t, imported.LastStudied)
	assert.Equal(t, CreatedByAI, imported.Flashcards[0].CreatedBy)
	assert.Equal(t, CreatedByImport, imported.QuizQuestions[0].CreatedBy)
}

func TestLibrary_ImportSet_Invalid(t *testing.T) {
	library := newTestLibrary()

	_, err := library.ImportSet(Set{Flashcards: []Flashcard{{Question: "q"}}}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = library.ImportSet(Set{}, time.Now())
	assert.ErrorIs(t, err, ErrEmptySet)

	set, err := library.ImportSet(Set{Flashcards: []Flashcard{{Question: "q", Answer: "a"}}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, ImportedTitle, set.Title)
	assert.Equal(t, DefaultCategory, set.Category)
}
