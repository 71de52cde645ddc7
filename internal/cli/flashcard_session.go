package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/at-ishikawa/studymaster/internal/learning"
	"github.com/at-ishikawa/studymaster/internal/statistics"
	"github.com/at-ishikawa/studymaster/internal/studyset"
)

type flashcardItem struct {
	id   string
	card studyset.Flashcard
}

// FlashcardSession manages the interactive review of the flashcards of a set
type FlashcardSession struct {
	*InteractiveSession
	tracker    *learning.Tracker
	aggregator *statistics.Aggregator
	cards      []flashcardItem
	total      int
	reviewed   int
	correct    int
	finished   bool
}

// NewFlashcardSession creates a session over the cards of set. With dueOnly,
// cards whose next review is in the future are left out.
func NewFlashcardSession(
	base *InteractiveSession,
	set studyset.Set,
	tracker *learning.Tracker,
	aggregator *statistics.Aggregator,
	dueOnly bool,
) *FlashcardSession {
	ids := set.CardIDs()
	if dueOnly {
		ids = learning.DueCards(ids, tracker.Store(), tracker.Now())
	}
	byID := make(map[string]studyset.Flashcard, len(set.Flashcards))
	for i, card := range set.Flashcards {
		byID[studyset.CardID(set.ID, i)] = card
	}

	cards := make([]flashcardItem, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, flashcardItem{id: id, card: byID[id]})
	}
	return &FlashcardSession{
		InteractiveSession: base,
		tracker:            tracker,
		aggregator:         aggregator,
		cards:              cards,
		total:              len(cards),
	}
}

// GetCardCount returns the number of remaining cards
func (r *FlashcardSession) GetCardCount() int {
	return len(r.cards)
}

// Reviewed returns how many cards were reviewed and how many of them were known
func (r *FlashcardSession) Reviewed() (reviewed int, correct int) {
	return r.reviewed, r.correct
}

func (r *FlashcardSession) Session(ctx context.Context) error {
	if len(r.cards) == 0 {
		if r.total == 0 {
			fmt.Fprintln(r.stdoutWriter, "No cards are due for review!")
		} else {
			fmt.Fprintln(r.stdoutWriter, "No more cards to practice!")
		}
		r.finish()
		return errEnd
	}
	current := r.cards[0]

	fmt.Fprintf(r.stdoutWriter, "\nCard %d/%d\n", r.total-len(r.cards)+1, r.total)
	_, _ = r.bold.Fprintf(r.stdoutWriter, "Q: %s\n", current.card.Question)
	fmt.Fprint(r.stdoutWriter, "Press Enter to reveal the answer (q to quit): ")
	input, err := r.readLine(ctx)
	if err != nil {
		return r.endOnEOF(err)
	}
	if isQuit(input) {
		r.finish()
		return errEnd
	}

	fmt.Fprintf(r.stdoutWriter, "A: %s\n", r.italic.Sprint(current.card.Answer))

	var knewIt bool
	for {
		fmt.Fprint(r.stdoutWriter, "Did you know it? [y/n]: ")
		input, err := r.readLine(ctx)
		if err != nil {
			return r.endOnEOF(err)
		}
		if isQuit(input) {
			r.finish()
			return errEnd
		}
		answer, ok := parseYesNo(input)
		if ok {
			knewIt = answer
			break
		}
	}

	progress := r.tracker.ReviewCard(current.id, knewIt)
	r.reviewed++
	if knewIt {
		r.correct++
		fmt.Fprint(r.stdoutWriter, "✅ ")
		_, _ = r.green.Fprintf(r.stdoutWriter, "Next review on %s\n", progress.NextReview.Format("2006-01-02"))
	} else {
		fmt.Fprint(r.stdoutWriter, "❌ ")
		_, _ = r.red.Fprintf(r.stdoutWriter, "Next review on %s\n", progress.NextReview.Format("2006-01-02"))
	}

	r.cards = r.cards[1:]
	return nil
}

// finish records the study session once, when at least one card was reviewed.
func (r *FlashcardSession) finish() {
	if r.finished {
		return
	}
	r.finished = true
	if r.reviewed == 0 {
		return
	}
	r.aggregator.StudySession()
	fmt.Fprintf(r.stdoutWriter, "Reviewed %d cards, knew %d.\n", r.reviewed, r.correct)
}

func (r *FlashcardSession) endOnEOF(err error) error {
	if endOfInput(err) {
		r.finish()
		return errEnd
	}
	return fmt.Errorf("error reading input: %w", err)
}

func parseYesNo(input string) (answer bool, ok bool) {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}
