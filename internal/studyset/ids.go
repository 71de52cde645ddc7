package studyset

import "fmt"

// CardID identifies the flashcard at index within a set.
func CardID(setID string, index int) string {
	return fmt.Sprintf("%s_%d", setID, index)
}

// QuestionID identifies the quiz question at index within a set.
func QuestionID(setID string, index int) string {
	return fmt.Sprintf("%s_quiz_%d", setID, index)
}

// SetPrefix is shared by every item identifier of a set.
func SetPrefix(setID string) string {
	return setID + "_"
}
