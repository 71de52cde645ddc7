package studyset

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

var commonTopics = []string{
	"math", "science", "history", "literature", "biology", "chemistry",
	"physics", "geography", "psychology", "philosophy", "economics",
	"computer science", "programming", "languages", "art", "music",
}

type topicPattern struct {
	topic   string
	pattern *regexp.Regexp
}

// topicPatterns match whole words only, longest topic first.
var topicPatterns = func() []topicPattern {
	patterns := make([]topicPattern, 0, len(commonTopics))
	for _, topic := range commonTopics {
		patterns = append(patterns, topicPattern{
			topic:   topic,
			pattern: regexp.MustCompile(`\b` + strings.ReplaceAll(regexp.QuoteMeta(topic), " ", `\s+`) + `\b`),
		})
	}
	slices.SortStableFunc(patterns, func(a, b topicPattern) int {
		return cmp.Compare(len(b.topic), len(a.topic))
	})
	return patterns
}()

// ExtractTags returns the common academic topics mentioned in text, in the
// order of the topic list. Topics match whole words, and a topic that only
// occurs inside a longer matched topic ("science" in "computer science") is
// left out.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)

	var covered [][]int
	found := make(map[string]bool)
	for _, p := range topicPatterns {
		for _, loc := range p.pattern.FindAllStringIndex(lower, -1) {
			if !within(loc, covered) {
				found[p.topic] = true
			}
			covered = append(covered, loc)
		}
	}

	var tags []string
	for _, topic := range commonTopics {
		if found[topic] {
			tags = append(tags, topic)
		}
	}
	return tags
}

func within(loc []int, ranges [][]int) bool {
	for _, r := range ranges {
		if r[0] <= loc[0] && loc[1] <= r[1] {
			return true
		}
	}
	return false
}
