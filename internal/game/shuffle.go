package game

import (
	"math/rand"

	"speed-trivia-service/internal/domain"
)

// Shuffle returns a uniformly random permutation of s using the backward
// swap algorithm. The input slice is never mutated.
func Shuffle[T any](rnd *rand.Rand, s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffledQuestion is a per-session, per-locale view of a question: the
// option strings in shuffled order plus the index of the correct option
// within that order. It is created once at session start and never mutated.
type ShuffledQuestion struct {
	Question     domain.Question
	Options      []string
	CorrectIndex int
}

type indexedOption struct {
	text     string
	original int
}

// ShuffleOptions permutes the option list for the active locale, carrying
// each option's canonical index through the permutation so the correct
// index is recovered exactly even when two options share the same text.
func ShuffleOptions(rnd *rand.Rand, q domain.Question, lang domain.Language) ShuffledQuestion {
	options := q.Options.Get(lang)
	indexed := make([]indexedOption, len(options))
	for i, text := range options {
		indexed[i] = indexedOption{text: text, original: i}
	}

	shuffled := Shuffle(rnd, indexed)
	out := ShuffledQuestion{
		Question:     q,
		Options:      make([]string, len(shuffled)),
		CorrectIndex: -1,
	}
	for i, opt := range shuffled {
		out.Options[i] = opt.text
		if opt.original == q.CorrectAnswer {
			out.CorrectIndex = i
		}
	}
	return out
}

// ShuffleQuestions fixes the session's question order and each question's
// option order for the given locale.
func ShuffleQuestions(rnd *rand.Rand, questions []domain.Question, lang domain.Language) []ShuffledQuestion {
	shuffled := Shuffle(rnd, questions)
	out := make([]ShuffledQuestion, len(shuffled))
	for i, q := range shuffled {
		out[i] = ShuffleOptions(rnd, q, lang)
	}
	return out
}
