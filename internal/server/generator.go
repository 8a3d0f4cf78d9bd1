package server

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/desertthunder/vidnexus/internal/models"
)

// GeneratedNotes is the content produced for one video.
type GeneratedNotes struct {
	Transcript string
	Summary    []string
	Flashcards []models.Flashcard
	Quiz       []models.QuizItem
}

// Generator turns a video URL into study notes.
type Generator interface {
	Generate(ctx context.Context, youtubeURL string) (*GeneratedNotes, error)
}

// GeneratorFunc adapts a function to [Generator].
type GeneratorFunc func(ctx context.Context, youtubeURL string) (*GeneratedNotes, error)

func (f GeneratorFunc) Generate(ctx context.Context, youtubeURL string) (*GeneratedNotes, error) {
	return f(ctx, youtubeURL)
}

var errInvalidVideoURL = errors.New("Invalid YouTube URL")

// watchVideoID takes everything after "v=" up to the next "&".
func watchVideoID(youtubeURL string) (string, error) {
	_, after, ok := strings.Cut(youtubeURL, "v=")
	if !ok {
		return "", errInvalidVideoURL
	}
	id, _, _ := strings.Cut(after, "&")
	if id == "" {
		return "", errInvalidVideoURL
	}
	return id, nil
}

// StubGenerator produces deterministic notes from the video id, five flashcards and
// a five question quiz. Quiz answers alternate between letter and option text.
type StubGenerator struct{}

var stubTopics = []string{"goroutines", "channels", "interfaces", "slices", "maps", "errors", "contexts"}

func (StubGenerator) Generate(ctx context.Context, youtubeURL string) (*GeneratedNotes, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id, err := watchVideoID(youtubeURL)
	if err != nil {
		return nil, fmt.Errorf("Failed to get transcript: %w", err)
	}

	h := fnv.New32a()
	h.Write([]byte(id))
	seed := int(h.Sum32() % uint32(len(stubTopics)))

	topic := func(i int) string { return stubTopics[(seed+i)%len(stubTopics)] }

	out := &GeneratedNotes{
		Transcript: fmt.Sprintf("Transcript of video %s covering %s and %s.", id, topic(0), topic(1)),
	}
	for i := range 3 {
		out.Summary = append(out.Summary, fmt.Sprintf("Video %s explains %s.", id, topic(i)))
	}
	for i := range 5 {
		out.Flashcards = append(out.Flashcards, models.Flashcard{
			Front: fmt.Sprintf("What is the key idea behind %s?", topic(i)),
			Back:  fmt.Sprintf("%s, as covered in video %s.", strings.ToUpper(topic(i)[:1])+topic(i)[1:], id),
		})
	}
	for i := range 5 {
		options := []string{topic(i), topic(i + 1), topic(i + 2), topic(i + 3)}
		correct := i % len(options)
		answer := models.OptionLetter(correct)
		if i%2 == 1 {
			answer = options[correct]
		}
		out.Quiz = append(out.Quiz, models.QuizItem{
			Question: fmt.Sprintf("Question %d: which topic does part %d focus on?", i+1, i+1),
			Options:  options,
			Answer:   answer,
		})
	}
	return out, nil
}
