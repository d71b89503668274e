package prompt

import (
	"fmt"

	"github.com/Conceptual-Machines/songprompt/pkg/embedded"
)

// Loader reads the word lists the post-processor is built from.
type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetStopWords loads the words ignored by repetition detection
func (l *Loader) GetStopWords() ([]string, error) {
	return wordList("stop words", embedded.StopWordsTxt)
}

// GetMetaPhrases loads the patterns of leaked instruction lines
func (l *Loader) GetMetaPhrases() ([]string, error) {
	return wordList("meta phrases", embedded.MetaPhrasesTxt)
}

// GetSectionNames loads the lyric section names
func (l *Loader) GetSectionNames() ([]string, error) {
	return wordList("section names", embedded.SectionNamesTxt)
}

func wordList(name string, data []byte) ([]string, error) {
	words := embedded.WordList(data)
	if len(words) == 0 {
		return nil, fmt.Errorf("embedded %s list is empty", name)
	}
	return words, nil
}
