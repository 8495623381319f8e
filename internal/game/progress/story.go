package progress

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Line is one line of chapter narration.
type Line struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"text"`
}

// Chapter is the narration shown on entering a chapter.
type Chapter struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title"`
	Lines  []Line `yaml:"lines"`
}

// Story indexes chapter narration by chapter number.
type Story map[int]Chapter

// LoadStory reads the chapter narration file at path.
//
// Precondition: path must point to a YAML file with a top-level chapters list.
// Postcondition: Returns the indexed Story or an error on duplicates or parse failure.
func LoadStory(path string) (Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story file %s: %w", path, err)
	}
	var file struct {
		Chapters []Chapter `yaml:"chapters"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing story YAML: %w", err)
	}
	st := make(Story, len(file.Chapters))
	for _, c := range file.Chapters {
		if _, dup := st[c.Number]; dup {
			return nil, fmt.Errorf("duplicate chapter %d", c.Number)
		}
		st[c.Number] = c
	}
	return st, nil
}
