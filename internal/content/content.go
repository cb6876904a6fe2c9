// Package content embeds the static religious content catalogs: daily gems
// (short verse/hadith excerpts with a reflection), the hadith collection,
// and the dua collection.
package content

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed gems.yaml hadiths.yaml duas.yaml
var files embed.FS

// Gem is one day's inspirational excerpt.
type Gem struct {
	Reference   string `yaml:"reference"`
	Arabic      string `yaml:"arabic"`
	Translation string `yaml:"translation"`
	Reflection  string `yaml:"reflection"`
}

// Hadith is one entry of the browsable collection.
type Hadith struct {
	Collection string `yaml:"collection"`
	Number     string `yaml:"number"`
	Narrator   string `yaml:"narrator"`
	Text       string `yaml:"text"`
	Topic      string `yaml:"topic"`
}

// Dua is a supplication with transliteration for readers without Arabic.
type Dua struct {
	Title           string `yaml:"title"`
	Arabic          string `yaml:"arabic"`
	Transliteration string `yaml:"transliteration"`
	Translation     string `yaml:"translation"`
	Reference       string `yaml:"reference"`
}

// Catalog bundles the three lists. The gem list and the hadith collection
// are day-indexed independently, each against its own length.
type Catalog struct {
	Gems    []Gem
	Hadiths []Hadith
	Duas    []Dua
}

var (
	once    sync.Once
	catalog *Catalog
	loadErr error
)

// Load parses the embedded catalogs, once.
func Load() (*Catalog, error) {
	once.Do(func() {
		c := &Catalog{}
		if loadErr = unmarshalFile("gems.yaml", &c.Gems); loadErr != nil {
			return
		}
		if loadErr = unmarshalFile("hadiths.yaml", &c.Hadiths); loadErr != nil {
			return
		}
		if loadErr = unmarshalFile("duas.yaml", &c.Duas); loadErr != nil {
			return
		}
		catalog = c
	})
	return catalog, loadErr
}

func unmarshalFile(name string, out any) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
