package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Source is the serializable form of a Lexicon.
//
// Expected YAML format:
//
//	catch_all: Others
//	categories:
//	  - name: Transport
//	    keywords: [bus, driver, route]
//	    weights: {bus: 3, route: 2}
//	departments:
//	  Transport: Transport Department
//	priority:
//	  high: {weight: 3, words: [urgent]}
//	sentiment:
//	  negative: {weight: -1, words: [bad]}
//
// Weight keys containing a space are phrases. Single-word weight keys only
// apply to words also listed under keywords.
type Source struct {
	CatchAll    string             `yaml:"catch_all" json:"catch_all"`
	Categories  []CategorySource   `yaml:"categories" json:"categories"`
	Departments map[string]string  `yaml:"departments" json:"departments"`
	Priority    map[string]WordSet `yaml:"priority" json:"priority"`
	Sentiment   map[string]WordSet `yaml:"sentiment" json:"sentiment"`
}

// CategorySource describes one category.
type CategorySource struct {
	Name     string             `yaml:"name" json:"name"`
	Keywords []string           `yaml:"keywords" json:"keywords"`
	Weights  map[string]float64 `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// WordSet is a priority tier or sentiment class: a word list sharing one weight.
type WordSet struct {
	Weight float64  `yaml:"weight" json:"weight"`
	Words  []string `yaml:"words" json:"words"`
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("lexicon: built-in tables are invalid: %v", err))
	}
	return lex
})

// Default returns the built-in lexicon. It is parsed on first use and shared
// by every caller afterwards.
func Default() *Lexicon {
	return defaultLexicon()
}

// DefaultYAML returns a copy of the built-in lexicon document.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// LoadFromYAML reads and builds a lexicon from a YAML file.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lex, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lex, nil
}

// Parse builds a lexicon from a YAML document.
func Parse(data []byte) (*Lexicon, error) {
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	return New(src)
}

// normalized lower-cases every word and trims names. Category names and
// department strings keep their case; they are labels, not vocabulary.
func (s Source) normalized() Source {
	out := Source{
		CatchAll:    strings.TrimSpace(s.CatchAll),
		Categories:  make([]CategorySource, len(s.Categories)),
		Departments: make(map[string]string, len(s.Departments)),
		Priority:    make(map[string]WordSet, len(s.Priority)),
		Sentiment:   make(map[string]WordSet, len(s.Sentiment)),
	}
	for i, c := range s.Categories {
		nc := CategorySource{
			Name:     strings.TrimSpace(c.Name),
			Keywords: lowerAll(c.Keywords),
		}
		if len(c.Weights) > 0 {
			nc.Weights = make(map[string]float64, len(c.Weights))
			for k, w := range c.Weights {
				nc.Weights[strings.ToLower(strings.TrimSpace(k))] = w
			}
		}
		out.Categories[i] = nc
	}
	for name, dept := range s.Departments {
		out.Departments[strings.TrimSpace(name)] = strings.TrimSpace(dept)
	}
	for name, set := range s.Priority {
		out.Priority[strings.ToLower(strings.TrimSpace(name))] = WordSet{Weight: set.Weight, Words: lowerAll(set.Words)}
	}
	for name, set := range s.Sentiment {
		out.Sentiment[strings.ToLower(strings.TrimSpace(name))] = WordSet{Weight: set.Weight, Words: lowerAll(set.Words)}
	}
	return out
}

func (s Source) clone() Source {
	out := Source{
		CatchAll:    s.CatchAll,
		Categories:  make([]CategorySource, len(s.Categories)),
		Departments: make(map[string]string, len(s.Departments)),
		Priority:    make(map[string]WordSet, len(s.Priority)),
		Sentiment:   make(map[string]WordSet, len(s.Sentiment)),
	}
	for i, c := range s.Categories {
		nc := CategorySource{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
		if c.Weights != nil {
			nc.Weights = make(map[string]float64, len(c.Weights))
			for k, w := range c.Weights {
				nc.Weights[k] = w
			}
		}
		out.Categories[i] = nc
	}
	for k, v := range s.Departments {
		out.Departments[k] = v
	}
	for k, v := range s.Priority {
		out.Priority[k] = WordSet{Weight: v.Weight, Words: append([]string(nil), v.Words...)}
	}
	for k, v := range s.Sentiment {
		out.Sentiment[k] = WordSet{Weight: v.Weight, Words: append([]string(nil), v.Words...)}
	}
	return out
}

// Marshal renders the source back to YAML.
func (s Source) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
