package analyzer

import (
	_ "embed"
	"sort"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

// ModelInfo is one entry in the context-window catalog.
type ModelInfo struct {
	Name  string `yaml:"name"`
	Limit int    `yaml:"limit"`
}

// ModelUsage projects a token count onto one model's context window.
type ModelUsage struct {
	Model      string
	Limit      int
	TokenCount int
	Percentage float64
	Exceeded   bool
}

type modelCatalog struct {
	Models []ModelInfo `yaml:"models"`
}

var catalog = loadCatalog()

func loadCatalog() []ModelInfo {
	var c modelCatalog
	if err := yaml.Unmarshal(modelsYAML, &c); err != nil {
		// The embedded catalog is validated by tests; an unparsable one
		// still must not take the analyzer down.
		log.Error("embedded model catalog unparsable", "error", err)
		return nil
	}
	sort.Slice(c.Models, func(i, j int) bool {
		if c.Models[i].Limit != c.Models[j].Limit {
			return c.Models[i].Limit < c.Models[j].Limit
		}
		return c.Models[i].Name < c.Models[j].Name
	})
	return c.Models
}

// Models returns the known model catalog, ordered by context limit.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ContextUsage reports how much of each known model's context window the
// given token count would consume.
func ContextUsage(tokens int) []ModelUsage {
	usage := make([]ModelUsage, 0, len(catalog))
	for _, m := range catalog {
		u := ModelUsage{
			Model:      m.Name,
			Limit:      m.Limit,
			TokenCount: tokens,
			Exceeded:   tokens > m.Limit,
		}
		if m.Limit > 0 {
			u.Percentage = float64(tokens) / float64(m.Limit) * 100
		}
		usage = append(usage, u)
	}
	return usage
}
