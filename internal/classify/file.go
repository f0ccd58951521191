package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olumendes/capital5/internal/common"
)

// ruleFile is the on-disk shape of a user-supplied rule list.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads classifier rules from a YAML file. Rules keep their file
// order and keywords are normalized the same way descriptions are, so a file
// may spell keywords with accents.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	for i := range file.Rules {
		rule := &file.Rules[i]
		if rule.CategoryID == "" {
			return nil, fmt.Errorf("rule %d in %s has no category", i, path)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("rule %q in %s has no keywords", rule.Name, path)
		}
		for j, kw := range rule.Keywords {
			rule.Keywords[j] = common.Normalize(kw)
		}
	}

	return file.Rules, nil
}
