package sandbox

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of a rule set:
//
//	rules:
//	  - name: shell
//	    pattern: '\bShell\s*\('
//	    message: command execution is not allowed
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads a YAML rule set from a reader and compiles it.
func LoadRules(r io.Reader) (RuleSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to read sandbox rules: %w", err)
	}
	return ParseRules(data)
}

// LoadRulesFile reads and compiles a YAML rule set from a file.
func LoadRulesFile(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("failed to read sandbox rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules compiles a YAML rule set from bytes.
func ParseRules(data []byte) (RuleSet, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return RuleSet{}, fmt.Errorf("invalid sandbox rules: %w", err)
	}
	return NewRuleSet(file.Rules...)
}
