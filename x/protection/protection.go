// Package protection redacts and guards image properties by role.
// Rules come from a yaml file: each entry is a property name pattern
// with the roles allowed to create, read, update and delete matching
// properties. It runs only when the authorization layer is disabled.
package protection

import (
	"os"
	"regexp"
	"slices"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

// RoleAny grants an operation to every caller.
const RoleAny = "@"

// RoleNone grants an operation to nobody.
const RoleNone = "!"

type ruleInput struct {
	Pattern string   `yaml:"pattern"`
	Create  []string `yaml:"create"`
	Read    []string `yaml:"read"`
	Update  []string `yaml:"update"`
	Delete  []string `yaml:"delete"`
}

type rulesInput struct {
	Rules []ruleInput `yaml:"rules"`
}

type rule struct {
	pattern *regexp.Regexp
	create  []string
	read    []string
	update  []string
	delete  []string
}

// Rules is a compiled property protection rule file. Properties no
// rule matches are unprotected.
type Rules struct {
	rules []rule
}

// LoadRules reads and compiles a property protection file.
func LoadRules(path string) (*Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var input rulesInput
	err = yaml.NewDecoder(f).Decode(&input)
	if err != nil {
		return nil, err
	}

	compiled := make([]rule, 0, len(input.Rules))
	for _, in := range input.Rules {
		pattern, err := regexp.Compile(in.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "bad property pattern %s", in.Pattern)
		}
		compiled = append(compiled, rule{
			pattern: pattern,
			create:  in.Create,
			read:    in.Read,
			update:  in.Update,
			delete:  in.Delete,
		})
	}

	return &Rules{rules: compiled}, nil
}

func permitted(allowed []string, roles []string) bool {
	for _, entry := range allowed {
		if entry == RoleNone {
			return false
		}
		if entry == RoleAny {
			return true
		}
		if slices.Contains(roles, entry) {
			return true
		}
	}
	return false
}

// check resolves the first matching rule. The first match wins; an
// unmatched property is open.
func (r *Rules) check(name string, roles []string, op func(rule) []string) bool {
	for _, rule := range r.rules {
		if rule.pattern.MatchString(name) {
			return permitted(op(rule), roles)
		}
	}
	return true
}

func (r *Rules) CanCreate(name string, roles []string) bool {
	return r.check(name, roles, func(ru rule) []string { return ru.create })
}

func (r *Rules) CanRead(name string, roles []string) bool {
	return r.check(name, roles, func(ru rule) []string { return ru.read })
}

func (r *Rules) CanUpdate(name string, roles []string) bool {
	return r.check(name, roles, func(ru rule) []string { return ru.update })
}

func (r *Rules) CanDelete(name string, roles []string) bool {
	return r.check(name, roles, func(ru rule) []string { return ru.delete })
}
