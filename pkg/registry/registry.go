package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/cvterm/pkg/domain"
)

// Required lists the commands every registry must provide.
var Required = []string{
	"help",
	"whoami",
	"experience",
	"skills",
	"education",
	"contact",
	"projects",
	domain.CommandClear,
	domain.CommandExit,
}

// Registry maps command names to their definitions.
// It is built once and never mutated, so it is safe for concurrent use.
type Registry struct {
	commands map[string]domain.CommandDefinition
	order    []string
}

// New validates the definitions and builds a registry.
// Names are normalised to lower case. Every name in Required must be present.
func New(defs ...domain.CommandDefinition) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]domain.CommandDefinition, len(defs)),
	}

	for _, def := range defs {
		name := Normalize(def.Name)
		if name == "" || strings.ContainsAny(name, " \t\r\n") {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCommandName, def.Name)
		}
		if _, exists := r.commands[name]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCommand, name)
		}
		if strings.TrimSpace(def.Description) == "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDescription, name)
		}
		def.Name = name
		r.commands[name] = def
		r.order = append(r.order, name)
	}

	for _, name := range Required {
		if _, ok := r.commands[name]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingCommand, name)
		}
	}

	return r, nil
}

// Normalize trims surrounding whitespace and lower-cases a command name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a command by name, ignoring case and surrounding whitespace.
func (r *Registry) Lookup(name string) (domain.CommandDefinition, bool) {
	def, ok := r.commands[Normalize(name)]
	return def, ok
}

// Has reports whether the registry knows the command.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[Normalize(name)]
	return ok
}

// Names returns all command names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Definitions returns every definition in declaration order.
func (r *Registry) Definitions() []domain.CommandDefinition {
	out := make([]domain.CommandDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name])
	}
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.order)
}
