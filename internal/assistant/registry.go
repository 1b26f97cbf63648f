// Package assistant exposes application operations as named actions with
// typed parameters, for a conversational assistant to discover and invoke.
// Routing natural language to an action is the assistant's job; this package
// only describes actions, checks required parameters and dispatches.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrUnknownAction is returned by Invoke for an unregistered name.
	ErrUnknownAction = errors.New("unknown action")
	// ErrMissingParam is returned by Invoke when a required parameter is absent or blank.
	ErrMissingParam = errors.New("missing required parameter")
	// ErrDuplicateAction is returned by Register for a name already taken.
	ErrDuplicateAction = errors.New("action already registered")
)

// Param describes one action parameter.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
}

// Args are the decoded arguments of one invocation.
type Args map[string]any

// String returns the named argument as trimmed text. Numbers and booleans are
// formatted; anything absent reads as "".
func (a Args) String(name string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, p := range x {
			parts = append(parts, strings.TrimSpace(fmt.Sprint(p)))
		}
		return strings.Join(parts, ",")
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Handler runs an action for userID.
type Handler func(ctx context.Context, userID string, args Args) (any, error)

// Action is a named operation the assistant may invoke.
type Action struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  []Param `json:"parameters"`
	Handler     Handler `json:"-"`
}

// Registry holds actions by name. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

// Register adds a. Names must be unique and non-empty and a Handler is required.
func (r *Registry) Register(a Action) error {
	if strings.TrimSpace(a.Name) == "" || a.Handler == nil {
		return fmt.Errorf("invalid action %q", a.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.actions[a.Name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateAction, a.Name)
	}
	if a.Parameters == nil {
		a.Parameters = []Param{}
	}
	r.actions[a.Name] = a
	return nil
}

// Describe lists registered actions sorted by name.
func (r *Registry) Describe() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Action, 0, len(r.actions))
	for _, a := range r.actions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Invoke validates args against the named action's required parameters and
// runs its handler.
func (r *Registry) Invoke(ctx context.Context, userID, name string, args Args) (any, error) {
	r.mu.RLock()
	a, ok := r.actions[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}
	if args == nil {
		args = Args{}
	}
	for _, p := range a.Parameters {
		if p.Required && args.String(p.Name) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingParam, p.Name)
		}
	}
	return a.Handler(ctx, userID, args)
}
