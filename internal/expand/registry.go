package expand

import (
	"sync"

	"github.com/lp177/searchquery/internal/runeseq"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Expander{}
)

// Register makes expander available under name for later Lookup. A later
// call with the same name replaces the earlier registration.
func Register(name string, expander Expander) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = expander
}

// Lookup returns the expander registered under name, if any.
func Lookup(name string) (Expander, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[name]
	return e, ok
}

func init() {
	Register("default", DefaultExpander{})
}

// DefaultExpander is the identity expansion: every token passes through
// unchanged. It is the driver's fallback when Config.Expander is nil; the
// driver does no per-language expander lookup.
type DefaultExpander struct{}

func (DefaultExpander) Name() string { return "default" }

func (DefaultExpander) Expand(tok runeseq.Token, ctx *Context) ([]runeseq.Token, error) {
	return []runeseq.Token{tok}, nil
}
