package ho

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// OperationKey identifies one compiled operation in a Registry.
type OperationKey struct {
	Method string
	Path   string
}

// Registry maps (method, path) keys to compiled functions. It is built
// once from a Document and read-only afterwards, so it may be shared
// across goroutines without synchronization.
type Registry struct {
	funcs map[OperationKey]*CompiledFunction
	keys  []OperationKey
}

// BuildRegistry synthesizes and compiles every (path, method) entry of
// doc against baseURL. Compile options apply to all operations.
//
// By default construction is best-effort: malformed entries are skipped
// and their SpecValidationErrors are joined into the returned error while
// the remaining operations are still usable. WithStrict aborts on the
// first malformed entry instead.
func BuildRegistry(doc Document, baseURL string, opts ...Option) (*Registry, error) {
	cfg := newConfig(opts)
	reg := &Registry{funcs: make(map[OperationKey]*CompiledFunction)}

	var failures []error
	for _, path := range sortedKeys(doc) {
		for _, method := range sortedKeys(doc[path]) {
			desc, err := synthesizeDocEntry(path, method, doc[path][method], baseURL, cfg)
			if err != nil {
				if cfg.strict {
					return nil, err
				}
				failures = append(failures, err)
				continue
			}
			key := OperationKey{Method: desc.method, Path: path}
			if _, dup := reg.funcs[key]; dup {
				return nil, &DuplicateOperationError{Method: key.Method, Path: key.Path}
			}
			reg.funcs[key] = compile(desc, cfg)
			reg.keys = append(reg.keys, key)
		}
	}
	return reg, errors.Join(failures...)
}

// Get returns the compiled function for an operation key. The method is
// matched case-insensitively.
func (r *Registry) Get(method, path string) (*CompiledFunction, bool) {
	fn, ok := r.funcs[OperationKey{Method: strings.ToUpper(method), Path: path}]
	return fn, ok
}

// Keys returns the registered operation keys in deterministic order.
func (r *Registry) Keys() []OperationKey {
	out := make([]OperationKey, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int { return len(r.funcs) }

// Namespace derives an identifier for every registered operation and
// exposes the same compiled functions under those names. Two keys
// deriving the same identifier fail with a NameCollisionError naming
// both.
func (r *Registry) Namespace() (*Namespace, error) {
	ns := &Namespace{
		funcs:   make(map[string]*CompiledFunction, len(r.funcs)),
		sources: make(map[string]OperationKey, len(r.funcs)),
	}
	for _, key := range r.keys {
		name := operationName(key.Method, key.Path)
		if prev, dup := ns.sources[name]; dup {
			return nil, &NameCollisionError{Name: name, First: prev, Second: key}
		}
		ns.funcs[name] = r.funcs[key]
		ns.sources[name] = key
		ns.names = append(ns.names, name)
	}
	sort.Strings(ns.names)
	return ns, nil
}

// Namespace exposes compiled functions under deterministic identifiers
// derived from method and path. It is read-only after construction.
type Namespace struct {
	funcs   map[string]*CompiledFunction
	sources map[string]OperationKey
	names   []string
}

// Get returns the compiled function behind an identifier, or an
// UnknownIdentifierError.
func (n *Namespace) Get(name string) (*CompiledFunction, error) {
	fn, ok := n.funcs[name]
	if !ok {
		return nil, &UnknownIdentifierError{Name: name}
	}
	return fn, nil
}

// Call looks up an identifier and invokes it in one step.
func (n *Namespace) Call(ctx context.Context, name string, args Args) (any, error) {
	fn, err := n.Get(name)
	if err != nil {
		return nil, err
	}
	return fn.Call(ctx, args)
}

// Names returns all identifiers, sorted.
func (n *Namespace) Names() []string {
	out := make([]string, len(n.names))
	copy(out, n.names)
	return out
}

// operationName derives the namespace identifier for a (method, path)
// pair: the lower-cased method, then the path with '/' mapped to '_' and
// each {name} placeholder mapped to the name plus a trailing '_' that
// disambiguates it from a literal segment of the same text. Other
// non-identifier characters map to '_'.
//
//	GET /users/{id} -> get_users_id_
func operationName(method, path string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))

	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '{' {
			end := strings.IndexByte(path[i:], '}')
			if end < 0 {
				break
			}
			b.WriteString(path[i+1 : i+end])
			b.WriteByte('_')
			i += end
			continue
		}
		switch {
		case c == '/':
			b.WriteByte('_')
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// sortedKeys returns map keys in sorted order for deterministic
// iteration.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
