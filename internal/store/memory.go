package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryClient is an in-process document tree with the same observable
// semantics as the Realtime Database adapter: values are detached by a JSON
// round-trip, empty branches are pruned, and absent nodes read as ErrNotFound.
// Used by tests and by local development without Firebase credentials.
type MemoryClient struct {
	mu   sync.Mutex
	root map[string]interface{}
}

// NewMemoryClient returns an empty tree.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{root: make(map[string]interface{})}
}

func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// normalize round-trips v through JSON so stored values share no memory with
// the caller, then prunes empty objects the way the real database does.
func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return prune(out), nil
}

// prune removes nulls and empty objects recursively. An object whose every
// child prunes away is itself absent, mirroring server-side storage.
func prune(v interface{}) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	for k, child := range m {
		if p := prune(child); p == nil {
			delete(m, k)
		} else {
			m[k] = p
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// lookup walks the tree. Returns nil when any segment is absent.
func (c *MemoryClient) lookup(segs []string) interface{} {
	var node interface{} = c.root
	for _, s := range segs {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil
		}
		node, ok = m[s]
		if !ok {
			return nil
		}
	}
	return node
}

// write replaces the node at segs with val, creating intermediate branches.
// A nil val deletes the node and prunes emptied ancestors.
func (c *MemoryClient) write(segs []string, val interface{}) {
	if len(segs) == 0 {
		if m, ok := val.(map[string]interface{}); ok {
			c.root = m
		} else {
			c.root = make(map[string]interface{})
		}
		return
	}

	// Collect the branch so emptied ancestors can be pruned afterwards.
	parents := make([]map[string]interface{}, 0, len(segs))
	node := c.root
	for _, s := range segs[:len(segs)-1] {
		parents = append(parents, node)
		child, ok := node[s].(map[string]interface{})
		if !ok {
			if val == nil {
				return
			}
			child = make(map[string]interface{})
			node[s] = child
		}
		node = child
	}
	parents = append(parents, node)

	leaf := segs[len(segs)-1]
	if val == nil {
		delete(node, leaf)
	} else {
		node[leaf] = val
	}

	for i := len(parents) - 1; i > 0; i-- {
		if len(parents[i]) == 0 {
			delete(parents[i-1], segs[i-1])
		}
	}
}

func (c *MemoryClient) Get(ctx context.Context, path string, v interface{}) error {
	c.mu.Lock()
	node := c.lookup(splitPath(path))
	var raw []byte
	var err error
	if node != nil {
		raw, err = json.Marshal(node)
	}
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	if node == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *MemoryClient) Set(ctx context.Context, path string, v interface{}) error {
	val, err := normalize(v)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(splitPath(path), val)
	return nil
}

func (c *MemoryClient) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for k, v := range fields {
		val, err := normalize(v)
		if err != nil {
			return fmt.Errorf("update %s: %w", path, err)
		}
		c.write(append(splitPath(path), splitPath(k)...), val)
	}
	return nil
}

func (c *MemoryClient) Delete(ctx context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(splitPath(path), nil)
	return nil
}

// Push stores v under a generated child key. Keys embed the current
// millisecond so they sort roughly by insertion time, like server push ids.
func (c *MemoryClient) Push(ctx context.Context, path string, v interface{}) (string, error) {
	val, err := normalize(v)
	if err != nil {
		return "", fmt.Errorf("push %s: %w", path, err)
	}

	key := fmt.Sprintf("-%011x%s", time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

	c.mu.Lock()
	defer c.mu.Unlock()
	c.write(append(splitPath(path), key), val)
	return key, nil
}
