package model

import "fmt"

// Registry tracks the table models of one generation run together with
// the key pools their relations draw from. Pools are handed out by
// reference so every relation pointing at a table sees the same keys.
type Registry struct {
	models map[string]*TableModel
	pools  map[string]*Pool
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		models: make(map[string]*TableModel),
		pools:  make(map[string]*Pool),
	}
}

func (reg *Registry) Register(m *TableModel) error {
	if _, exists := reg.models[m.Name()]; exists {
		return fmt.Errorf("table model %q is already registered", m.Name())
	}
	reg.models[m.Name()] = m
	reg.order = append(reg.order, m.Name())
	return nil
}

func (reg *Registry) Get(name string) (*TableModel, error) {
	m, ok := reg.models[name]
	if !ok {
		return nil, fmt.Errorf("table model %q not found in registry", name)
	}
	return m, nil
}

// Pool returns the shared key pool for a table, creating it on first use.
func (reg *Registry) Pool(table string) *Pool {
	p, ok := reg.pools[table]
	if !ok {
		p = NewPool()
		reg.pools[table] = p
	}
	return p
}

// Pools exposes the pool map for relation resolution.
func (reg *Registry) Pools() map[string]*Pool {
	return reg.pools
}

// Tables returns registered table names in registration order.
func (reg *Registry) Tables() []string {
	names := make([]string, len(reg.order))
	copy(names, reg.order)
	return names
}

// Validate checks the cross-table invariant that every relation points at
// a registered table and an existing target column.
func (reg *Registry) Validate() error {
	for _, name := range reg.order {
		for _, rel := range reg.models[name].Relations() {
			target, ok := reg.models[rel.ToTable]
			if !ok {
				return fmt.Errorf("table %q: relation references unregistered table %q", name, rel.ToTable)
			}
			if target.Column(rel.ToColumn) == nil {
				return fmt.Errorf("table %q: relation references missing column %s.%s", name, rel.ToTable, rel.ToColumn)
			}
		}
	}
	return nil
}
