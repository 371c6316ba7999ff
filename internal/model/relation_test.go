package model

import (
	"errors"
	"testing"
)

func poolOf(keys ...any) *Pool {
	p := NewPool()
	for _, k := range keys {
		p.Add(k)
	}
	return p
}

func TestNewRelationConfigValidation(t *testing.T) {
	if _, err := NewRelationConfig(-1, 5, 10); err == nil {
		t.Error("Expected error for negative min_related, got nil")
	}
	if _, err := NewRelationConfig(6, 5, 10); err == nil {
		t.Error("Expected error for min_related above max_related, got nil")
	}
	if _, err := NewRelationConfig(1, 5, 3); err == nil {
		t.Error("Expected error for pool_size below max_related, got nil")
	}
	if _, err := NewRelationConfig(0, 0, 0); err != nil {
		t.Errorf("Expected zero config to be valid, got %v", err)
	}
}

func TestResolveDrawsFromPool(t *testing.T) {
	rel, err := NewOneToMany("order", "customer_id", "customer", "id", DefaultRelationConfig())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	pool := poolOf(int64(1), int64(2), int64(3))
	r := newRand()
	for i := 0; i < 100; i++ {
		key, err := rel.Resolve(r, pool)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		n := key.(int64)
		if n < 1 || n > 3 {
			t.Errorf("Expected key from pool {1,2,3}, got %d", n)
		}
	}
}

func TestResolveEmptyPool(t *testing.T) {
	rel, _ := NewOneToMany("order", "customer_id", "customer", "id", DefaultRelationConfig())

	_, err := rel.Resolve(newRand(), NewPool())
	var poolErr *EmptyPoolError
	if !errors.As(err, &poolErr) {
		t.Fatalf("Expected EmptyPoolError, got %v", err)
	}
	if poolErr.ToTable != "customer" {
		t.Errorf("Expected error to name customer, got %q", poolErr.ToTable)
	}
}

func TestResolveManyDistinctKeys(t *testing.T) {
	cfg, err := NewRelationConfig(2, 4, 10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	rel, err := NewManyToMany("student", "id", "course", "id", "student_course", cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	pool := NewPool()
	for i := 1; i <= 10; i++ {
		pool.Add(int64(i))
	}

	r := newRand()
	for i := 0; i < 100; i++ {
		keys, err := rel.ResolveMany(r, pool)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(keys) < 2 || len(keys) > 4 {
			t.Errorf("Expected between 2 and 4 keys, got %d", len(keys))
		}
		seen := make(map[any]bool)
		for _, k := range keys {
			if seen[k] {
				t.Errorf("Expected distinct keys, got duplicate %v", k)
			}
			seen[k] = true
		}
	}
}

func TestResolveManyCapsAtPoolSize(t *testing.T) {
	cfg, _ := NewRelationConfig(1, 5, 10)
	rel, _ := NewManyToMany("student", "id", "course", "id", "student_course", cfg)

	pool := poolOf(int64(1), int64(2), int64(3))
	r := newRand()
	for i := 0; i < 50; i++ {
		keys, err := rel.ResolveMany(r, pool)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(keys) > 3 {
			t.Errorf("Expected at most 3 keys from a 3-key pool, got %d", len(keys))
		}
	}
}

func TestResolveManyInsufficientPool(t *testing.T) {
	cfg, _ := NewRelationConfig(3, 5, 10)
	rel, _ := NewManyToMany("student", "id", "course", "id", "student_course", cfg)

	_, err := rel.ResolveMany(newRand(), poolOf(int64(1), int64(2)))
	var poolErr *InsufficientPoolError
	if !errors.As(err, &poolErr) {
		t.Fatalf("Expected InsufficientPoolError, got %v", err)
	}
	if poolErr.Needed != 3 || poolErr.Available != 2 {
		t.Errorf("Expected needed=3 available=2, got needed=%d available=%d", poolErr.Needed, poolErr.Available)
	}
}

func TestNewManyToManyDefaultJunctionColumns(t *testing.T) {
	rel, err := NewManyToMany("student", "id", "course", "id", "student_course", DefaultRelationConfig())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rel.JunctionFromColumn != "student_id" {
		t.Errorf("Expected junction from column student_id, got %q", rel.JunctionFromColumn)
	}
	if rel.JunctionToColumn != "course_id" {
		t.Errorf("Expected junction to column course_id, got %q", rel.JunctionToColumn)
	}
}

func TestNewManyToManyRequiresJunctionTable(t *testing.T) {
	if _, err := NewManyToMany("student", "id", "course", "id", "", DefaultRelationConfig()); err == nil {
		t.Error("Expected error for missing junction table, got nil")
	}
}

func TestNewOneToManyRequiresNames(t *testing.T) {
	if _, err := NewOneToMany("", "customer_id", "customer", "id", DefaultRelationConfig()); err == nil {
		t.Error("Expected error for empty from table, got nil")
	}
}

func TestPoolIsSharedByReference(t *testing.T) {
	p := NewPool()
	alias := p
	alias.Add(int64(1))
	if p.Len() != 1 {
		t.Errorf("Expected shared pool length 1, got %d", p.Len())
	}
}

func TestPoolNilSafety(t *testing.T) {
	var p *Pool
	if p.Len() != 0 {
		t.Errorf("Expected nil pool length 0, got %d", p.Len())
	}
	if keys := p.Keys(); keys != nil {
		t.Errorf("Expected nil keys for nil pool, got %v", keys)
	}
}
