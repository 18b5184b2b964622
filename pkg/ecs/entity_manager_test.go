package ecs

import (
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始，0保留给 WorldEntity
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id1 == WorldEntity || id2 == WorldEntity {
		t.Error("Entity ID must never equal WorldEntity")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	// 同类型组件替换
	AddComponent(em, id, &testPositionComponent{X: 1, Y: 2})
	pos, _ = GetComponent[*testPositionComponent](em, id)
	if pos.X != 1 {
		t.Errorf("Expected replaced component X=1, got %f", pos.X)
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	AddComponent(em, id, &testPositionComponent{})
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Should have component after adding")
	}

	RemoveComponent[*testPositionComponent](em, id)
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntityDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	// 标记删除，重复标记
	em.DestroyEntity(id)
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked for destroy")
	}

	removed := em.RemoveMarkedEntities()
	if removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}

	// 删除不存在的实体是空操作
	em.DestroyEntity(id)
	if em.RemoveMarkedEntities() != 0 {
		t.Error("Destroying a removed entity should be a no-op")
	}
}

func TestGetEntitiesWithSortedOrder(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
		}
		ids = append(ids, id)
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 20 {
		t.Fatalf("Expected 20 entities, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Fatalf("Query result should be in ascending order, got %v", all)
		}
	}

	moving := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(moving) != 10 {
		t.Errorf("Expected 10 entities with both components, got %d", len(moving))
	}

	tagged := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testTagComponent](em)
	if len(tagged) != 0 {
		t.Errorf("Expected 0 tagged entities, got %d", len(tagged))
	}
}

func TestClear(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	last := em.CreateEntity()
	em.DestroyEntity(last)

	em.Clear()
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities after clear, got %d", em.EntityCount())
	}

	// ID 不回退
	if next := em.CreateEntity(); next <= last {
		t.Errorf("Expected new ID greater than %d, got %d", last, next)
	}
}
