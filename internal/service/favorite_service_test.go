package service

import (
	"errors"
	"testing"

	"oriental_miniapp_backend/internal/util"
)

func TestFavoriteAddIdempotentRemoveTolerant(t *testing.T) {
	e := newTestEnv(t)
	favoriteSvc := NewFavoriteService(e.favorites, e.materials)

	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	if err := favoriteSvc.Add(user.ID, material.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// 重复收藏是无操作
	if err := favoriteSvc.Add(user.ID, material.ID); err != nil {
		t.Fatalf("repeat Add: %v", err)
	}

	list, err := favoriteSvc.List(user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("favorites = %d, want 1", len(list))
	}
	if list[0].ID != material.ID {
		t.Errorf("favorite material = %d, want %d", list[0].ID, material.ID)
	}

	if err := favoriteSvc.Add(user.ID, 9999); !errors.Is(err, util.ErrMaterialNotFound) {
		t.Errorf("unknown material: error = %v, want %v", err, util.ErrMaterialNotFound)
	}

	if err := favoriteSvc.Remove(user.ID, material.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	// 删除不存在的收藏同样成功
	if err := favoriteSvc.Remove(user.ID, material.ID); err != nil {
		t.Fatalf("repeat Remove: %v", err)
	}

	list, err = favoriteSvc.List(user.ID)
	if err != nil {
		t.Fatalf("List after remove: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("favorites = %d, want 0", len(list))
	}
}
