package service

import (
	"errors"
	"testing"

	"oriental_miniapp_backend/internal/util"
)

func TestListDirectionsProgressPercent(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)

	arab := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, arab.ID, "Boshlang'ich")
	m1 := e.createMaterial(t, course.ID, "Dars 1", 10)
	e.createMaterial(t, course.ID, "Dars 2", 10)

	empty := e.createDirection(t, "Koreys tili")

	if _, err := e.progressSvc.RecordProgress(user.ID, m1.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	}); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	directions, err := e.contentSvc.ListDirections(user.ID)
	if err != nil {
		t.Fatalf("ListDirections: %v", err)
	}
	if len(directions) != 2 {
		t.Fatalf("directions = %d, want 2", len(directions))
	}

	byID := map[uint]DirectionWithProgress{}
	for _, d := range directions {
		byID[d.ID] = d
	}

	if got := byID[arab.ID].ProgressPercent; got != 50 {
		t.Errorf("arab direction percent = %v, want 50", got)
	}
	// 没有素材的方向是 0%，不报错
	if got := byID[empty.ID].ProgressPercent; got != 0 {
		t.Errorf("empty direction percent = %v, want 0", got)
	}
}

func TestGetCourseDetail(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	m1 := e.createMaterial(t, course.ID, "Dars 1", 10)
	m2 := e.createMaterial(t, course.ID, "Dars 2", 10)

	if _, err := e.progressSvc.RecordProgress(user.ID, m1.ID, ProgressUpdate{
		ProgressPercent: 70,
		LastPosition:    300,
	}); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	detail, err := e.contentSvc.GetCourseDetail(user.ID, course.ID)
	if err != nil {
		t.Fatalf("GetCourseDetail: %v", err)
	}
	if len(detail.Materials) != 2 {
		t.Fatalf("materials = %d, want 2", len(detail.Materials))
	}

	for _, item := range detail.Materials {
		switch item.ID {
		case m1.ID:
			if item.Progress == nil || item.Progress.ProgressPercent != 70 {
				t.Errorf("m1 progress = %+v, want 70%%", item.Progress)
			}
		case m2.ID:
			if item.Progress != nil {
				t.Errorf("m2 progress = %+v, want nil", item.Progress)
			}
		}
	}

	if _, err := e.contentSvc.GetCourseDetail(user.ID, 9999); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("unknown course: error = %v, want %v", err, util.ErrCourseNotFound)
	}
}

func TestUpdateDirectionPartial(t *testing.T) {
	e := newTestEnv(t)
	direction := e.createDirection(t, "Arab tili")

	newName := "Arab tili (yangi)"
	updated, err := e.contentSvc.UpdateDirection(direction.ID, DirectionUpdate{Name: &newName})
	if err != nil {
		t.Fatalf("UpdateDirection: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("Name = %q, want %q", updated.Name, newName)
	}
	// 未提供的字段保持原值
	if !updated.IsActive {
		t.Error("IsActive flipped by partial update")
	}
}

func TestDeleteDirectionCascades(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	if _, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	}); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	if err := e.contentSvc.DeleteDirection(direction.ID); err != nil {
		t.Fatalf("DeleteDirection: %v", err)
	}

	if _, err := e.courses.FindByID(course.ID); err == nil {
		t.Error("course survived direction delete")
	}
	if _, err := e.materials.FindByID(material.ID); err == nil {
		t.Error("material survived direction delete")
	}
	if _, err := e.progress.FindByUserAndMaterial(nil, user.ID, material.ID); err == nil {
		t.Error("progress row survived direction delete")
	}
}

func TestCreateMaterialDefaults(t *testing.T) {
	e := newTestEnv(t)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")

	material, err := e.contentSvc.CreateMaterial(MaterialCreate{
		CourseID: course.ID,
		Title:    "Dars 1",
		Type:     "video",
	})
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if material.XPReward != 10 {
		t.Errorf("default XPReward = %d, want 10", material.XPReward)
	}
	if !material.IsFree {
		t.Error("default IsFree = false, want true")
	}
}
