package service

import (
	"testing"
	"time"

	"oriental_miniapp_backend/internal/model"
)

func TestGetAdminStats(t *testing.T) {
	e := newTestEnv(t)

	active := e.createUser(t, 1)
	stale := e.createUser(t, 2)
	e.db.Model(&model.User{}).Where("id = ?", active.ID).Update("last_active", time.Now())
	e.db.Model(&model.User{}).Where("id = ?", stale.ID).Update("last_active", time.Now().AddDate(0, 0, -30))

	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	popular := e.createMaterial(t, course.ID, "Dars 1", 0)
	other := e.createMaterial(t, course.ID, "Dars 2", 0)

	for _, u := range []*model.User{active, stale} {
		if _, err := e.progressSvc.RecordProgress(u.ID, popular.ID, ProgressUpdate{
			ProgressPercent: 100,
			Completed:       true,
		}); err != nil {
			t.Fatalf("RecordProgress: %v", err)
		}
	}
	if _, err := e.progressSvc.RecordProgress(active.ID, other.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	}); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	stats, err := e.analyticsSvc.GetAdminStats()
	if err != nil {
		t.Fatalf("GetAdminStats: %v", err)
	}

	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", stats.TotalUsers)
	}
	if stats.TotalMaterials != 2 {
		t.Errorf("TotalMaterials = %d, want 2", stats.TotalMaterials)
	}
	if stats.TotalCompletions != 3 {
		t.Errorf("TotalCompletions = %d, want 3", stats.TotalCompletions)
	}
	if len(stats.TopMaterials) == 0 {
		t.Fatal("TopMaterials empty")
	}
	if stats.TopMaterials[0].MaterialID != popular.ID || stats.TopMaterials[0].Completions != 2 {
		t.Errorf("top material = %+v, want material %d with 2 completions", stats.TopMaterials[0], popular.ID)
	}
}

func TestTrackToleratesFailure(t *testing.T) {
	e := newTestEnv(t)
	// 未登录事件，user_id 为空
	e.analyticsSvc.Track(0, "app_open", map[string]interface{}{"source": "bot"})

	var count int64
	if err := e.db.Model(&model.AnalyticsEvent{}).Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Errorf("events = %d, want 1", count)
	}

	var event model.AnalyticsEvent
	if err := e.db.First(&event).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if event.UserID != nil {
		t.Errorf("UserID = %v, want nil for anonymous event", event.UserID)
	}
}
