package service

import (
	"testing"

	"oriental_miniapp_backend/internal/model"
)

func TestEvaluateAndAwardFirstLesson(t *testing.T) {
	e := newTestEnv(t)
	e.seedAchievements(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	result, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	if len(result.NewAchievements) != 1 {
		t.Fatalf("NewAchievements = %d, want 1", len(result.NewAchievements))
	}
	if result.NewAchievements[0].ConditionType != model.ConditionCompleteFirst {
		t.Errorf("unlocked %q, want first-lesson achievement", result.NewAchievements[0].Name)
	}

	// 素材 10 + 成就 50
	fresh, err := e.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if fresh.XP != 60 {
		t.Errorf("XP = %d, want 60", fresh.XP)
	}
}

func TestEvaluateAndAwardIdempotent(t *testing.T) {
	e := newTestEnv(t)
	e.seedAchievements(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 0)

	if _, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	}); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	// 重复评估不会二次解锁或二次发奖
	unlocked, err := e.achievementSvc.EvaluateAndAward(user.ID)
	if err != nil {
		t.Fatalf("EvaluateAndAward: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("repeat evaluation unlocked %d achievements, want 0", len(unlocked))
	}

	count, err := e.achievement.CountByUser(user.ID)
	if err != nil {
		t.Fatalf("count achievements: %v", err)
	}
	if count != 1 {
		t.Errorf("achievement count = %d, want 1", count)
	}

	fresh, err := e.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if fresh.XP != 50 {
		t.Errorf("XP = %d, want 50", fresh.XP)
	}
}

func TestEvaluateAndAwardLessonMilestone(t *testing.T) {
	e := newTestEnv(t)
	e.seedAchievements(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")

	var lastUnlocked []model.Achievement
	for i := 0; i < 10; i++ {
		material := e.createMaterial(t, course.ID, "Dars", 0)
		result, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
			ProgressPercent: 100,
			Completed:       true,
		})
		if err != nil {
			t.Fatalf("RecordProgress #%d: %v", i+1, err)
		}
		lastUnlocked = result.NewAchievements
	}

	// 第 10 次完成解锁 10 课里程碑
	found := false
	for _, ach := range lastUnlocked {
		if ach.ConditionType == model.ConditionCompleteLessons && ach.ConditionValue == 10 {
			found = true
		}
	}
	if !found {
		t.Errorf("10th completion did not unlock the 10-lesson milestone, got %v", lastUnlocked)
	}

	count, err := e.achievement.CountByUser(user.ID)
	if err != nil {
		t.Fatalf("count achievements: %v", err)
	}
	// complete_first + 10 课
	if count != 2 {
		t.Errorf("achievement count = %d, want 2", count)
	}
}

func TestSatisfiedUnknownConditionType(t *testing.T) {
	e := newTestEnv(t)
	ach := model.Achievement{
		Name:          "Mystery",
		ConditionType: model.ConditionType("perfect_score"),
	}
	if e.achievementSvc.satisfied(ach, 100, 100) {
		t.Error("unknown condition type must never be satisfied")
	}
}

func TestLeaderboardOrderAndFilter(t *testing.T) {
	e := newTestEnv(t)

	alice := e.createUser(t, 1)
	bob := e.createUser(t, 2)
	e.createUser(t, 3) // 零经验，不上榜

	if _, err := e.users.AddXP(nil, alice.ID, 30); err != nil {
		t.Fatalf("add xp: %v", err)
	}
	if _, err := e.users.AddXP(nil, bob.ID, 250); err != nil {
		t.Fatalf("add xp: %v", err)
	}

	entries, err := e.achievementSvc.GetLeaderboard(10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (zero-XP users excluded)", len(entries))
	}
	if entries[0].TelegramID != 2 || entries[0].Rank != 1 {
		t.Errorf("first entry = %+v, want bob at rank 1", entries[0])
	}
	if entries[1].TelegramID != 1 || entries[1].Rank != 2 {
		t.Errorf("second entry = %+v, want alice at rank 2", entries[1])
	}
	if entries[0].Level != 3 {
		t.Errorf("bob level = %d, want 3", entries[0].Level)
	}
}
