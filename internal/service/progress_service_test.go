package service

import (
	"errors"
	"testing"
	"time"

	"oriental_miniapp_backend/internal/util"
)

func TestRecordProgressValidation(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	tests := []struct {
		name    string
		update  ProgressUpdate
		wantErr error
	}{
		{
			name:    "percent above 100",
			update:  ProgressUpdate{ProgressPercent: 101},
			wantErr: util.ErrInvalidPercent,
		},
		{
			name:    "percent below 0",
			update:  ProgressUpdate{ProgressPercent: -1},
			wantErr: util.ErrInvalidPercent,
		},
		{
			name:    "negative time delta",
			update:  ProgressUpdate{ProgressPercent: 50, TimeSpentDelta: -30},
			wantErr: util.ErrNegativeTimeSpent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.progressSvc.RecordProgress(user.ID, material.ID, tt.update)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordProgress() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordProgressNotFound(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	if _, err := e.progressSvc.RecordProgress(9999, material.ID, ProgressUpdate{ProgressPercent: 10}); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("unknown user: error = %v, want %v", err, util.ErrUserNotFound)
	}
	if _, err := e.progressSvc.RecordProgress(user.ID, 9999, ProgressUpdate{ProgressPercent: 10}); !errors.Is(err, util.ErrMaterialNotFound) {
		t.Errorf("unknown material: error = %v, want %v", err, util.ErrMaterialNotFound)
	}
}

func TestRecordProgressTimeSpentAccumulates(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	deltas := []int{30, 45, 25}
	for _, d := range deltas {
		if _, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
			ProgressPercent: 50,
			TimeSpentDelta:  d,
		}); err != nil {
			t.Fatalf("RecordProgress: %v", err)
		}
	}

	p, err := e.progress.FindByUserAndMaterial(nil, user.ID, material.ID)
	if err != nil {
		t.Fatalf("find progress: %v", err)
	}
	if p.TimeSpent != 100 {
		t.Errorf("TimeSpent = %d, want 100", p.TimeSpent)
	}
}

func TestRecordProgressXPAwardedOnceOnCompletion(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	result, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("first completion: %v", err)
	}
	if result.XPAwarded != material.XPReward {
		t.Errorf("first completion XPAwarded = %d, want %d", result.XPAwarded, material.XPReward)
	}

	first, err := e.progress.FindByUserAndMaterial(nil, user.ID, material.ID)
	if err != nil {
		t.Fatalf("find progress: %v", err)
	}
	if first.CompletedAt == nil {
		t.Fatal("CompletedAt not stamped on first completion")
	}
	stamped := *first.CompletedAt

	// 重复提交 completed=true 不再发奖也不重打时间戳
	result, err = e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("repeat completion: %v", err)
	}
	if result.XPAwarded != 0 {
		t.Errorf("repeat completion XPAwarded = %d, want 0", result.XPAwarded)
	}

	second, err := e.progress.FindByUserAndMaterial(nil, user.ID, material.ID)
	if err != nil {
		t.Fatalf("find progress: %v", err)
	}
	if second.CompletedAt == nil || !second.CompletedAt.Equal(stamped) {
		t.Errorf("CompletedAt changed on repeat submission: got %v, want %v", second.CompletedAt, stamped)
	}

	fresh, err := e.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if fresh.XP != material.XPReward {
		t.Errorf("user XP = %d, want %d", fresh.XP, material.XPReward)
	}
}

func TestRecordProgressLevelFollowsXP(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")

	// 三个 40 XP 的素材，完成后共 120 XP，等级应为 2
	for i := 0; i < 3; i++ {
		material := e.createMaterial(t, course.ID, "Dars", 40)
		if _, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
			ProgressPercent: 100,
			Completed:       true,
		}); err != nil {
			t.Fatalf("RecordProgress: %v", err)
		}
	}

	fresh, err := e.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if fresh.XP != 120 {
		t.Errorf("XP = %d, want 120", fresh.XP)
	}
	if fresh.Level != 2 {
		t.Errorf("Level = %d, want 2", fresh.Level)
	}
}

func TestRecordProgressCompletionFlagNeverRegresses(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	if _, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// 完成后继续看课，进度回报 completed=false 也只是普通更新
	if _, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 30,
		Completed:       false,
		LastPosition:    120,
	}); err != nil {
		t.Fatalf("re-watch: %v", err)
	}

	p, err := e.progress.FindByUserAndMaterial(nil, user.ID, material.ID)
	if err != nil {
		t.Fatalf("find progress: %v", err)
	}
	if p.CompletedAt == nil {
		t.Error("CompletedAt lost after re-watch update")
	}
	if p.LastPosition != 120 {
		t.Errorf("LastPosition = %d, want 120", p.LastPosition)
	}

	// 再次标记完成也拿不到第二次奖励
	result, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if result.XPAwarded != 0 {
		t.Errorf("re-complete XPAwarded = %d, want 0", result.XPAwarded)
	}
}

// 首次完成的判定走 completed_at 的条件写入，发奖跟着写入结果走。
// 两个并发完成提交只有改到行的那个发奖，这里用直接打点模拟
// 另一个请求已经抢先写入的情形。
func TestRecordProgressCompletionStampIsConditionalWrite(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser(t, 100)
	direction := e.createDirection(t, "Arab tili")
	course := e.createCourse(t, direction.ID, "Boshlang'ich")
	material := e.createMaterial(t, course.ID, "Dars 1", 10)

	if _, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 40,
	}); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}

	// 条件打点只有第一次能改到行
	now := time.Now()
	stamped, err := e.progress.StampCompleted(nil, user.ID, material.ID, now)
	if err != nil {
		t.Fatalf("StampCompleted: %v", err)
	}
	if !stamped {
		t.Fatal("first stamp did not hit the row")
	}
	again, err := e.progress.StampCompleted(nil, user.ID, material.ID, time.Now().Add(time.Minute))
	if err != nil {
		t.Fatalf("repeat StampCompleted: %v", err)
	}
	if again {
		t.Error("repeat stamp hit an already stamped row")
	}

	before, err := e.progress.FindByUserAndMaterial(nil, user.ID, material.ID)
	if err != nil {
		t.Fatalf("find progress: %v", err)
	}
	if before.CompletedAt == nil {
		t.Fatal("CompletedAt not stamped")
	}
	stampedAt := *before.CompletedAt

	// 行已被别的请求打过点，即使本地状态看起来未完成也不发奖
	result, err := e.progressSvc.RecordProgress(user.ID, material.ID, ProgressUpdate{
		ProgressPercent: 100,
		Completed:       true,
	})
	if err != nil {
		t.Fatalf("complete after external stamp: %v", err)
	}
	if result.XPAwarded != 0 {
		t.Errorf("XPAwarded = %d, want 0", result.XPAwarded)
	}

	p, err := e.progress.FindByUserAndMaterial(nil, user.ID, material.ID)
	if err != nil {
		t.Fatalf("find progress: %v", err)
	}
	if p.CompletedAt == nil || !p.CompletedAt.Equal(stampedAt) {
		t.Errorf("CompletedAt = %v, want %v", p.CompletedAt, stampedAt)
	}
	if !p.Completed {
		t.Error("Completed flag not set by the completion submission")
	}

	fresh, err := e.users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if fresh.XP != 0 {
		t.Errorf("user XP = %d, want 0", fresh.XP)
	}
}
