package service

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"oriental_miniapp_backend/internal/config"
	"oriental_miniapp_backend/internal/util"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Telegram.BotToken = "123456:ABC-TestToken"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func signedInitData(t *testing.T, botToken, userJSON string) string {
	t.Helper()
	values := url.Values{}
	values.Set("user", userJSON)
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("hash", util.SignInitData(values, botToken))
	return values.Encode()
}

func TestLoginCreatesUserOnce(t *testing.T) {
	e := newTestEnv(t)
	cfg := testConfig()
	authSvc := NewAuthService(e.users, e.userSvc, cfg)

	initData := signedInitData(t, cfg.Telegram.BotToken,
		`{"id":4242,"first_name":"Ali","last_name":"Valiyev","username":"ali"}`)

	first, err := authSvc.Login(initData)
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if first.Token == "" {
		t.Error("empty token")
	}
	if first.User.TelegramID != 4242 {
		t.Errorf("TelegramID = %d, want 4242", first.User.TelegramID)
	}
	if first.User.FullName != "Ali Valiyev" {
		t.Errorf("FullName = %q, want %q", first.User.FullName, "Ali Valiyev")
	}
	if first.User.StreakDays != 1 {
		t.Errorf("StreakDays after first login = %d, want 1", first.User.StreakDays)
	}

	second, err := authSvc.Login(initData)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Errorf("second login created a new user: %d != %d", second.User.ID, first.User.ID)
	}

	count, err := e.users.Count()
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Errorf("users = %d, want 1", count)
	}

	claims, err := util.ParseJWT(first.Token, cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != first.User.ID || claims.TelegramID != 4242 {
		t.Errorf("claims = %+v, want user %d", claims, first.User.ID)
	}
}

func TestLoginRejectsBadSignature(t *testing.T) {
	e := newTestEnv(t)
	cfg := testConfig()
	authSvc := NewAuthService(e.users, e.userSvc, cfg)

	initData := signedInitData(t, "999:other-token", `{"id":4242,"first_name":"Ali"}`)
	if _, err := authSvc.Login(initData); !errors.Is(err, util.ErrInvalidInitData) {
		t.Errorf("error = %v, want %v", err, util.ErrInvalidInitData)
	}

	count, err := e.users.Count()
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Errorf("users = %d, want 0 after rejected login", count)
	}
}
