package util

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"oriental_miniapp_backend/internal/model"
)

func testUser(id uint, telegramID int64, admin bool) *model.User {
	u := &model.User{TelegramID: telegramID, IsAdmin: admin}
	u.ID = id
	return u
}

const testBotToken = "123456:ABC-TestToken"

func signedInitData(t *testing.T, user string) string {
	t.Helper()
	values := url.Values{}
	values.Set("user", user)
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("query_id", "AAH_test")
	values.Set("hash", SignInitData(values, testBotToken))
	return values.Encode()
}

func TestVerifyInitData(t *testing.T) {
	userJSON := `{"id":42,"first_name":"Ali","last_name":"Valiyev","username":"ali"}`

	t.Run("valid signature", func(t *testing.T) {
		user, err := VerifyInitData(signedInitData(t, userJSON), testBotToken)
		if err != nil {
			t.Fatalf("VerifyInitData: %v", err)
		}
		if user.ID != 42 {
			t.Errorf("ID = %d, want 42", user.ID)
		}
		if got := user.FullName(); got != "Ali Valiyev" {
			t.Errorf("FullName = %q, want %q", got, "Ali Valiyev")
		}
	})

	t.Run("wrong bot token", func(t *testing.T) {
		_, err := VerifyInitData(signedInitData(t, userJSON), "999:other-token")
		if !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("error = %v, want %v", err, ErrInvalidInitData)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		values := url.Values{}
		values.Set("user", userJSON)
		values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
		values.Set("hash", SignInitData(values, testBotToken))
		values.Set("user", `{"id":9000,"first_name":"Evil"}`)

		_, err := VerifyInitData(values.Encode(), testBotToken)
		if !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("error = %v, want %v", err, ErrInvalidInitData)
		}
	})

	t.Run("missing hash", func(t *testing.T) {
		_, err := VerifyInitData("user="+url.QueryEscape(userJSON), testBotToken)
		if !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("error = %v, want %v", err, ErrInvalidInitData)
		}
	})

	t.Run("missing user field", func(t *testing.T) {
		values := url.Values{}
		values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
		values.Set("hash", SignInitData(values, testBotToken))

		_, err := VerifyInitData(values.Encode(), testBotToken)
		if !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("error = %v, want %v", err, ErrInvalidInitData)
		}
	})
}

func TestJWTRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	user := testUser(77, 4242, true)
	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 77 || claims.TelegramID != 4242 || !claims.IsAdmin {
		t.Errorf("claims = %+v, want UserID 77, TelegramID 4242, admin", claims)
	}

	if _, err := ParseJWT(token, "wrong-secret-wrong-secret-wrong!"); err == nil {
		t.Error("ParseJWT accepted token signed with a different secret")
	}

	expired, err := GenerateJWT(user, secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT expired: %v", err)
	}
	if _, err := ParseJWT(expired, secret); err == nil {
		t.Error("ParseJWT accepted an expired token")
	}
}
