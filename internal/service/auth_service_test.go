package service

import (
	"ecolearn_backend/internal/config"
	"ecolearn_backend/internal/model"
	"ecolearn_backend/internal/repository"
	"ecolearn_backend/internal/util"
	"errors"
	"testing"
	"time"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	cfg := testConfig()
	cfg.JWT = config.JWTConfig{
		Secret:     "auth-test-secret",
		ExpireTime: time.Hour,
	}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterHashesPassword(t *testing.T) {
	auth := newTestAuth(t)

	user := &model.User{
		Name:     "Asha",
		Email:    "asha@test.local",
		Password: "supersecret1",
		Role:     model.Student,
	}
	if err := auth.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	stored, err := auth.UserRepo.FindByEmail("asha@test.local")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Password == "supersecret1" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newTestAuth(t)

	first := &model.User{Name: "Asha", Email: "asha@test.local", Password: "supersecret1", Role: model.Student}
	if err := auth.Register(first); err != nil {
		t.Fatal(err)
	}

	dup := &model.User{Name: "Other", Email: "asha@test.local", Password: "different1", Role: model.Student}
	if err := auth.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("Register duplicate err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	auth := newTestAuth(t)

	user := &model.User{Name: "Ravi", Email: "ravi@test.local", Password: "supersecret1", Role: model.Teacher}
	if err := auth.Register(user); err != nil {
		t.Fatal(err)
	}

	token, loggedIn, err := auth.Login("ravi@test.local", "supersecret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.Email != "ravi@test.local" {
		t.Errorf("Email = %q", loggedIn.Email)
	}

	claims, err := util.ParseJWT(token, auth.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != loggedIn.ID {
		t.Errorf("claims.UserID = %d, want %d", claims.UserID, loggedIn.ID)
	}
	if claims.Role != model.Teacher {
		t.Errorf("claims.Role = %q, want teacher", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newTestAuth(t)

	user := &model.User{Name: "Ravi", Email: "ravi@test.local", Password: "supersecret1", Role: model.Student}
	if err := auth.Register(user); err != nil {
		t.Fatal(err)
	}

	if _, _, err := auth.Login("ravi@test.local", "wrong-password"); err == nil {
		t.Fatal("Login accepted a wrong password")
	}
	if _, _, err := auth.Login("nobody@test.local", "supersecret1"); err == nil {
		t.Fatal("Login accepted an unknown email")
	}
}
