package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
)

type stubUserRepo struct {
	user model.User
}

func (s *stubUserRepo) Create(user *model.User) error { return nil }
func (s *stubUserRepo) Update(user *model.User) error { return nil }

func (s *stubUserRepo) GetByID(id uint) (*model.User, error) {
	if id != s.user.ID {
		return nil, gorm.ErrRecordNotFound
	}
	user := s.user
	return &user, nil
}

func (s *stubUserRepo) GetByEmployeeID(employeeID string) (*model.User, error) {
	if employeeID != s.user.EmployeeID {
		return nil, gorm.ErrRecordNotFound
	}
	user := s.user
	return &user, nil
}

func (s *stubUserRepo) List(filter repository.UserFilter) ([]model.User, error) {
	return []model.User{s.user}, nil
}

func (s *stubUserRepo) MaxEmployeeID() (string, error)     { return s.user.EmployeeID, nil }
func (s *stubUserRepo) AllEmployeeIDs() ([]string, error)  { return []string{s.user.EmployeeID}, nil }
func (s *stubUserRepo) GetByBirthday(month, day int) ([]model.User, error) {
	return nil, nil
}
func (s *stubUserRepo) GetByDateHiredAnniversary(month, day int) ([]model.User, error) {
	return nil, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// newProfileApp mounts Profile behind a middleware that plants the given
// Locals, standing in for the auth middleware.
func newProfileApp(locals map[string]interface{}) *fiber.App {
	user := model.User{EmployeeID: "000030", FirstName: "Pat", IsActive: true}
	user.ID = 30
	hdl := NewUserHandler(nil, &stubUserRepo{user: user}, nil, nil)

	app := fiber.New()
	app.Get("/api/profile", func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		return c.Next()
	}, hdl.Profile)
	return app
}

func TestProfileRejectsTokenWithoutUserID(t *testing.T) {
	app := newProfileApp(map[string]interface{}{"employee_id": "000030"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/profile", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for missing user_id claim", resp.StatusCode)
	}
}

func TestProfileRejectsNonNumericUserID(t *testing.T) {
	app := newProfileApp(map[string]interface{}{"user_id": "30"})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/profile", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for non-numeric user_id claim", resp.StatusCode)
	}
}

func TestProfileWithValidClaim(t *testing.T) {
	app := newProfileApp(map[string]interface{}{"user_id": float64(30)})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/profile", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
