package service

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timeclock-backend/internal/model"
	"timeclock-backend/internal/repository"
)

var (
	// ErrUserNotFound means no user matches the employee ID.
	ErrUserNotFound = errors.New("employee ID not found")
	// ErrInvalidPIN means a PIN does not satisfy the 4-digit format.
	ErrInvalidPIN = errors.New("PIN must be a 4-digit number")
	// ErrEmployeeIDsExhausted means every 6-digit slot is taken.
	ErrEmployeeIDsExhausted = errors.New("no available employee IDs")
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

type AuthStatus int

const (
	AuthFailed AuthStatus = iota
	Authenticated
	FirstLoginRequired
)

// AuthResult is the tagged outcome of a PIN check. User is set for both
// Authenticated and FirstLoginRequired, nil for AuthFailed.
type AuthResult struct {
	Status AuthStatus
	User   *model.User
}

type AuthService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewAuthService(users repository.UserRepository, log *zap.Logger) *AuthService {
	return &AuthService{users: users, log: log}
}

// AuthenticateByPIN checks an employee ID and PIN. Superusers authenticate
// against their bcrypt password, staff against their PIN; a regular user who
// has never set a PIN gets FirstLoginRequired when presenting "0000".
func (s *AuthService) AuthenticateByPIN(employeeID, pin string) (AuthResult, error) {
	user, err := s.users.GetByEmployeeID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResult{Status: AuthFailed}, ErrUserNotFound
		}
		return AuthResult{Status: AuthFailed}, fmt.Errorf("lookup user: %w", err)
	}

	if !user.IsActive {
		return AuthResult{Status: AuthFailed}, nil
	}

	switch {
	case user.IsSuperuser:
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(pin)) == nil {
			return AuthResult{Status: Authenticated, User: user}, nil
		}
	case user.IsStaff:
		if user.PIN != "" && user.PIN == pin {
			return AuthResult{Status: Authenticated, User: user}, nil
		}
	case user.FirstLogin && pin == "0000":
		return AuthResult{Status: FirstLoginRequired, User: user}, nil
	case user.PIN != "" && user.PIN == pin:
		return AuthResult{Status: Authenticated, User: user}, nil
	}

	return AuthResult{Status: AuthFailed}, nil
}

// SetPIN stores the user's chosen PIN and clears the first-login flag.
func (s *AuthService) SetPIN(user *model.User, newPIN string) error {
	if !pinPattern.MatchString(newPIN) {
		return ErrInvalidPIN
	}
	user.PIN = newPIN
	user.FirstLogin = false
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("update PIN: %w", err)
	}
	s.log.Info("PIN set on first login", zap.String("employee_id", user.EmployeeID))
	return nil
}

// NextEmployeeID hands out the next free zero-padded 6-digit ID. Once the
// sequence passes 999999 it scans for gaps left by deleted users.
func (s *AuthService) NextEmployeeID() (string, error) {
	highest, err := s.users.MaxEmployeeID()
	if err != nil {
		return "", fmt.Errorf("max employee ID: %w", err)
	}
	if highest == "" {
		return "000001", nil
	}

	next, err := strconv.Atoi(highest)
	if err != nil {
		return "", fmt.Errorf("parse employee ID %q: %w", highest, err)
	}
	next++
	if next <= 999999 {
		return fmt.Sprintf("%06d", next), nil
	}

	existing, err := s.users.AllEmployeeIDs()
	if err != nil {
		return "", fmt.Errorf("list employee IDs: %w", err)
	}
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}
	for i := 1; i <= 999999; i++ {
		candidate := fmt.Sprintf("%06d", i)
		if _, ok := taken[candidate]; !ok {
			return candidate, nil
		}
	}
	return "", ErrEmployeeIDsExhausted
}
