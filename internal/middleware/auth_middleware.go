package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"timeclock-backend/config"
)

// Auth validates the Bearer token and copies its claims into fiber Locals.
func Auth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Missing token"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(config.JWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	claims := token.Claims.(jwt.MapClaims)
	c.Locals("user_id", claims["user_id"])
	c.Locals("employee_id", claims["employee_id"])
	c.Locals("is_staff", claims["is_staff"])
	c.Locals("is_superuser", claims["is_superuser"])
	c.Locals("is_guard", claims["is_guard"])

	return c.Next()
}

// StaffOnly rejects tokens that carry neither the staff nor superuser flag.
// Must run after Auth.
func StaffOnly(c *fiber.Ctx) error {
	isStaff, _ := c.Locals("is_staff").(bool)
	isSuperuser, _ := c.Locals("is_superuser").(bool)
	if !isStaff && !isSuperuser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "Staff access required"})
	}
	return c.Next()
}
