package middleware

import (
	"lifelessons/backend/config"
	"lifelessons/backend/models"
	"lifelessons/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware verifies the identity token and stores the verified email
// in request locals.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := utils.ExtractEmailFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("email", email)
		return c.Next()
	}
}

// AdminMiddleware additionally loads the caller's user record and requires
// the persisted role to be admin.
func AdminMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := utils.ExtractEmailFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			return utils.Forbidden(c, "Forbidden - Admin access required")
		}
		if user.Role != models.RoleAdmin {
			return utils.Forbidden(c, "Forbidden - Admin access required")
		}

		c.Locals("email", email)
		c.Locals("role", user.Role)
		return c.Next()
	}
}
