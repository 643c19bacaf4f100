package controllers

import (
	"errors"
	"strconv"
	"time"

	"lifelessons/backend/config"
	"lifelessons/backend/models"
	"lifelessons/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// Register godoc
// @Summary Register a user
// @Description Creates a user on first registration; registering the same email again is a no-op
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /users [post]
func (uc *UserController) Register(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	email := stringField(body, "email")
	if email == "" {
		return utils.BadRequest(c, "email is required")
	}

	var existing models.User
	err := uc.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return c.JSON(fiber.Map{"message": "user already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	profile, err := extraFields(body, "email", "name", "role", "accessLevel", "createdAt")
	if err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	user := models.User{
		Name:        stringField(body, "name"),
		Email:       email,
		Role:        models.RoleUser,
		AccessLevel: models.AccessFree,
		Profile:     profile,
		CreatedAt:   time.Now(),
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}

	return c.JSON(fiber.Map{"insertedId": user.ID})
}

func (uc *UserController) GetUserByEmail(c *fiber.Ctx) error {
	var user models.User
	if err := uc.DB.Where("email = ?", c.Params("email")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(user)
}

// ListUsers handles GET /users?email= for admins, newest first.
func (uc *UserController) ListUsers(c *fiber.Ctx) error {
	query := uc.DB.Order("created_at DESC")
	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", email)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(users)
}

// MakePremium unconditionally sets the access level after an external
// payment confirmation.
func (uc *UserController) MakePremium(c *fiber.Ctx) error {
	result := uc.DB.Model(&models.User{}).
		Where("email = ?", c.Params("email")).
		Update("access_level", models.AccessPremium)
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not update user")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "User not found")
	}
	return c.JSON(fiber.Map{"message": "access level updated", "modifiedCount": result.RowsAffected})
}

func (uc *UserController) MakeAdmin(c *fiber.Ctx) error {
	return uc.setRole(c, models.RoleAdmin)
}

func (uc *UserController) RemoveAdmin(c *fiber.Ctx) error {
	return uc.setRole(c, models.RoleUser)
}

func (uc *UserController) setRole(c *fiber.Ctx, role string) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	result := uc.DB.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not update user")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "User not found")
	}
	return c.JSON(fiber.Map{"message": "role updated", "modifiedCount": result.RowsAffected})
}

func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	result := uc.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "User not found")
	}
	return c.JSON(fiber.Map{"message": "user deleted", "deletedCount": result.RowsAffected})
}

// AdminUsers godoc
// @Summary List users with lesson counts
// @Description Every user annotated with the number of lessons they authored
// @Tags admin
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users [get]
func (uc *UserController) AdminUsers(c *fiber.Ctx) error {
	type adminUserRow struct {
		ID           uint      `json:"id"`
		Name         string    `json:"name"`
		Email        string    `json:"email"`
		Role         string    `json:"role"`
		AccessLevel  string    `json:"accessLevel"`
		TotalLessons int64     `json:"totalLessons"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	var rows []adminUserRow
	err := uc.DB.Model(&models.User{}).
		Select("users.id, users.name, users.email, users.role, users.access_level, users.created_at, count(lessons.id) AS total_lessons").
		Joins("LEFT JOIN lessons ON lessons.lessoner_email = users.email").
		Group("users.id").
		Order("users.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(rows)
}
