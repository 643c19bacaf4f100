package controllers

import (
	"errors"
	"strconv"

	"lifelessons/backend/config"
	"lifelessons/backend/models"
	"lifelessons/backend/payments"
	"lifelessons/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions payments.SessionCreator
}

func NewPaymentController(db *gorm.DB, cfg *config.Config, sessions payments.SessionCreator) *PaymentController {
	return &PaymentController{DB: db, Cfg: cfg, Sessions: sessions}
}

// CreateCheckoutSession godoc
// @Summary Start a premium checkout
// @Description Creates a hosted payment session for the authenticated caller and returns its redirect URL
// @Tags payments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /create-checkout-session [post]
func (pc *PaymentController) CreateCheckoutSession(c *fiber.Ctx) error {
	email, _ := c.Locals("email").(string)
	if email == "" {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := pc.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	session, err := pc.Sessions.CreateCheckoutSession(c.UserContext(), payments.SessionInput{
		UserID:    strconv.FormatUint(uint64(user.ID), 10),
		UserName:  user.Name,
		UserEmail: user.Email,
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create checkout session")
	}

	return c.JSON(fiber.Map{"url": session.URL})
}
