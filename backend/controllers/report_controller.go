package controllers

import (
	"strconv"
	"time"

	"lifelessons/backend/config"
	"lifelessons/backend/models"
	"lifelessons/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewReportController(db *gorm.DB, cfg *config.Config) *ReportController {
	return &ReportController{DB: db, Cfg: cfg}
}

// SubmitReport godoc
// @Summary Report a lesson
// @Description Stores an abuse report; lessonId, reporterUserId and reason are required
// @Tags reports
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /report [post]
func (rc *ReportController) SubmitReport(c *fiber.Ctx) error {
	var input struct {
		LessonID   uint   `json:"lessonId"`
		ReporterID string `json:"reporterUserId"`
		Reason     string `json:"reason"`
		Message    string `json:"message"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.LessonID == 0 || input.ReporterID == "" || input.Reason == "" {
		return utils.BadRequest(c, "lessonId, reporterUserId and reason are required")
	}

	report := models.Report{
		LessonID:   input.LessonID,
		ReporterID: input.ReporterID,
		Reason:     input.Reason,
		Message:    input.Message,
		CreatedAt:  time.Now(),
	}
	if err := rc.DB.Create(&report).Error; err != nil {
		return utils.InternalServerError(c, "Could not create report")
	}

	return c.JSON(fiber.Map{"insertedId": report.ID})
}

func (rc *ReportController) ListReports(c *fiber.Ctx) error {
	var reports []models.Report
	if err := rc.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(reports)
}

// DeleteReport removes one report by its own identifier.
func (rc *ReportController) DeleteReport(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid report ID")
	}

	result := rc.DB.Delete(&models.Report{}, id)
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not delete report")
	}
	if result.RowsAffected == 0 {
		return utils.NotFound(c, "Report not found")
	}
	return c.JSON(fiber.Map{"message": "report deleted", "deletedCount": result.RowsAffected})
}

// DeleteReportsForLesson removes every report filed against one lesson.
func (rc *ReportController) DeleteReportsForLesson(c *fiber.Ctx) error {
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	result := rc.DB.Where("lesson_id = ?", lessonID).Delete(&models.Report{})
	if result.Error != nil {
		return utils.InternalServerError(c, "Could not delete reports")
	}
	return c.JSON(fiber.Map{"message": "reports deleted", "deletedCount": result.RowsAffected})
}
