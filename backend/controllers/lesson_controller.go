package controllers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"lifelessons/backend/config"
	"lifelessons/backend/models"
	"lifelessons/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LessonController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLessonController(db *gorm.DB, cfg *config.Config) *LessonController {
	return &LessonController{DB: db, Cfg: cfg}
}

// lessonResponse flattens a lesson into its wire shape: columns, the
// free-form content fields, member emails and raw comment objects.
func lessonResponse(lesson models.Lesson) fiber.Map {
	likes := make([]string, 0, len(lesson.Likes))
	for _, l := range lesson.Likes {
		likes = append(likes, l.Email)
	}

	favorites := make([]string, 0, len(lesson.Favorites))
	for _, f := range lesson.Favorites {
		favorites = append(favorites, f.Email)
	}

	comments := make([]json.RawMessage, 0, len(lesson.Comments))
	for _, cm := range lesson.Comments {
		comments = append(comments, json.RawMessage(cm.Body))
	}

	m := fiber.Map{
		"id":            lesson.ID,
		"lessonerEmail": lesson.LessonerEmail,
		"lessonerName":  lesson.LessonerName,
		"title":         lesson.Title,
		"likes":         likes,
		"likesCount":    lesson.LikesCount,
		"favorites":     favorites,
		"favoriteCount": lesson.FavoriteCount,
		"comments":      comments,
		"createdAt":     lesson.CreatedAt,
		"updatedAt":     lesson.UpdatedAt,
	}

	if len(lesson.Content) > 0 {
		var extra map[string]interface{}
		if err := json.Unmarshal(lesson.Content, &extra); err == nil {
			for k, v := range extra {
				if _, taken := m[k]; !taken {
					m[k] = v
				}
			}
		}
	}

	return m
}

func (lc *LessonController) withAssociations() *gorm.DB {
	return lc.DB.
		Preload("Likes").
		Preload("Favorites").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("lesson_comments.id ASC")
		})
}

// ListLessons handles GET /lessons?email=, newest first.
func (lc *LessonController) ListLessons(c *fiber.Ctx) error {
	query := lc.withAssociations().Order("created_at DESC")
	if email := c.Query("email"); email != "" {
		query = query.Where("lessoner_email = ?", email)
	}

	var lessons []models.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, lessonResponse(lesson))
	}
	return c.JSON(result)
}

func (lc *LessonController) GetLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.withAssociations().First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(lessonResponse(lesson))
}

// CreateLesson godoc
// @Summary Create a lesson
// @Description Stamps a creation time and stores any extra fields verbatim
// @Tags lessons
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /lessons [post]
func (lc *LessonController) CreateLesson(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	content, err := extraFields(body, "lessonerEmail", "lessonerName", "title", "createdAt",
		"likes", "likesCount", "favorites", "favoriteCount", "comments")
	if err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	lesson := models.Lesson{
		LessonerEmail: stringField(body, "lessonerEmail"),
		LessonerName:  stringField(body, "lessonerName"),
		Title:         stringField(body, "title"),
		Content:       content,
		CreatedAt:     time.Now(),
	}
	if err := lc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return c.JSON(fiber.Map{"insertedId": lesson.ID})
}

// UpdateLesson merges the given fields into the lesson: known fields update
// their columns, anything else merges into the content document.
func (lc *LessonController) UpdateLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.First(&lesson, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if v, ok := body["lessonerEmail"].(string); ok {
			updates["lessoner_email"] = v
		}
		if v, ok := body["lessonerName"].(string); ok {
			updates["lessoner_name"] = v
		}
		if v, ok := body["title"].(string); ok {
			updates["title"] = v
		}

		extra, err := extraFields(body, "lessonerEmail", "lessonerName", "title", "createdAt",
			"likes", "likesCount", "favorites", "favoriteCount", "comments")
		if err != nil {
			return err
		}
		if len(extra) > 0 {
			merged := map[string]interface{}{}
			if len(lesson.Content) > 0 {
				if err := json.Unmarshal(lesson.Content, &merged); err != nil {
					merged = map[string]interface{}{}
				}
			}
			var patch map[string]interface{}
			if err := json.Unmarshal(extra, &patch); err != nil {
				return err
			}
			for k, v := range patch {
				merged[k] = v
			}
			raw, err := json.Marshal(merged)
			if err != nil {
				return err
			}
			updates["content"] = datatypes.JSON(raw)
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&lesson).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not update lesson")
	}

	return c.JSON(fiber.Map{"message": "lesson updated", "modifiedCount": 1})
}

// DeleteLesson removes the lesson with its memberships and comments.
func (lc *LessonController) DeleteLesson(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var deleted int64
	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&models.LessonLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&models.LessonFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", id).Delete(&models.LessonComment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Lesson{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}
	if deleted == 0 {
		return utils.NotFound(c, "Lesson not found")
	}

	return c.JSON(fiber.Map{"message": "lesson deleted", "deletedCount": deleted})
}

func (lc *LessonController) ToggleLike(c *fiber.Ctx) error {
	return lc.toggleMembership(c, false)
}

func (lc *LessonController) ToggleFavorite(c *fiber.Ctx) error {
	return lc.toggleMembership(c, true)
}

// toggleMembership adds the caller's email to the lesson's like or favorite
// set if absent, removes it if present, and moves the paired counter by the
// same step — all inside one transaction so the counter always equals the
// set size. The composite primary key on the membership tables keeps a
// duplicate insert by the same pair from double-counting under concurrency.
func (lc *LessonController) toggleMembership(c *fiber.Ctx, favorite bool) error {
	email, _ := c.Locals("email").(string)
	if email == "" {
		return utils.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var member bool
	var count int
	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.First(&lesson, id).Error; err != nil {
			return err
		}

		var removed *gorm.DB
		if favorite {
			removed = tx.Where("lesson_id = ? AND email = ?", id, email).Delete(&models.LessonFavorite{})
		} else {
			removed = tx.Where("lesson_id = ? AND email = ?", id, email).Delete(&models.LessonLike{})
		}
		if removed.Error != nil {
			return removed.Error
		}

		delta := -1
		if removed.RowsAffected == 0 {
			delta = 1
			if favorite {
				if err := tx.Create(&models.LessonFavorite{LessonID: uint(id), Email: email}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&models.LessonLike{LessonID: uint(id), Email: email}).Error; err != nil {
					return err
				}
			}
		}
		member = delta > 0

		counter := "likes_count"
		current := lesson.LikesCount
		if favorite {
			counter = "favorite_count"
			current = lesson.FavoriteCount
		}
		update := tx.Model(&models.Lesson{}).Where("id = ?", id).
			UpdateColumn(counter, gorm.Expr(counter+" + ?", delta))
		if update.Error != nil {
			return update.Error
		}
		count = current + delta
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not toggle membership")
	}

	if favorite {
		return c.JSON(fiber.Map{"favorited": member, "favoriteCount": count})
	}
	return c.JSON(fiber.Map{"liked": member, "likesCount": count})
}

// AddComment appends the raw request body to the lesson's comment sequence.
func (lc *LessonController) AddComment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	comment := models.LessonComment{
		LessonID:  uint(id),
		Body:      datatypes.JSON(raw),
		CreatedAt: time.Now(),
	}
	if err := lc.DB.Create(&comment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create comment")
	}

	return c.JSON(fiber.Map{"insertedId": comment.ID})
}

func (lc *LessonController) LikedBy(c *fiber.Ctx) error {
	return lc.lessonsByMembership(c, "lesson_likes")
}

func (lc *LessonController) FavoritedBy(c *fiber.Ctx) error {
	return lc.lessonsByMembership(c, "lesson_favorites")
}

func (lc *LessonController) lessonsByMembership(c *fiber.Ctx, table string) error {
	email := c.Query("email")
	if email == "" {
		email, _ = c.Locals("email").(string)
	}
	if email == "" {
		return utils.BadRequest(c, "email is required")
	}

	var lessons []models.Lesson
	err := lc.withAssociations().
		Joins("JOIN "+table+" ON "+table+".lesson_id = lessons.id").
		Where(table+".email = ?", email).
		Order("lessons.created_at DESC").
		Find(&lessons).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, lessonResponse(lesson))
	}
	return c.JSON(result)
}

// TopCreators godoc
// @Summary Rank lesson authors
// @Description Authors grouped by email with their lesson totals, highest first
// @Tags lessons
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /lessons/top-creators [get]
func (lc *LessonController) TopCreators(c *fiber.Ctx) error {
	type creatorRow struct {
		LessonerEmail string `json:"lessonerEmail"`
		LessonerName  string `json:"lessonerName"`
		TotalLessons  int64  `json:"totalLessons"`
	}

	var rows []creatorRow
	err := lc.DB.Model(&models.Lesson{}).
		Select("lessoner_email, min(lessoner_name) AS lessoner_name, count(*) AS total_lessons").
		Group("lessoner_email").
		Order("total_lessons DESC").
		Scan(&rows).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(rows)
}
