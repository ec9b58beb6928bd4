// controllers/reminder.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"reminders-backend/config"
	"reminders-backend/models"
	"reminders-backend/services"
	"reminders-backend/utils"
)

// ReminderController serves the reminder CRUD routes. Reads and writes go
// through config.DB; user existence checks go through the directory client.
type ReminderController struct {
	Users services.UserDirectory
}

// GetReminders returns all reminders owned by the given user.
func (rc *ReminderController) GetReminders(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.RespondFailed(c, http.StatusBadRequest, "userId is required")
		return
	}

	var reminders []models.Reminder
	if err := config.DB.Where("user_id = ?", userID).Find(&reminders).Error; err != nil {
		utils.GetLogger().Error("failed to list reminders", zap.Error(err))
		utils.RespondFailed(c, http.StatusInternalServerError, "Failed to retrieve reminders")
		return
	}

	utils.RespondSuccess(c, gin.H{"reminders": reminders})
}

// CreateReminder validates and persists a new reminder. Validation short-
// circuits on the first failure: required fields, cron syntax, the
// no-seconds and minute-or-hour policies, then user existence.
func (rc *ReminderController) CreateReminder(c *gin.Context) {
	text := c.PostForm("text")
	cronExpr := c.PostForm("cron")
	userID := c.PostForm("userId")

	for _, field := range []struct{ name, value string }{
		{"text", text},
		{"cron", cronExpr},
		{"userId", userID},
	} {
		if field.value == "" {
			utils.RespondFailed(c, http.StatusBadRequest, field.name+" is required")
			return
		}
	}

	if err := utils.ValidateCron(cronExpr); err != nil {
		utils.RespondFailed(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.RequireMinuteOrHour(cronExpr); err != nil {
		utils.RespondFailed(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := rc.Users.Lookup(c.Request.Context(), userID)
	if err != nil {
		utils.GetLogger().Error("user lookup failed", zap.String("user", userID), zap.Error(err))
		utils.RespondFailed(c, http.StatusInternalServerError, "Failed to verify user")
		return
	}
	if user == nil {
		utils.RespondFailed(c, http.StatusBadRequest, "User does not exist")
		return
	}

	dueDate, err := utils.NextOccurrence(cronExpr, time.Now().UTC())
	if err != nil {
		utils.RespondFailed(c, http.StatusBadRequest, err.Error())
		return
	}

	reminder := models.Reminder{
		Text:    text,
		UserID:  userID,
		Cron:    cronExpr,
		DueDate: dueDate,
	}
	if err := config.DB.Create(&reminder).Error; err != nil {
		utils.GetLogger().Error("failed to create reminder", zap.Error(err))
		utils.RespondFailed(c, http.StatusInternalServerError, "Failed to create reminder")
		return
	}

	utils.RespondSuccess(c, nil)
}

// DeleteReminder removes at most one reminder matching both the path id and
// the caller's userId. Deleting a reminder that does not exist is a no-op,
// not an error.
func (rc *ReminderController) DeleteReminder(c *gin.Context) {
	userID := c.PostForm("userId")
	if userID == "" {
		utils.RespondFailed(c, http.StatusBadRequest, "userId is required")
		return
	}

	reminderID, err := uuid.Parse(c.Param("reminderId"))
	if err != nil {
		// A malformed id cannot match anything; same outcome as deleting a
		// non-existent reminder.
		utils.RespondSuccess(c, nil)
		return
	}

	result := config.DB.Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&models.Reminder{})
	if result.Error != nil {
		utils.GetLogger().Error("failed to delete reminder", zap.Error(result.Error))
		utils.RespondFailed(c, http.StatusInternalServerError, "Failed to delete reminder")
		return
	}

	utils.RespondSuccess(c, nil)
}
