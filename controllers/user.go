package controllers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/utils"
)

// GetAllUsers lists staff accounts, optionally filtered by role and status.
func GetAllUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Limit(limit).Offset((page - 1) * limit).
		Order("last_name ASC, first_name ASC").
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}

	for i := range users {
		users[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetUser returns a single user by ID.
func GetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}
	user.Password = ""
	return c.JSON(user)
}

// CreateUser registers a staff account (admin operation).
func CreateUser(c *fiber.Ctx) error {
	user := new(models.User)
	if err := c.BodyParser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if user.Email == "" || user.Password == "" || user.FirstName == "" || user.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}
	if !models.ValidRole(string(user.Role)) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid role",
		})
	}
	if user.WorkingHours != nil {
		if err := user.WorkingHours.Validate(); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid working hours",
				Error:   err.Error(),
			})
		}
	}

	var existingUser models.User
	if db.DB.Where("email = ?", user.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "User with this email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}
	user.Password = string(hashedPassword)

	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser edits profile fields; password and role changes go through
// their dedicated endpoints.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	var input struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Email          *string `json:"email"`
		Specialization *string `json:"specialization"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Specialization != nil {
		updates["specialization"] = *input.Specialization
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update user",
				Error:   err.Error(),
			})
		}
	}

	user.Password = ""
	return c.JSON(user)
}

// DeactivateUser disables an account without deleting its history.
func DeactivateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"status":        "inactive",
		"refresh_token": "",
	}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to deactivate user",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "User deactivated successfully",
	})
}

// GetWorkingHours returns a dentist's weekly schedule, applying the clinic
// default when none is configured.
func GetWorkingHours(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}
	if user.Role != models.RoleDentist {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "User is not a dentist",
		})
	}

	return c.JSON(fiber.Map{
		"working_hours": user.Schedule(),
	})
}

// UpdateWorkingHours replaces a dentist's weekly schedule after validation.
// Existing appointments are not retroactively affected; new bookings use the
// updated windows.
func UpdateWorkingHours(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}
	if user.Role != models.RoleDentist {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "User is not a dentist",
		})
	}

	var schedule models.WeekSchedule
	if err := c.BodyParser(&schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := schedule.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid working hours",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&user).Update("working_hours", &schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update working hours",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":       "Working hours updated successfully",
		"working_hours": schedule,
	})
}

// GetUserStats summarizes a dentist's appointment counts by status.
func GetUserStats(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}

	type statusCount struct {
		Status models.AppointmentStatus `json:"status"`
		Count  int64                    `json:"count"`
	}
	var counts []statusCount
	if err := db.DB.Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Where("dentist_id = ?", user.ID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch user stats",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"user_id": user.ID,
		"stats":   counts,
	})
}
