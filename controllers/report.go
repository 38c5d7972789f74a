package controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/ivan51987/dentista-backend/db"
	"github.com/ivan51987/dentista-backend/models"
	"github.com/ivan51987/dentista-backend/utils"
)

type revenueRow struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

type dentistPerformanceRow struct {
	DentistID uint    `json:"dentist_id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	NoShow    int64   `json:"no_show"`
	Revenue   float64 `json:"revenue"`
}

type popularTreatmentRow struct {
	TreatmentID uint    `json:"treatment_id"`
	Name        string  `json:"name"`
	Count       int64   `json:"count"`
	Revenue     float64 `json:"revenue"`
}

// reportRange parses start/end query params, defaulting to the last 30 days.
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date: %s", s)
		}
		start = parsed
	}
	if s := c.Query("end"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date: %s", s)
		}
		end = parsed.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		return start, end, fmt.Errorf("start date must be before end date")
	}
	return start, end, nil
}

func revenueRows(start, end time.Time, groupBy string) ([]revenueRow, error) {
	var trunc string
	switch groupBy {
	case "week":
		trunc = "week"
	case "month":
		trunc = "month"
	default:
		trunc = "day"
	}

	var rows []revenueRow
	err := db.DB.Model(&models.Payment{}).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Where("payments.created_at >= ? AND payments.created_at < ?", start, end).
		Select(fmt.Sprintf(
			"TO_CHAR(DATE_TRUNC('%s', payments.created_at), 'YYYY-MM-DD') as period, "+
				"SUM(payments.amount) as revenue, COUNT(*) as count", trunc)).
		Group("period").
		Order("period ASC").
		Scan(&rows).Error
	return rows, err
}

// GetRevenueReport aggregates payments by day, week or month.
func GetRevenueReport(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	rows, err := revenueRows(start, end, c.Query("group_by", "day"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build revenue report",
			Error:   err.Error(),
		})
	}

	var total float64
	for _, r := range rows {
		total += r.Revenue
	}

	return c.JSON(fiber.Map{
		"start":   start.Format("2006-01-02"),
		"end":     end.AddDate(0, 0, -1).Format("2006-01-02"),
		"total":   total,
		"revenue": rows,
	})
}

func dentistPerformanceRows(start, end time.Time) ([]dentistPerformanceRow, error) {
	var rows []dentistPerformanceRow
	err := db.DB.Model(&models.User{}).
		Joins("LEFT JOIN appointments ON appointments.dentist_id = users.id AND appointments.date >= ? AND appointments.date < ?", start, end).
		Joins("LEFT JOIN treatments ON treatments.id = appointments.treatment_id").
		Where("users.role = ?", models.RoleDentist).
		Select("users.id as dentist_id, users.first_name, users.last_name, " +
			"COUNT(*) FILTER (WHERE appointments.status = 'completed') as completed, " +
			"COUNT(*) FILTER (WHERE appointments.status = 'cancelled') as cancelled, " +
			"COUNT(*) FILTER (WHERE appointments.status = 'no-show') as no_show, " +
			"COALESCE(SUM(treatments.cost) FILTER (WHERE appointments.status = 'completed'), 0) as revenue").
		Group("users.id, users.first_name, users.last_name").
		Order("revenue DESC").
		Scan(&rows).Error
	return rows, err
}

// GetDentistPerformance ranks dentists by completed appointments and revenue.
func GetDentistPerformance(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	rows, err := dentistPerformanceRows(start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build performance report",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"start":    start.Format("2006-01-02"),
		"end":      end.AddDate(0, 0, -1).Format("2006-01-02"),
		"dentists": rows,
	})
}

func popularTreatmentRowsFor(start, end time.Time, limit int) ([]popularTreatmentRow, error) {
	var rows []popularTreatmentRow
	err := db.DB.Model(&models.Appointment{}).
		Joins("JOIN treatments ON treatments.id = appointments.treatment_id").
		Where("appointments.date >= ? AND appointments.date < ? AND appointments.status = ?",
			start, end, models.StatusCompleted).
		Select("treatments.id as treatment_id, treatments.name, COUNT(*) as count, SUM(treatments.cost) as revenue").
		Group("treatments.id, treatments.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// GetPopularTreatments lists the most performed treatments in a range.
func GetPopularTreatments(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	rows, err := popularTreatmentRowsFor(start, end, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build treatment report",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"start":      start.Format("2006-01-02"),
		"end":        end.AddDate(0, 0, -1).Format("2006-01-02"),
		"treatments": rows,
	})
}

// GetNewPatients counts patient registrations per month in a range.
func GetNewPatients(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	type monthCount struct {
		Month string `json:"month"`
		Count int64  `json:"count"`
	}
	var rows []monthCount
	if err := db.DB.Model(&models.Patient{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("TO_CHAR(DATE_TRUNC('month', created_at), 'YYYY-MM') as month, COUNT(*) as count").
		Group("month").
		Order("month ASC").
		Scan(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build patient report",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"start":  start.Format("2006-01-02"),
		"end":    end.AddDate(0, 0, -1).Format("2006-01-02"),
		"months": rows,
	})
}

// GetDashboard returns the headline numbers for the admin landing page.
func GetDashboard(c *fiber.Ctx) error {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var todayAppointments, pendingToday, totalPatients, newPatientsMonth int64
	db.DB.Model(&models.Appointment{}).
		Where("date >= ? AND date < ?", todayStart, todayEnd).Count(&todayAppointments)
	db.DB.Model(&models.Appointment{}).
		Where("date >= ? AND date < ? AND status = ?", todayStart, todayEnd, models.StatusPending).
		Count(&pendingToday)
	db.DB.Model(&models.Patient{}).Count(&totalPatients)
	db.DB.Model(&models.Patient{}).Where("created_at >= ?", monthStart).Count(&newPatientsMonth)

	var revenueMonth float64
	db.DB.Model(&models.Payment{}).
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenueMonth)

	var upcoming []models.Appointment
	db.DB.Where("date >= ? AND status = ?", now, models.StatusPending).
		Preload("Patient").Preload("Dentist").Preload("Treatment").
		Order("date ASC").Limit(5).Find(&upcoming)
	for i := range upcoming {
		upcoming[i].Sanitize()
	}

	return c.JSON(fiber.Map{
		"today_appointments": todayAppointments,
		"pending_today":      pendingToday,
		"total_patients":     totalPatients,
		"new_patients_month": newPatientsMonth,
		"revenue_month":      revenueMonth,
		"upcoming":           upcoming,
	})
}

// ExportRevenuePDF renders the revenue report as a downloadable PDF.
func ExportRevenuePDF(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	rows, err := revenueRows(start, end, c.Query("group_by", "day"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build revenue report",
			Error:   err.Error(),
		})
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Revenue Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		start.Format("2006-01-02"), end.AddDate(0, 0, -1).Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Period", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Payments", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, "Revenue", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	var total float64
	for _, r := range rows {
		pdf.CellFormat(60, 8, r.Period, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", r.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", r.Revenue), "1", 1, "R", false, 0, "")
		total += r.Revenue
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(100, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to render PDF",
			Error:   err.Error(),
		})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="revenue-report.pdf"`)
	return c.Send(buf.Bytes())
}

// ExportRevenueXLSX renders the revenue and performance reports as a
// two-sheet spreadsheet.
func ExportRevenueXLSX(c *fiber.Ctx) error {
	start, end, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: err.Error(),
		})
	}

	revenue, err := revenueRows(start, end, c.Query("group_by", "day"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build revenue report",
			Error:   err.Error(),
		})
	}
	performance, err := dentistPerformanceRows(start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to build performance report",
			Error:   err.Error(),
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	const revenueSheet = "Revenue"
	f.SetSheetName("Sheet1", revenueSheet)
	f.SetSheetRow(revenueSheet, "A1", &[]interface{}{"Period", "Payments", "Revenue"})
	for i, r := range revenue {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(revenueSheet, cell, &[]interface{}{r.Period, r.Count, r.Revenue})
	}

	const dentistSheet = "Dentists"
	f.NewSheet(dentistSheet)
	f.SetSheetRow(dentistSheet, "A1", &[]interface{}{
		"Dentist", "Completed", "Cancelled", "No-show", "Revenue",
	})
	for i, r := range performance {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(dentistSheet, cell, &[]interface{}{
			r.FirstName + " " + r.LastName, r.Completed, r.Cancelled, r.NoShow, r.Revenue,
		})
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to render spreadsheet",
			Error:   err.Error(),
		})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="clinic-report.xlsx"`)
	return c.Send(buf.Bytes())
}
