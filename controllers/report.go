package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"monchai-insurance/config"
	"monchai-insurance/services"
	"monchai-insurance/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController handles the due list exports
type ReportController struct {
	Customers  *services.CustomerService
	WindowDays int
	Log        *logrus.Logger
}

type DueReportResponse struct {
	RunID       string            `json:"runId"`
	WindowDays  int               `json:"windowDays"`
	GeneratedAt time.Time         `json:"generatedAt"`
	WriteBacks  int               `json:"writeBacks"`
	Failed      int               `json:"failedWriteBacks"`
	Items       []DueItemResponse `json:"items"`
}

type DueItemResponse struct {
	RowNumber           int    `json:"rowNumber"`
	CustomerName        string `json:"customerName"`
	LicensePlate        string `json:"licensePlate"`
	Phone               string `json:"phone"`
	Status              string `json:"status"`
	ActExpiryDate       string `json:"actExpiryDate"`
	TaxExpiryDate       string `json:"taxExpiryDate"`
	VoluntaryExpiryDate string `json:"voluntaryExpiryDate"`
	ActDays             *int   `json:"actDays"`
	TaxDays             *int   `json:"taxDays"`
	VoluntaryDays       *int   `json:"voluntaryDays"`
	MinDays             *int   `json:"minDays"`
}

// GetDue returns the due list as JSON for integrations.
func (rc *ReportController) GetDue(c *gin.Context) {
	report := rc.Customers.Due(c.Request.Context(), windowDays(c, rc.WindowDays))

	resp := DueReportResponse{
		RunID:       report.RunID,
		WindowDays:  report.WindowDays,
		GeneratedAt: report.GeneratedAt,
		WriteBacks:  report.WriteBacks,
		Failed:      report.Failed,
		Items:       make([]DueItemResponse, 0, len(report.Items)),
	}
	for _, item := range report.Items {
		cust := item.Customer
		resp.Items = append(resp.Items, DueItemResponse{
			RowNumber:           cust.RowNumber,
			CustomerName:        cust.CustomerName,
			LicensePlate:        cust.LicensePlate,
			Phone:               cust.Phone,
			Status:              item.Status.String(),
			ActExpiryDate:       cust.Inputs.ActExpiryDate,
			TaxExpiryDate:       cust.Inputs.TaxExpiryDate,
			VoluntaryExpiryDate: cust.Inputs.VoluntaryExpiryDate,
			ActDays:             item.Days.Act,
			TaxDays:             item.Days.Tax,
			VoluntaryDays:       item.Days.Voluntary,
			MinDays:             item.MinDays,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ExportDue downloads the due list as an xlsx workbook.
func (rc *ReportController) ExportDue(c *gin.Context) {
	report := rc.Customers.Due(c.Request.Context(), windowDays(c, rc.WindowDays))
	loc := rc.Customers.Location()

	var buf bytes.Buffer
	if err := services.WriteDueWorkbook(&buf, report, loc); err != nil {
		config.LogError(rc.Log, "report", "ExportDue", "write workbook", report.RunID, err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write file")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+services.DueWorkbookName(report, loc))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
