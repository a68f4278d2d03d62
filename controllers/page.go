package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"monchai-insurance/services"
	"monchai-insurance/store"
)

// page starts the data of an HTML page; every key the layout reads is set.
func page(title, active string) gin.H {
	return gin.H{
		"Title":         title,
		"Active":        active,
		"Message":       "",
		"MessageStatus": "",
		"SyncWarning":   "",
	}
}

// RenderMessage shows a plain page with a title and one line of text.
func RenderMessage(c *gin.Context, code int, title, text string) {
	data := page(title, "")
	data["Text"] = text
	c.HTML(code, "message.html", data)
}

func NotFound(c *gin.Context) {
	RenderMessage(c, http.StatusNotFound, "ไม่พบหน้า", "ไม่พบหน้า")
}

func InternalError(c *gin.Context, _ any) {
	RenderMessage(c, http.StatusInternalServerError, "เกิดข้อผิดพลาด", "เกิดข้อผิดพลาดภายในเซิร์ฟเวอร์")
	c.Abort()
}

// windowDays reads ?days=, falling back to fallback and clamping to 1..365.
func windowDays(c *gin.Context, fallback int) int {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil {
		days = fallback
	}
	return services.ClampWindow(days)
}

func syncWarning(err error) string {
	if err == nil {
		return ""
	}
	reason := store.ReasonOf(err)
	if reason == "" {
		reason = store.ReasonException
	}
	return fmt.Sprintf("ข้อมูลถูกต้อง แต่บันทึกลง Google Sheet ไม่สำเร็จ (%s)", reason)
}
