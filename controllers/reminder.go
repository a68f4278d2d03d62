// controllers/reminder.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"monchai-insurance/config"
	"monchai-insurance/services"
)

const journalPageSize = 50

// ReminderController shows what the sheet sync and the reminder job did.
type ReminderController struct {
	Journal *services.Journal
	Log     *logrus.Logger
}

// GetJournal lists the latest sheet writes and reminders.
func (rc *ReminderController) GetJournal(c *gin.Context) {
	ctx := c.Request.Context()
	data := page("บันทึกการซิงก์", "journal")
	data["Enabled"] = rc.Journal.Enabled()

	syncs, err := rc.Journal.RecentSyncs(ctx, journalPageSize)
	if err != nil {
		config.LogError(rc.Log, "reminder", "GetJournal", "load sync logs", nil, err)
		data["SyncWarning"] = "โหลดบันทึกการซิงก์ไม่สำเร็จ"
	}
	reminders, err := rc.Journal.RecentReminders(ctx, journalPageSize)
	if err != nil {
		config.LogError(rc.Log, "reminder", "GetJournal", "load reminder logs", nil, err)
		data["SyncWarning"] = "โหลดบันทึกการแจ้งเตือนไม่สำเร็จ"
	}
	data["Syncs"] = syncs
	data["Reminders"] = reminders
	c.HTML(http.StatusOK, "journal.html", data)
}
