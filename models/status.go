package models

import "strings"

// Status is the renewal follow-up state of a customer.
type Status string

const (
	StatusNotNotified Status = "NOT_NOTIFIED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusNotRenewing Status = "NOT_RENEWING"
	StatusRenewed     Status = "RENEWED"
)

// AllStatuses lists statuses in legacy code order (1..4).
var AllStatuses = []Status{StatusNotNotified, StatusInProgress, StatusNotRenewing, StatusRenewed}

// statusAliases maps every accepted stored/submitted value onto a status.
// Old sheet rows carry numeric codes or Thai labels, so none of these may change.
var statusAliases = map[string]Status{
	"1": StatusNotNotified,
	"2": StatusInProgress,
	"3": StatusNotRenewing,
	"4": StatusRenewed,

	"not_notified": StatusNotNotified,
	"in_progress":  StatusInProgress,
	"not_renewing": StatusNotRenewing,
	"renewed":      StatusRenewed,

	"ยังไม่แจ้ง":     StatusNotNotified,
	"กำลังดำเนินการ": StatusInProgress,
	"ไม่ต่อ":         StatusNotRenewing,
	"ลูกค้าไม่ต่อ":   StatusNotRenewing,
	"ต่อแล้ว":        StatusRenewed,
	"ต่ออายุแล้ว":    StatusRenewed,
}

var statusThaiLabels = map[Status]string{
	StatusNotNotified: "ยังไม่แจ้ง",
	StatusInProgress:  "กำลังดำเนินการ",
	StatusNotRenewing: "ลูกค้าไม่ต่อ",
	StatusRenewed:     "ต่ออายุแล้ว",
}

// ParseStatus resolves raw through the alias table. Anything unknown,
// including the empty string, is NOT_NOTIFIED.
func ParseStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	if s, ok := statusAliases[key]; ok {
		return s
	}
	return StatusNotNotified
}

// Code returns the legacy numeric wire code ("1".."4").
func (s Status) Code() string {
	for i, candidate := range AllStatuses {
		if candidate == s {
			return string(rune('1' + i))
		}
	}
	return "1"
}

func (s Status) ThaiLabel() string {
	if label, ok := statusThaiLabels[s]; ok {
		return label
	}
	return statusThaiLabels[StatusNotNotified]
}

func (s Status) String() string {
	return string(s)
}
