package services

import (
	"time"

	"monchai-insurance/models"
	"monchai-insurance/utils"
)

// AlertWindowDays is the fixed lookahead used by reconciliation and the
// renewed-status rule. The due view may widen its own window, this one never moves.
const AlertWindowDays = 30

// ExpiryField names one of the three expiry dates of a customer.
type ExpiryField string

const (
	ExpiryAct       ExpiryField = "actExpiryDate"
	ExpiryTax       ExpiryField = "taxExpiryDate"
	ExpiryVoluntary ExpiryField = "voluntaryExpiryDate"
)

var ExpiryFields = []ExpiryField{ExpiryAct, ExpiryTax, ExpiryVoluntary}

var expiryLabels = map[ExpiryField]string{
	ExpiryAct:       "วันที่ครบกำหนด พ.ร.บ.",
	ExpiryTax:       "วันที่ครบกำหนดต่อภาษี",
	ExpiryVoluntary: "วันที่ครบกำหนดกรมธรรม์ภาคสมัครใจ",
}

func (f ExpiryField) Label() string {
	return expiryLabels[f]
}

// Value returns the stored expiry date of c for f.
func (f ExpiryField) Value(c models.Customer) string {
	switch f {
	case ExpiryAct:
		return c.ActExpiryDate
	case ExpiryTax:
		return c.TaxExpiryDate
	case ExpiryVoluntary:
		return c.VoluntaryExpiryDate
	}
	return ""
}

// ExpiryDays holds days-until-expiry per date pair; nil means no usable date.
type ExpiryDays struct {
	Act       *int
	Tax       *int
	Voluntary *int
}

// ExpiryDaysFor computes the three distances for c relative to now.
func ExpiryDaysFor(c models.Customer, now time.Time) ExpiryDays {
	return ExpiryDays{
		Act:       utils.DaysUntil(c.ActExpiryDate, now),
		Tax:       utils.DaysUntil(c.TaxExpiryDate, now),
		Voluntary: utils.DaysUntil(c.VoluntaryExpiryDate, now),
	}
}

// For returns the distance of field f.
func (d ExpiryDays) For(f ExpiryField) *int {
	switch f {
	case ExpiryAct:
		return d.Act
	case ExpiryTax:
		return d.Tax
	case ExpiryVoluntary:
		return d.Voluntary
	}
	return nil
}

// Min is the smallest non-nil distance, nil when all three are nil.
func (d ExpiryDays) Min() *int {
	var min *int
	for _, f := range ExpiryFields {
		v := d.For(f)
		if v != nil && (min == nil || *v < *min) {
			min = v
		}
	}
	if min == nil {
		return nil
	}
	out := *min
	return &out
}

// MinField is the field holding Min, "" when all are nil. Ties go to the earlier field.
func (d ExpiryDays) MinField() ExpiryField {
	var field ExpiryField
	var min *int
	for _, f := range ExpiryFields {
		v := d.For(f)
		if v != nil && (min == nil || *v < *min) {
			min, field = v, f
		}
	}
	return field
}

// AnyWithin reports whether some distance is strictly below window. Overdue
// (negative) distances count.
func (d ExpiryDays) AnyWithin(window int) bool {
	for _, f := range ExpiryFields {
		if v := d.For(f); v != nil && *v < window {
			return true
		}
	}
	return false
}
