package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"monchai-insurance/utils"
)

// FieldAliases lists, per canonical field, the raw keys accepted from the sheet
// or a form. The first key holding a non-empty value wins.
var FieldAliases = map[string][]string{
	"timestamp":           {"timestamp", "Timestamp"},
	"customerName":        {"customerName", "CustomerName", "ชื่อลูกค้า"},
	"licensePlate":        {"licensePlate", "LicensePlate", "ทะเบียนรถ"},
	"policyNumber":        {"policyNumber", "PolicyNumber", "เลขกรมธรรม์"},
	"phone":               {"phone", "Phone", "เบอร์ติดต่อหลัก"},
	"email":               {"email", "Email", "อีเมล"},
	"actIssuedDate":       {"actIssuedDate", "ActIssuedDate", "วันที่ทำ พ.ร.บ."},
	"actExpiryDate":       {"actExpiryDate", "ActExpiryDate", "วันที่ครบกำหนด พ.ร.บ."},
	"taxRenewalDate":      {"taxRenewalDate", "TaxRenewalDate", "วันที่ต่อภาษี"},
	"taxExpiryDate":       {"taxExpiryDate", "TaxExpiryDate", "วันที่ครบกำหนดต่อภาษี"},
	"voluntaryIssuedDate": {"voluntaryIssuedDate", "VoluntaryIssuedDate", "วันที่ทำกรมธรรม์ภาคสมัครใจ"},
	"voluntaryExpiryDate": {"voluntaryExpiryDate", "VoluntaryExpiryDate", "วันที่ครบกำหนดกรมธรรม์ภาคสมัครใจ"},
	"registrationDate":    {"registrationDate", "RegistrationDate", "วันที่จดทะเบียน"},
	"status":              {"status", "Status", "สถานะ"},
	"notes":               {"notes", "Notes", "หมายเหตุ", "บันทึก"},
}

// RowNumberAliases are tried in order for the sheet row identifier.
var RowNumberAliases = []string{"rowNumber", "row", "__rowNumber", "__row"}

// ResolveField returns the first non-empty value among the aliases of field.
func ResolveField(raw map[string]any, field string) string {
	for _, key := range FieldAliases[field] {
		if value := stringify(raw[key]); value != "" {
			return value
		}
	}
	return ""
}

// ResolveRowNumber returns the first alias holding a positive integer,
// falling back to index+2 for the header row offset.
func ResolveRowNumber(raw map[string]any, index int) int {
	for _, key := range RowNumberAliases {
		if row, ok := positiveInt(raw[key]); ok {
			return row
		}
	}
	return index + FirstDataRow
}

// NormalizeRecord maps a raw sheet or form mapping into a Customer. Dates stay
// as stored and their YYYY-MM-DD forms are attached in Inputs.
func NormalizeRecord(raw map[string]any, index int, loc *time.Location) Customer {
	c := Customer{
		RowNumber:           ResolveRowNumber(raw, index),
		Timestamp:           ResolveField(raw, "timestamp"),
		CustomerName:        ResolveField(raw, "customerName"),
		LicensePlate:        ResolveField(raw, "licensePlate"),
		PolicyNumber:        ResolveField(raw, "policyNumber"),
		Phone:               ResolveField(raw, "phone"),
		Email:               ResolveField(raw, "email"),
		ActIssuedDate:       ResolveField(raw, "actIssuedDate"),
		ActExpiryDate:       ResolveField(raw, "actExpiryDate"),
		TaxRenewalDate:      ResolveField(raw, "taxRenewalDate"),
		TaxExpiryDate:       ResolveField(raw, "taxExpiryDate"),
		VoluntaryIssuedDate: ResolveField(raw, "voluntaryIssuedDate"),
		VoluntaryExpiryDate: ResolveField(raw, "voluntaryExpiryDate"),
		RegistrationDate:    ResolveField(raw, "registrationDate"),
		Status:              ResolveField(raw, "status"),
		Notes:               ResolveField(raw, "notes"),
	}
	c.Inputs = InputDatesFor(c, loc)
	return c
}

// InputDatesFor computes the YYYY-MM-DD form of every date on c.
func InputDatesFor(c Customer, loc *time.Location) DateInputs {
	return DateInputs{
		ActIssuedDate:       utils.ToInputDate(c.ActIssuedDate, loc),
		ActExpiryDate:       utils.ToInputDate(c.ActExpiryDate, loc),
		TaxRenewalDate:      utils.ToInputDate(c.TaxRenewalDate, loc),
		TaxExpiryDate:       utils.ToInputDate(c.TaxExpiryDate, loc),
		VoluntaryIssuedDate: utils.ToInputDate(c.VoluntaryIssuedDate, loc),
		VoluntaryExpiryDate: utils.ToInputDate(c.VoluntaryExpiryDate, loc),
		RegistrationDate:    utils.ToInputDate(c.RegistrationDate, loc),
	}
}

// NormalizeRecords normalizes a fetched batch and drops rows with neither name nor plate.
func NormalizeRecords(raws []map[string]any, loc *time.Location) []Customer {
	customers := make([]Customer, 0, len(raws))
	for i, raw := range raws {
		c := NormalizeRecord(raw, i, loc)
		if c.CustomerName == "" && c.LicensePlate == "" {
			continue
		}
		customers = append(customers, c)
	}
	return customers
}

// stringify renders a JSON-decoded value the way a sheet cell reads.
// Falsy values (nil, false, 0, "") become "".
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case bool:
		if !v {
			return ""
		}
		return "true"
	case float64:
		if v == 0 || math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	case int64:
		if v == 0 {
			return ""
		}
		return strconv.FormatInt(v, 10)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func positiveInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v >= 1 && v == math.Trunc(v) {
			return int(v), true
		}
	case int:
		if v >= 1 {
			return v, true
		}
	case int64:
		if v >= 1 {
			return int(v), true
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && n >= 1 {
			return n, true
		}
	}
	return 0, false
}
