package models

import "strings"

const (
	// NotRenewingMarker is carried at the end of the display name of every
	// NOT_RENEWING customer. It is derived from the status, never set on its own.
	NotRenewingMarker = "(ลูกค้าไม่ต่อ)"
	notRenewingSuffix = " " + NotRenewingMarker

	// DefaultCustomerName stands in for an empty name when the marker has to be attached.
	DefaultCustomerName = "ลูกค้า"

	// FirstDataRow is the first sheet row holding a record (row 1 is the header).
	FirstDataRow = 2
)

// Customer is one row of the customer sheet. Dates are kept as stored;
// Inputs carries their YYYY-MM-DD forms for the presentation layer.
type Customer struct {
	RowNumber int    `json:"rowNumber,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`

	CustomerName string `json:"customerName"`
	LicensePlate string `json:"licensePlate"`
	PolicyNumber string `json:"policyNumber"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`

	ActIssuedDate       string `json:"actIssuedDate"`
	ActExpiryDate       string `json:"actExpiryDate"`
	TaxRenewalDate      string `json:"taxRenewalDate"`
	TaxExpiryDate       string `json:"taxExpiryDate"`
	VoluntaryIssuedDate string `json:"voluntaryIssuedDate"`
	VoluntaryExpiryDate string `json:"voluntaryExpiryDate"`
	RegistrationDate    string `json:"registrationDate"`

	Status string `json:"status"`
	Notes  string `json:"notes"`

	Inputs DateInputs `json:"-"`
}

// DateInputs holds the strict YYYY-MM-DD form of each date ("" when absent).
type DateInputs struct {
	ActIssuedDate       string
	ActExpiryDate       string
	TaxRenewalDate      string
	TaxExpiryDate       string
	VoluntaryIssuedDate string
	VoluntaryExpiryDate string
	RegistrationDate    string
}

// IsSaved reports whether the store has assigned a row to the record.
func (c Customer) IsSaved() bool {
	return c.RowNumber >= FirstDataRow
}

// CanonicalStatus resolves the stored status through the alias table.
func (c Customer) CanonicalStatus() Status {
	return ParseStatus(c.Status)
}

// HasNotRenewingMarker reports whether name ends with the marker, ignoring trailing spaces.
func HasNotRenewingMarker(name string) bool {
	return strings.HasSuffix(strings.TrimRight(name, " \t\r\n"), NotRenewingMarker)
}

// AnnotateName derives the display name for status: NOT_RENEWING names end
// with exactly one marker, every other status has all markers removed.
func AnnotateName(name string, status Status) string {
	trimmed := strings.TrimRight(name, " \t\r\n")
	if status == StatusNotRenewing {
		if HasNotRenewingMarker(trimmed) && !HasNotRenewingMarker(stripMarkerOnce(trimmed)) {
			return trimmed
		}
		base := stripMarkers(trimmed)
		if base == "" {
			base = DefaultCustomerName
		}
		return base + notRenewingSuffix
	}
	if HasNotRenewingMarker(trimmed) {
		return stripMarkers(trimmed)
	}
	return name
}

func stripMarkerOnce(name string) string {
	return strings.TrimRight(strings.TrimSuffix(strings.TrimRight(name, " \t\r\n"), NotRenewingMarker), " \t\r\n")
}

func stripMarkers(name string) string {
	for HasNotRenewingMarker(name) {
		name = stripMarkerOnce(name)
	}
	return name
}

// SheetRecord is the JSON shape written to the sheet. Absent dates and notes travel as null.
type SheetRecord struct {
	Timestamp           string  `json:"timestamp"`
	CustomerName        string  `json:"customerName"`
	LicensePlate        string  `json:"licensePlate"`
	PolicyNumber        *string `json:"policyNumber"`
	Phone               string  `json:"phone"`
	Email               *string `json:"email"`
	ActIssuedDate       *string `json:"actIssuedDate"`
	ActExpiryDate       *string `json:"actExpiryDate"`
	TaxRenewalDate      *string `json:"taxRenewalDate"`
	TaxExpiryDate       *string `json:"taxExpiryDate"`
	VoluntaryIssuedDate *string `json:"voluntaryIssuedDate"`
	VoluntaryExpiryDate *string `json:"voluntaryExpiryDate"`
	RegistrationDate    *string `json:"registrationDate"`
	Status              string  `json:"status"`
	Notes               *string `json:"notes"`
}

// ToSheetRecord converts c into its wire form with the status canonicalized.
func (c Customer) ToSheetRecord() SheetRecord {
	return SheetRecord{
		Timestamp:           c.Timestamp,
		CustomerName:        c.CustomerName,
		LicensePlate:        c.LicensePlate,
		PolicyNumber:        nullable(c.PolicyNumber),
		Phone:               c.Phone,
		Email:               nullable(c.Email),
		ActIssuedDate:       nullable(c.ActIssuedDate),
		ActExpiryDate:       nullable(c.ActExpiryDate),
		TaxRenewalDate:      nullable(c.TaxRenewalDate),
		TaxExpiryDate:       nullable(c.TaxExpiryDate),
		VoluntaryIssuedDate: nullable(c.VoluntaryIssuedDate),
		VoluntaryExpiryDate: nullable(c.VoluntaryExpiryDate),
		RegistrationDate:    nullable(c.RegistrationDate),
		Status:              c.CanonicalStatus().String(),
		Notes:               nullable(c.Notes),
	}
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
