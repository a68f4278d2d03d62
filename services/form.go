package services

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"monchai-insurance/models"
	"monchai-insurance/utils"
)

type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

const (
	summaryInvalid = "กรุณาตรวจสอบข้อมูลที่ไฮไลต์และลองอีกครั้ง"
	summaryRenewed = "ไม่สามารถบันทึกสถานะ \"ต่ออายุแล้ว\" ได้ เนื่องจากยังมีวันที่ครบกำหนดอยู่ภายใน 30 วัน"
)

// CustomerForm is the submitted customer form, bound by gin from a urlencoded body.
type CustomerForm struct {
	RowNumber string `form:"rowNumber"`
	Timestamp string `form:"timestamp"`

	CustomerName string `form:"customerName" validate:"required"`
	LicensePlate string `form:"licensePlate" validate:"required"`
	PolicyNumber string `form:"policyNumber"`
	Phone        string `form:"phone" validate:"omitempty,thphone"`
	Email        string `form:"email" validate:"omitempty,email"`

	ActIssuedDate       string `form:"actIssuedDate"`
	ActExpiryDate       string `form:"actExpiryDate"`
	TaxRenewalDate      string `form:"taxRenewalDate"`
	TaxExpiryDate       string `form:"taxExpiryDate"`
	VoluntaryIssuedDate string `form:"voluntaryIssuedDate"`
	VoluntaryExpiryDate string `form:"voluntaryExpiryDate"`
	RegistrationDate    string `form:"registrationDate"`

	Status string `form:"status"`
	Notes  string `form:"notes"`
}

// FormFromCustomer pre-fills an edit form from a stored record.
func FormFromCustomer(c models.Customer) CustomerForm {
	return CustomerForm{
		RowNumber:           strconv.Itoa(c.RowNumber),
		Timestamp:           c.Timestamp,
		CustomerName:        c.CustomerName,
		LicensePlate:        c.LicensePlate,
		PolicyNumber:        c.PolicyNumber,
		Phone:               c.Phone,
		Email:               c.Email,
		ActIssuedDate:       c.Inputs.ActIssuedDate,
		ActExpiryDate:       c.Inputs.ActExpiryDate,
		TaxRenewalDate:      c.Inputs.TaxRenewalDate,
		TaxExpiryDate:       c.Inputs.TaxExpiryDate,
		VoluntaryIssuedDate: c.Inputs.VoluntaryIssuedDate,
		VoluntaryExpiryDate: c.Inputs.VoluntaryExpiryDate,
		RegistrationDate:    c.Inputs.RegistrationDate,
		Status:              c.CanonicalStatus().String(),
		Notes:               c.Notes,
	}
}

// FieldErrors maps a form field name to its message.
type FieldErrors map[string]string

// FormError is returned when a submitted form cannot be saved.
type FormError struct {
	Fields  FieldErrors
	Summary string
}

func (e *FormError) Error() string {
	return fmt.Sprintf("invalid customer form: %d field(s): %s", len(e.Fields), e.Summary)
}

// IsFormError reports whether err is a *FormError and returns it.
func IsFormError(err error) (*FormError, bool) {
	var formErr *FormError
	if errors.As(err, &formErr) {
		return formErr, true
	}
	return nil, false
}

var fieldMessages = map[string]map[string]string{
	"customerName": {"required": "กรุณากรอกชื่อลูกค้า"},
	"licensePlate": {"required": "กรุณากรอกทะเบียนรถ"},
	"phone":        {"thphone": "กรุณากรอกเบอร์โทรศัพท์มือถือ 10 หลักที่ขึ้นต้นด้วย 06, 08 หรือ 09"},
	"email":        {"email": "กรุณากรอกอีเมลให้ถูกต้อง"},
}

type dateField struct {
	name     string
	label    string
	required bool
	value    func(*CustomerForm) *string
}

var dateFields = []dateField{
	{name: "actIssuedDate", label: "วันที่ทำ พ.ร.บ.", value: func(f *CustomerForm) *string { return &f.ActIssuedDate }},
	{name: "actExpiryDate", label: ExpiryAct.Label(), value: func(f *CustomerForm) *string { return &f.ActExpiryDate }},
	{name: "taxRenewalDate", label: "วันที่ต่อภาษี", value: func(f *CustomerForm) *string { return &f.TaxRenewalDate }},
	{name: "taxExpiryDate", label: ExpiryTax.Label(), value: func(f *CustomerForm) *string { return &f.TaxExpiryDate }},
	{name: "voluntaryIssuedDate", label: "วันที่ทำกรมธรรม์ภาคสมัครใจ", value: func(f *CustomerForm) *string { return &f.VoluntaryIssuedDate }},
	{name: "voluntaryExpiryDate", label: ExpiryVoluntary.Label(), value: func(f *CustomerForm) *string { return &f.VoluntaryExpiryDate }},
	{name: "registrationDate", label: "วันที่จดทะเบียน", value: func(f *CustomerForm) *string { return &f.RegistrationDate }},
}

// FormDateField is one date input of the form as the page shows it.
type FormDateField struct {
	Name  string
	Label string
	Value string
	Error string
}

// DateFields lists the date inputs in display order with their messages from errs.
func (f CustomerForm) DateFields(errs FieldErrors) []FormDateField {
	out := make([]FormDateField, 0, len(dateFields))
	for _, df := range dateFields {
		out = append(out, FormDateField{
			Name:  df.name,
			Label: df.label,
			Value: *df.value(&f),
			Error: errs[df.name],
		})
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("thphone", func(fl validator.FieldLevel) bool {
		return utils.ValidatePhone(fl.Field().String())
	})
	return v
}

// ValidateCustomerForm turns a submitted form into a record ready for the
// store. On failure it returns a *FormError together with the cleaned values
// so the form can be shown again.
func ValidateCustomerForm(form CustomerForm, mode FormMode, now time.Time) (models.Customer, error) {
	loc := now.Location()
	form = trimForm(form)
	errs := FieldErrors{}

	status := models.ParseStatus(form.Status)
	form.Status = status.String()
	if form.CustomerName != "" || status == models.StatusNotRenewing {
		form.CustomerName = models.AnnotateName(form.CustomerName, status)
	}

	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Customer{}, fmt.Errorf("validate customer form: %w", err)
		}
		for _, fe := range verrs {
			if msg, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
				errs[fe.Field()] = msg
			} else {
				errs[fe.Field()] = summaryInvalid
			}
		}
	}

	for _, df := range dateFields {
		ptr := df.value(&form)
		*ptr = utils.ToInputDate(*ptr, loc)
		if *ptr == "" && df.required {
			errs[df.name] = "กรุณาเลือก" + df.label
		}
	}

	if phone, ok := utils.NormalizePhone(form.Phone); ok {
		form.Phone = phone
	}

	rowNumber := 0
	if mode == FormEdit {
		n, err := strconv.Atoi(form.RowNumber)
		if err != nil || n < models.FirstDataRow {
			errs["rowNumber"] = "ไม่พบหมายเลขแถวของข้อมูล"
		} else {
			rowNumber = n
		}
	}

	summary := summaryInvalid
	if status == models.StatusRenewed {
		for _, f := range ExpiryFields {
			value := *fieldValue(&form, f)
			days := utils.DaysUntil(value, now)
			if days == nil || *days < 0 || *days >= AlertWindowDays {
				continue
			}
			summary = summaryRenewed
			if _, taken := errs[string(f)]; !taken {
				errs[string(f)] = fmt.Sprintf("%sจะครบกำหนดในอีก %d วัน จึงยังตั้งสถานะ \"ต่ออายุแล้ว\" ไม่ได้", f.Label(), *days)
			}
		}
	}

	customer := models.Customer{
		RowNumber:           rowNumber,
		Timestamp:           form.Timestamp,
		CustomerName:        form.CustomerName,
		LicensePlate:        form.LicensePlate,
		PolicyNumber:        form.PolicyNumber,
		Phone:               form.Phone,
		Email:               form.Email,
		ActIssuedDate:       form.ActIssuedDate,
		ActExpiryDate:       form.ActExpiryDate,
		TaxRenewalDate:      form.TaxRenewalDate,
		TaxExpiryDate:       form.TaxExpiryDate,
		VoluntaryIssuedDate: form.VoluntaryIssuedDate,
		VoluntaryExpiryDate: form.VoluntaryExpiryDate,
		RegistrationDate:    form.RegistrationDate,
		Status:              form.Status,
		Notes:               form.Notes,
	}
	if mode == FormCreate || customer.Timestamp == "" {
		customer.Timestamp = now.UTC().Format(time.RFC3339)
	}
	customer.Inputs = models.InputDatesFor(customer, loc)

	if len(errs) > 0 {
		return customer, &FormError{Fields: errs, Summary: summary}
	}
	return customer, nil
}

func fieldValue(form *CustomerForm, f ExpiryField) *string {
	switch f {
	case ExpiryTax:
		return &form.TaxExpiryDate
	case ExpiryVoluntary:
		return &form.VoluntaryExpiryDate
	}
	return &form.ActExpiryDate
}

func trimForm(f CustomerForm) CustomerForm {
	v := reflect.ValueOf(&f).Elem()
	for i := 0; i < v.NumField(); i++ {
		if field := v.Field(i); field.Kind() == reflect.String {
			field.SetString(strings.TrimSpace(field.String()))
		}
	}
	return f
}
