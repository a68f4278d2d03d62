package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"monchai-insurance/config"
	"monchai-insurance/models"
	"monchai-insurance/services"
)

// CustomerController serves the customer pages.
type CustomerController struct {
	Customers  *services.CustomerService
	WindowDays int
	Log        *logrus.Logger
}

type formPage struct {
	heading string
	lead    string
	action  string
	submit  string
	active  string
	edit    bool
}

var (
	createPage = formPage{
		heading: "เพิ่มลูกค้าใหม่",
		lead:    "บันทึกข้อมูลลูกค้าเพื่อเตรียมการติดต่อแจ้งต่ออายุและงานเอกสารต่าง ๆ",
		action:  "/customers",
		submit:  "บันทึกข้อมูลลูกค้า",
		active:  "new",
	}
	editPage = formPage{
		heading: "แก้ไขข้อมูลลูกค้า",
		lead:    "อัปเดตข้อมูลเพื่อติดตามงานต่ออายุและแจ้งเตือนได้อย่างแม่นยำ",
		action:  "/customers/update",
		submit:  "บันทึกการแก้ไข",
		active:  "search",
		edit:    true,
	}
)

func formData(p formPage, form services.CustomerForm, errs services.FieldErrors) gin.H {
	if errs == nil {
		errs = services.FieldErrors{}
	}
	if form.Status == "" {
		form.Status = models.StatusNotNotified.String()
	}
	data := page(p.heading, p.active)
	data["Heading"] = p.heading
	data["Lead"] = p.lead
	data["Action"] = p.action
	data["Submit"] = p.submit
	data["Edit"] = p.edit
	data["Form"] = form
	data["Errors"] = errs
	data["DateFields"] = form.DateFields(errs)
	data["Statuses"] = models.AllStatuses
	return data
}

// NewCustomer shows the empty create form.
func (cc *CustomerController) NewCustomer(c *gin.Context) {
	c.HTML(http.StatusOK, "customer_form.html", formData(createPage, services.CustomerForm{}, nil))
}

// CreateCustomer validates the form and sends the record to the sheet.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var form services.CustomerForm
	if err := c.ShouldBind(&form); err != nil {
		RenderMessage(c, http.StatusBadRequest, "ข้อมูลไม่ถูกต้อง", "ไม่สามารถอ่านข้อมูลที่ส่งมาได้")
		return
	}

	res, err := cc.Customers.Create(c.Request.Context(), form)
	if formErr, ok := services.IsFormError(err); ok {
		data := formData(createPage, services.FormFromCustomer(res.Customer), formErr.Fields)
		data["Message"] = formErr.Summary
		data["MessageStatus"] = "error"
		c.HTML(http.StatusBadRequest, "customer_form.html", data)
		return
	}
	if err != nil {
		config.LogError(cc.Log, "customer", "CreateCustomer", "create customer", nil, err)
		InternalError(c, err)
		return
	}

	data := formData(createPage, services.CustomerForm{}, nil)
	data["Message"] = "บันทึกข้อมูลลูกค้าเรียบร้อยแล้ว"
	data["MessageStatus"] = "success"
	data["SyncWarning"] = syncWarning(res.SyncErr)
	c.HTML(http.StatusOK, "customer_form.html", data)
}

// EditCustomer shows the edit form of ?row=.
func (cc *CustomerController) EditCustomer(c *gin.Context) {
	row, _ := strconv.Atoi(c.Query("row"))
	customer, err := cc.Customers.Find(c.Request.Context(), row)
	if errors.Is(err, services.ErrCustomerNotFound) {
		RenderMessage(c, http.StatusNotFound, "ไม่พบข้อมูล", "ไม่พบลูกค้าที่ต้องการแก้ไข")
		return
	}
	if err != nil {
		InternalError(c, err)
		return
	}
	c.HTML(http.StatusOK, "customer_form.html", formData(editPage, services.FormFromCustomer(customer), nil))
}

func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	var form services.CustomerForm
	if err := c.ShouldBind(&form); err != nil {
		RenderMessage(c, http.StatusBadRequest, "ข้อมูลไม่ถูกต้อง", "ไม่สามารถอ่านข้อมูลที่ส่งมาได้")
		return
	}

	res, err := cc.Customers.Update(c.Request.Context(), form)
	if formErr, ok := services.IsFormError(err); ok {
		prior := services.FormFromCustomer(res.Customer)
		prior.RowNumber = form.RowNumber
		data := formData(editPage, prior, formErr.Fields)
		data["Message"] = formErr.Summary
		data["MessageStatus"] = "error"
		c.HTML(http.StatusBadRequest, "customer_form.html", data)
		return
	}
	if err != nil {
		config.LogError(cc.Log, "customer", "UpdateCustomer", "update customer", form.RowNumber, err)
		InternalError(c, err)
		return
	}

	data := formData(editPage, services.FormFromCustomer(res.Customer), nil)
	data["Message"] = "บันทึกการแก้ไขเรียบร้อยแล้ว"
	data["MessageStatus"] = "success"
	data["SyncWarning"] = syncWarning(res.SyncErr)
	c.HTML(http.StatusOK, "customer_form.html", data)
}

func (cc *CustomerController) SearchCustomers(c *gin.Context) {
	cc.renderSearch(c, http.StatusOK, c.Query("q"), "", "")
}

// DeleteCustomers removes the checked rows and shows the refreshed list.
func (cc *CustomerController) DeleteCustomers(c *gin.Context) {
	var rows []int
	for _, raw := range c.PostFormArray("rowNumbers") {
		if n, err := strconv.Atoi(raw); err == nil {
			rows = append(rows, n)
		}
	}
	if len(rows) == 0 {
		cc.renderSearch(c, http.StatusBadRequest, "", "กรุณาเลือกรายการที่ต้องการลบ", "error")
		return
	}

	if err := cc.Customers.Delete(c.Request.Context(), rows); err != nil {
		data := cc.searchData(c, "")
		data["SyncWarning"] = "ลบข้อมูลจาก Google Sheet ไม่สำเร็จ"
		c.HTML(http.StatusOK, "search.html", data)
		return
	}
	cc.renderSearch(c, http.StatusOK, "", "ลบข้อมูลลูกค้าเรียบร้อยแล้ว", "success")
}

func (cc *CustomerController) renderSearch(c *gin.Context, code int, q, message, status string) {
	data := cc.searchData(c, q)
	data["Message"] = message
	data["MessageStatus"] = status
	c.HTML(code, "search.html", data)
}

func (cc *CustomerController) searchData(c *gin.Context, q string) gin.H {
	result := cc.Customers.Search(c.Request.Context(), q)
	data := page("ค้นหาลูกค้า", "search")
	data["Query"] = result.Query
	data["Results"] = result.Results
	data["Total"] = result.Total
	return data
}

// ExpiringCustomers shows the due list; rendering waits for every status write-back.
func (cc *CustomerController) ExpiringCustomers(c *gin.Context) {
	days := windowDays(c, cc.WindowDays)
	report := cc.Customers.Due(c.Request.Context(), days)

	data := page("แจ้งเตือนลูกค้าที่จะหมดอายุ", "expiring")
	data["Days"] = days
	data["Items"] = report.Items
	c.HTML(http.StatusOK, "expiring.html", data)
}
