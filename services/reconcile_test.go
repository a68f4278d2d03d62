package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"monchai-insurance/models"
)

func TestExpiryDaysFor(t *testing.T) {
	c := models.Customer{
		ActExpiryDate:       dateIn(10),
		TaxExpiryDate:       dateIn(-3),
		VoluntaryExpiryDate: "not a date",
	}
	days := ExpiryDaysFor(c, fixedNow)

	assert.Equal(t, 10, *days.Act)
	assert.Equal(t, -3, *days.Tax)
	assert.Nil(t, days.Voluntary)
	assert.Equal(t, -3, *days.Min())
	assert.Equal(t, ExpiryTax, days.MinField())
	assert.True(t, days.AnyWithin(1))

	empty := ExpiryDaysFor(models.Customer{}, fixedNow)
	assert.Nil(t, empty.Min())
	assert.Equal(t, ExpiryField(""), empty.MinField())
	assert.False(t, empty.AnyWithin(365))
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		customer   models.Customer
		wantStatus models.Status
		wantName   string
		wantWrite  bool
		downgraded bool
	}{
		{
			name:       "legacy code is rewritten as its label",
			customer:   models.Customer{CustomerName: "Somchai", Status: "1", ActExpiryDate: dateIn(10)},
			wantStatus: models.StatusNotNotified,
			wantName:   "Somchai",
			wantWrite:  true,
		},
		{
			name:       "empty status becomes not notified",
			customer:   models.Customer{CustomerName: "A", ActExpiryDate: dateIn(100)},
			wantStatus: models.StatusNotNotified,
			wantName:   "A",
			wantWrite:  true,
		},
		{
			name:       "canonical label needs nothing",
			customer:   models.Customer{CustomerName: "A", Status: "IN_PROGRESS", ActExpiryDate: dateIn(3)},
			wantStatus: models.StatusInProgress,
			wantName:   "A",
		},
		{
			name:       "renewed with an expiry inside the window is downgraded",
			customer:   models.Customer{CustomerName: "A", Status: "RENEWED", ActExpiryDate: dateIn(400), TaxExpiryDate: dateIn(5)},
			wantStatus: models.StatusInProgress,
			wantName:   "A",
			wantWrite:  true,
			downgraded: true,
		},
		{
			name:       "renewed and overdue is downgraded",
			customer:   models.Customer{CustomerName: "A", Status: "4", VoluntaryExpiryDate: dateIn(-2)},
			wantStatus: models.StatusInProgress,
			wantName:   "A",
			wantWrite:  true,
			downgraded: true,
		},
		{
			name:       "renewed with every expiry far out stays",
			customer:   models.Customer{CustomerName: "A", Status: "RENEWED", ActExpiryDate: dateIn(30)},
			wantStatus: models.StatusRenewed,
			wantName:   "A",
		},
		{
			name:       "not renewing gets the marker",
			customer:   models.Customer{CustomerName: "Somchai", Status: "NOT_RENEWING"},
			wantStatus: models.StatusNotRenewing,
			wantName:   "Somchai (ลูกค้าไม่ต่อ)",
			wantWrite:  true,
		},
		{
			name:       "marker is not appended twice",
			customer:   models.Customer{CustomerName: "Somchai (ลูกค้าไม่ต่อ)", Status: "NOT_RENEWING"},
			wantStatus: models.StatusNotRenewing,
			wantName:   "Somchai (ลูกค้าไม่ต่อ)",
		},
		{
			name:       "marker is dropped when the customer renews after all",
			customer:   models.Customer{CustomerName: "Somchai (ลูกค้าไม่ต่อ)", Status: "IN_PROGRESS"},
			wantStatus: models.StatusInProgress,
			wantName:   "Somchai",
			wantWrite:  true,
		},
		{
			name:       "every repeated marker is dropped in one pass",
			customer:   models.Customer{CustomerName: "Somchai (ลูกค้าไม่ต่อ) (ลูกค้าไม่ต่อ)", Status: "IN_PROGRESS"},
			wantStatus: models.StatusInProgress,
			wantName:   "Somchai",
			wantWrite:  true,
		},
		{
			name:       "repeated markers collapse to one for not renewing",
			customer:   models.Customer{CustomerName: "Somchai (ลูกค้าไม่ต่อ) (ลูกค้าไม่ต่อ)", Status: "NOT_RENEWING"},
			wantStatus: models.StatusNotRenewing,
			wantName:   "Somchai (ลูกค้าไม่ต่อ)",
			wantWrite:  true,
		},
		{
			name:       "empty name with not renewing gets the default name",
			customer:   models.Customer{Status: "3"},
			wantStatus: models.StatusNotRenewing,
			wantName:   "ลูกค้า (ลูกค้าไม่ต่อ)",
			wantWrite:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reconcile(tt.customer, ExpiryDaysFor(tt.customer, fixedNow))

			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, tt.wantStatus.String(), r.Customer.Status)
			assert.Equal(t, tt.wantName, r.Customer.CustomerName)
			assert.Equal(t, tt.wantWrite, r.NeedsWriteBack)
			assert.Equal(t, tt.downgraded, r.Downgraded)
			assert.Equal(t, tt.customer.Status, r.StoredStatus)

			again := Reconcile(r.Customer, ExpiryDaysFor(r.Customer, fixedNow))
			assert.False(t, again.NeedsWriteBack, "second pass must be a no-op")
			assert.Equal(t, r.Customer, again.Customer)
		})
	}
}
