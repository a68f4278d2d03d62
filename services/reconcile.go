package services

import "monchai-insurance/models"

// Reconciliation is the outcome of correcting one customer's status and name.
type Reconciliation struct {
	Customer models.Customer

	StoredStatus string
	Canonical    models.Status
	Status       models.Status

	Downgraded     bool
	NeedsWriteBack bool
}

// Reconcile derives the status and display name a customer should carry given
// its expiry distances:
//   - the stored status goes through the alias table (unknown -> NOT_NOTIFIED);
//   - RENEWED drops to IN_PROGRESS while any expiry is inside the alert window,
//     overdue included;
//   - the not-renewing marker is attached or removed to match the final status.
//
// A write-back is needed when the stored status is not already the canonical
// label or when status or name changed. Reconcile is idempotent.
func Reconcile(c models.Customer, days ExpiryDays) Reconciliation {
	canonical := models.ParseStatus(c.Status)

	final := canonical
	downgraded := false
	if canonical == models.StatusRenewed && days.AnyWithin(AlertWindowDays) {
		final = models.StatusInProgress
		downgraded = true
	}

	name := models.AnnotateName(c.CustomerName, final)

	corrected := c
	corrected.Status = final.String()
	corrected.CustomerName = name

	return Reconciliation{
		Customer:       corrected,
		StoredStatus:   c.Status,
		Canonical:      canonical,
		Status:         final,
		Downgraded:     downgraded,
		NeedsWriteBack: c.Status != canonical.String() || canonical != final || name != c.CustomerName,
	}
}
