package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"monchai-insurance/config"
	"monchai-insurance/models"
)

var ErrCustomerNotFound = errors.New("customer not found")

// RecordProvider is the read side of the customer store.
type RecordProvider interface {
	FetchAll(ctx context.Context) ([]map[string]any, error)
}

// RecordStore is a store that can be read and written.
type RecordStore interface {
	RecordProvider
	RecordSink
}

type CustomerServiceOptions struct {
	Location             *time.Location
	WriteBackConcurrency int
	Now                  func() time.Time
}

type CustomerService struct {
	store      RecordStore
	journal    *Journal
	writeBacks *WriteBackDispatcher
	loc        *time.Location
	now        func() time.Time
	log        *logrus.Logger
}

func NewCustomerService(store RecordStore, journal *Journal, logger *logrus.Logger, opts CustomerServiceOptions) *CustomerService {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &CustomerService{
		store:      store,
		journal:    journal,
		writeBacks: NewWriteBackDispatcher(store, journal, opts.WriteBackConcurrency, logger),
		loc:        loc,
		now:        now,
		log:        logger,
	}
}

// Now is the service clock in the configured timezone.
func (s *CustomerService) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *CustomerService) Location() *time.Location {
	return s.loc
}

// Customers fetches and normalizes every record. A failing store reads as empty.
func (s *CustomerService) Customers(ctx context.Context) []models.Customer {
	raws, err := s.store.FetchAll(ctx)
	if err != nil {
		config.LogError(s.log, "customer_service", "Customers", "fetch records", nil, err)
		return []models.Customer{}
	}
	return models.NormalizeRecords(raws, s.loc)
}

type SearchResult struct {
	Query   string
	Results []models.Customer
	Total   int
}

// Search matches q case-insensitively against name, plate, policy number and phone.
func (s *CustomerService) Search(ctx context.Context, q string) SearchResult {
	customers := s.Customers(ctx)
	q = strings.TrimSpace(q)
	result := SearchResult{Query: q, Total: len(customers)}
	if q == "" {
		result.Results = customers
		return result
	}

	needle := strings.ToLower(q)
	for _, c := range customers {
		for _, hay := range []string{c.CustomerName, c.LicensePlate, c.PolicyNumber, c.Phone} {
			if strings.Contains(strings.ToLower(hay), needle) {
				result.Results = append(result.Results, c)
				break
			}
		}
	}
	return result
}

func (s *CustomerService) Find(ctx context.Context, rowNumber int) (models.Customer, error) {
	if rowNumber < models.FirstDataRow {
		return models.Customer{}, ErrCustomerNotFound
	}
	for _, c := range s.Customers(ctx) {
		if c.RowNumber == rowNumber {
			return c, nil
		}
	}
	return models.Customer{}, ErrCustomerNotFound
}

type DueReport struct {
	RunID       string
	WindowDays  int
	GeneratedAt time.Time
	Items       []DueItem
	WriteBacks  int
	Failed      int
}

// Due builds the due list: select within windowDays, reconcile each selected
// customer, write corrections back and drop NOT_RENEWING customers. It waits
// for every write-back and never fails because of one.
func (s *CustomerService) Due(ctx context.Context, windowDays int) DueReport {
	now := s.Now()
	report := DueReport{
		RunID:       uuid.NewString(),
		WindowDays:  windowDays,
		GeneratedAt: now,
		Items:       []DueItem{},
	}

	var writes []WriteBack
	for _, item := range SelectDue(s.Customers(ctx), windowDays, now) {
		r := Reconcile(item.Customer, item.Days)
		item.Customer = r.Customer
		item.Status = r.Status
		if r.NeedsWriteBack && r.Customer.IsSaved() {
			writes = append(writes, WriteBack{RowNumber: r.Customer.RowNumber, Customer: r.Customer})
		}
		if r.Status == models.StatusNotRenewing {
			continue
		}
		report.Items = append(report.Items, item)
	}

	for _, o := range s.writeBacks.Dispatch(ctx, report.RunID, writes) {
		report.WriteBacks++
		if o.Err != nil {
			report.Failed++
		}
	}
	return report
}

// SaveResult carries the saved record and the store outcome. A non-nil
// SyncErr means the form was valid but the sheet did not take it.
type SaveResult struct {
	Customer models.Customer
	SyncErr  error
}

func (s *CustomerService) Create(ctx context.Context, form CustomerForm) (SaveResult, error) {
	customer, err := ValidateCustomerForm(form, FormCreate, s.Now())
	if err != nil {
		return SaveResult{Customer: customer}, err
	}
	syncErr := s.store.Create(ctx, customer)
	s.recordWrite(ctx, "create", 0, customer.LicensePlate, syncErr)
	return SaveResult{Customer: customer, SyncErr: syncErr}, nil
}

func (s *CustomerService) Update(ctx context.Context, form CustomerForm) (SaveResult, error) {
	customer, err := ValidateCustomerForm(form, FormEdit, s.Now())
	if err != nil {
		return SaveResult{Customer: customer}, err
	}
	syncErr := s.store.Update(ctx, customer.RowNumber, customer)
	s.recordWrite(ctx, "update", customer.RowNumber, customer.LicensePlate, syncErr)
	return SaveResult{Customer: customer, SyncErr: syncErr}, nil
}

// Delete removes the given rows. The returned error is the store outcome only.
func (s *CustomerService) Delete(ctx context.Context, rowNumbers []int) error {
	err := s.store.Delete(ctx, rowNumbers)
	runID := uuid.NewString()
	for _, row := range rowNumbers {
		if row >= models.FirstDataRow {
			s.journal.RecordSync(ctx, runID, "delete", row, err)
		}
	}
	if err != nil {
		s.log.WithField("rowNumbers", rowNumbers).WithError(err).Warn("sheet delete failed")
	}
	return err
}

func (s *CustomerService) recordWrite(ctx context.Context, op string, rowNumber int, plate string, err error) {
	s.journal.RecordSync(ctx, uuid.NewString(), op, rowNumber, err)
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": op, "rowNumber": rowNumber, "licensePlate": plate}).
			WithError(err).Warn("sheet write failed")
	}
}
