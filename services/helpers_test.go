package services

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"monchai-insurance/config"
	"monchai-insurance/models"
	"monchai-insurance/store"
)

var ict = time.FixedZone("ICT", 7*3600)

// fixedNow is 1 May 2024, mid-morning in Bangkok.
var fixedNow = time.Date(2024, time.May, 1, 10, 30, 0, 0, ict)

func dateIn(days int) string {
	return fixedNow.AddDate(0, 0, days).Format("2006-01-02")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func openJournal(t *testing.T) (*Journal, *gorm.DB) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, config.MigrateJournal(db))
	return NewJournal(db, quietLogger()), db
}

type update struct {
	Row      int
	Customer models.Customer
}

// fakeStore is an in-memory sheet.
type fakeStore struct {
	mu        sync.Mutex
	rows      []map[string]any
	fetchErr  error
	writeErr  error
	failRows  map[int]bool
	created   []models.Customer
	updates   []update
	deleted   [][]int
	inFlight  int
	maxFlight int
}

func (f *fakeStore) FetchAll(context.Context) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows, f.fetchErr
}

func (f *fakeStore) Create(_ context.Context, c models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, c)
	return f.writeErr
}

func (f *fakeStore) Update(_ context.Context, row int, c models.Customer) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxFlight {
		f.maxFlight = f.inFlight
	}
	f.mu.Unlock()

	time.Sleep(time.Millisecond)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	f.updates = append(f.updates, update{Row: row, Customer: c})
	if f.failRows[row] {
		return &store.SyncError{Op: "update", Reason: store.ReasonResponseError, StatusCode: 500}
	}
	return f.writeErr
}

func (f *fakeStore) Delete(_ context.Context, rows []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, rows)
	return f.writeErr
}

func (f *fakeStore) updatedRows() map[int]models.Customer {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int]models.Customer{}
	for _, u := range f.updates {
		out[u.Row] = u.Customer
	}
	return out
}

func newService(st *fakeStore, journal *Journal) *CustomerService {
	return NewCustomerService(st, journal, quietLogger(), CustomerServiceOptions{
		Location: ict,
		Now:      func() time.Time { return fixedNow },
	})
}
