package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"monchai-insurance/models"
	"monchai-insurance/store"
)

const DefaultWriteBackConcurrency = 8

// RecordSink is the write side of the customer store.
type RecordSink interface {
	Create(ctx context.Context, c models.Customer) error
	Update(ctx context.Context, rowNumber int, c models.Customer) error
	Delete(ctx context.Context, rowNumbers []int) error
}

type WriteBack struct {
	RowNumber int
	Customer  models.Customer
}

type WriteBackOutcome struct {
	RowNumber int
	Err       error
}

// WriteBackDispatcher pushes reconciled records back to the store with
// bounded concurrency. Every write is awaited and none of them fails the batch.
type WriteBackDispatcher struct {
	sink    RecordSink
	journal *Journal
	limit   int
	log     *logrus.Logger
}

func NewWriteBackDispatcher(sink RecordSink, journal *Journal, limit int, logger *logrus.Logger) *WriteBackDispatcher {
	if limit <= 0 {
		limit = DefaultWriteBackConcurrency
	}
	return &WriteBackDispatcher{sink: sink, journal: journal, limit: limit, log: logger}
}

// Dispatch issues every write and returns once all of them settled, in input
// order. Cancelling ctx does not abort writes already queued.
func (d *WriteBackDispatcher) Dispatch(ctx context.Context, runID string, writes []WriteBack) []WriteBackOutcome {
	if len(writes) == 0 {
		return nil
	}
	ctx = context.WithoutCancel(ctx)

	outcomes := make([]WriteBackOutcome, len(writes))
	var g errgroup.Group
	g.SetLimit(d.limit)
	for i, w := range writes {
		g.Go(func() error {
			err := d.sink.Update(ctx, w.RowNumber, w.Customer)
			outcomes[i] = WriteBackOutcome{RowNumber: w.RowNumber, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		entry := d.log.WithFields(logrus.Fields{"runId": runID, "rowNumber": o.RowNumber})
		if o.Err != nil {
			failed++
			entry.WithField("reason", store.ReasonOf(o.Err)).WithError(o.Err).Warn("status write-back failed")
		} else {
			entry.Debug("status write-back done")
		}
		d.journal.RecordSync(ctx, runID, "reconcile", o.RowNumber, o.Err)
	}
	d.log.WithFields(logrus.Fields{"runId": runID, "total": len(outcomes), "failed": failed}).Info("status write-backs settled")
	return outcomes
}
