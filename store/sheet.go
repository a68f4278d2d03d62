package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"monchai-insurance/models"
)

const maxErrorBody = 4 << 10

// SheetClient talks to the spreadsheet web app that owns the customer rows.
type SheetClient struct {
	dataURL   string
	writeURL  string
	updateURL string
	http      *http.Client
	log       *logrus.Logger
}

type SheetConfig struct {
	DataURL   string
	WriteURL  string
	UpdateURL string
	Timeout   time.Duration
}

func NewSheetClient(cfg SheetConfig, logger *logrus.Logger) *SheetClient {
	updateURL := cfg.UpdateURL
	if updateURL == "" {
		updateURL = cfg.WriteURL
	}
	return &SheetClient{
		dataURL:   cfg.DataURL,
		writeURL:  cfg.WriteURL,
		updateURL: updateURL,
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       logger,
	}
}

type updatePayload struct {
	Action    string             `json:"action"`
	RowNumber int                `json:"rowNumber"`
	Record    models.SheetRecord `json:"record"`
}

type deletePayload struct {
	Action     string `json:"action"`
	RowNumbers []int  `json:"rowNumbers"`
}

// FetchAll returns every raw row. The payload may be {"records": [...]} or a
// bare array; any other shape is treated as no data.
func (s *SheetClient) FetchAll(ctx context.Context) ([]map[string]any, error) {
	if s.dataURL == "" {
		return nil, ErrMissingDataURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.dataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch customers: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read customers: %w", err)
	}
	return decodeRecords(body)
}

func decodeRecords(body []byte) ([]map[string]any, error) {
	var envelope struct {
		Records []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Records == nil {
			return []map[string]any{}, nil
		}
		return envelope.Records, nil
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return rows, nil
}

// Create appends a new row.
func (s *SheetClient) Create(ctx context.Context, c models.Customer) error {
	if s.writeURL == "" {
		s.log.Warn("SHEET_WEBHOOK_URL is not set; skipping sheet sync")
		return &SyncError{Op: "create", Reason: ReasonMissingWriteURL}
	}
	return s.post(ctx, "create", s.writeURL, c.ToSheetRecord())
}

// Update overwrites the row at rowNumber.
func (s *SheetClient) Update(ctx context.Context, rowNumber int, c models.Customer) error {
	if rowNumber < models.FirstDataRow {
		return &SyncError{Op: "update", Reason: ReasonMissingRowNumber}
	}
	if s.updateURL == "" {
		return &SyncError{Op: "update", Reason: ReasonMissingUpdateURL}
	}
	return s.post(ctx, "update", s.updateURL, updatePayload{
		Action:    "update",
		RowNumber: rowNumber,
		Record:    c.ToSheetRecord(),
	})
}

// Delete removes the given rows. Rows above the header only; duplicates collapse.
func (s *SheetClient) Delete(ctx context.Context, rowNumbers []int) error {
	rows := ValidRows(rowNumbers)
	if len(rows) == 0 {
		return &SyncError{Op: "delete", Reason: ReasonNoRows}
	}
	if s.updateURL == "" {
		return &SyncError{Op: "delete", Reason: ReasonMissingUpdateURL}
	}
	return s.post(ctx, "delete", s.updateURL, deletePayload{Action: "delete", RowNumbers: rows})
}

// ValidRows keeps unique rows >= 2 in descending order, so the sheet can
// delete bottom-up without shifting the rows still to go.
func ValidRows(rowNumbers []int) []int {
	seen := make(map[int]bool, len(rowNumbers))
	rows := make([]int, 0, len(rowNumbers))
	for _, row := range rowNumbers {
		if row < models.FirstDataRow || seen[row] {
			continue
		}
		seen[row] = true
		rows = append(rows, row)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rows)))
	return rows
}

func (s *SheetClient) post(ctx context.Context, op, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &SyncError{Op: op, Reason: ReasonException, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &SyncError{Op: op, Reason: ReasonException, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		s.log.WithFields(logrus.Fields{"op": op}).Error("sheet sync error: " + err.Error())
		return &SyncError{Op: op, Reason: ReasonException, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &SyncError{Op: op, Reason: ReasonResponseError, StatusCode: resp.StatusCode, Body: string(text)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
