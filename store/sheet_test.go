package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monchai-insurance/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newClient(dataURL, writeURL, updateURL string) *SheetClient {
	return NewSheetClient(SheetConfig{
		DataURL:   dataURL,
		WriteURL:  writeURL,
		UpdateURL: updateURL,
		Timeout:   2 * time.Second,
	}, quietLogger())
}

func TestFetchAll_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "records envelope", body: `{"records":[{"customerName":"A"},{"customerName":"B"}]}`, want: 2},
		{name: "bare array", body: `[{"customerName":"A"}]`, want: 1},
		{name: "object without records", body: `{"ok":true}`, want: 0},
		{name: "not json", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			rows, err := newClient(srv.URL, "", "").FetchAll(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.want)
		})
	}
}

func TestFetchAll_Failures(t *testing.T) {
	_, err := newClient("", "", "").FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrMissingDataURL)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err = newClient(srv.URL, "", "").FetchAll(context.Background())
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	err := newClient("", srv.URL, "").Create(context.Background(), models.Customer{
		CustomerName: "Somchai",
		LicensePlate: "1กก-1234",
		Status:       "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Somchai", got["customerName"])
	assert.Equal(t, "NOT_NOTIFIED", got["status"])
	assert.Nil(t, got["actExpiryDate"])
}

func TestCreate_MissingURL(t *testing.T) {
	err := newClient("", "", "").Create(context.Background(), models.Customer{})
	assert.Equal(t, ReasonMissingWriteURL, ReasonOf(err))
}

func TestUpdate(t *testing.T) {
	var got updatePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	// update url falls back to the write url
	client := newClient("", srv.URL, "")
	require.NoError(t, client.Update(context.Background(), 5, models.Customer{CustomerName: "A", Status: "4"}))
	assert.Equal(t, "update", got.Action)
	assert.Equal(t, 5, got.RowNumber)
	assert.Equal(t, "RENEWED", got.Record.Status)
}

func TestUpdate_Reasons(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "sheet locked")
	}))
	defer failing.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name   string
		client *SheetClient
		row    int
		want   Reason
	}{
		{name: "missing row wins over missing url", client: newClient("", "", ""), row: 0, want: ReasonMissingRowNumber},
		{name: "header row is not a record", client: newClient("", failing.URL, ""), row: 1, want: ReasonMissingRowNumber},
		{name: "missing update url", client: newClient("", "", ""), row: 3, want: ReasonMissingUpdateURL},
		{name: "non 2xx response", client: newClient("", "", failing.URL), row: 3, want: ReasonResponseError},
		{name: "transport failure", client: newClient("", "", closedURL), row: 3, want: ReasonException},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Update(context.Background(), tt.row, models.Customer{})
			require.Error(t, err)
			assert.Equal(t, tt.want, ReasonOf(err))
		})
	}

	err := newClient("", "", failing.URL).Update(context.Background(), 3, models.Customer{})
	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, http.StatusInternalServerError, syncErr.StatusCode)
	assert.Equal(t, "sheet locked", syncErr.Body)
}

func TestDelete(t *testing.T) {
	var got deletePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	client := newClient("", "", srv.URL)
	require.NoError(t, client.Delete(context.Background(), []int{3, 1, 7, 3, 0}))
	assert.Equal(t, "delete", got.Action)
	assert.Equal(t, []int{7, 3}, got.RowNumbers)

	err := client.Delete(context.Background(), []int{0, 1})
	assert.Equal(t, ReasonNoRows, ReasonOf(err))
}
