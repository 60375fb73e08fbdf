package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"stokreport/adapters/excel"
	"stokreport/domain/core"
	"stokreport/domain/sheet"
	"stokreport/internal"
	apperrors "stokreport/internal/errors"
	"stokreport/internal/report"
	"stokreport/internal/testkit"
	"stokreport/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureUploads(t *testing.T, fx testkit.Fixtures) Uploads {
	t.Helper()
	upload := func(name string, build func() ([]byte, error)) Upload {
		data, err := build()
		require.NoError(t, err)
		return Upload{Filename: name, Reader: bytes.NewReader(data)}
	}
	return Uploads{
		Barcode:  upload("barcode.xlsx", fx.BarcodeWorkbook),
		Sales:    upload("sales.xlsx", fx.SalesWorkbook),
		Orders:   upload("orders.xlsx", fx.OrdersWorkbook),
		Template: upload("template.xlsx", fx.TemplateWorkbook),
	}
}

func newTestService(emitter ports.WorkbookEmitter) *ReportService {
	if emitter == nil {
		emitter = excel.NewWorkbookWriter()
	}
	fx := testkit.NewFixtures()
	return NewReportService(
		excel.NewDataReader(excel.DefaultExcelConfig()),
		emitter,
		fx.Schema,
		internal.NewLoggerTo(io.Discard, internal.LogLevelDebug),
	)
}

type panickingEmitter struct{}

func (panickingEmitter) Emit(context.Context, *report.Report) ([]byte, error) {
	panic("boom")
}

type failingReader struct{}

func (failingReader) ReadTable(context.Context, string, io.Reader) (*sheet.Table, error) {
	return nil, core.NewUnreadableWorkbookError("x.xlsx", errors.New("bad zip"))
}

func TestGenerate(t *testing.T) {
	var events []ports.ProgressEvent
	svc := newTestService(nil).WithObserver(ports.ProgressFunc(func(e ports.ProgressEvent) {
		events = append(events, e)
	}))

	res, err := svc.Generate(context.Background(), fixtureUploads(t, testkit.NewFixtures()))
	require.NoError(t, err)

	assert.NotEmpty(t, res.Workbook)
	assert.Equal(t, core.NewHash(res.Workbook), res.Hash)
	assert.False(t, res.RunID.String() == "")
	assert.Equal(t, 1, res.Report.SoldProducts.RowCount())
	assert.Equal(t, 1, res.Report.AllProducts.RowCount())
	// 10 sold over 5 ordered
	assert.Equal(t, 200.0, res.RatioPercent)

	require.Len(t, events, 4)
	var percents []int
	for _, e := range events {
		percents = append(percents, e.Percent)
		assert.Equal(t, res.RunID, e.RunID)
	}
	assert.Equal(t, []int{20, 40, 80, 100}, percents)
	assert.Equal(t, ports.StageWorkbook, events[3].Stage)
}

func TestGenerateMissingInput(t *testing.T) {
	up := fixtureUploads(t, testkit.NewFixtures())
	up.Orders = Upload{Filename: "orders.xlsx"}

	res, err := newTestService(nil).Generate(context.Background(), up)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, apperrors.CodeReportFailed, apperrors.GetCode(err))
	assert.ErrorIs(t, err, core.ErrMissingInput)
	assert.Contains(t, err.Error(), "orders")
}

func TestGenerateUnreadableInput(t *testing.T) {
	var failed []ports.ProgressEvent
	svc := NewReportService(failingReader{}, excel.NewWorkbookWriter(), testkit.NewFixtures().Schema,
		internal.NewLoggerTo(io.Discard, internal.LogLevelError)).
		WithObserver(ports.ProgressFunc(func(e ports.ProgressEvent) {
			if e.Stage == ports.StageFailed {
				failed = append(failed, e)
			}
		}))

	_, err := svc.Generate(context.Background(), fixtureUploads(t, testkit.NewFixtures()))
	require.Error(t, err)
	assert.True(t, core.IsInputError(err))
	assert.Equal(t, apperrors.CodeReportFailed, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "failed to read barcode")
	require.Len(t, failed, 1)
	assert.True(t, strings.Contains(failed[0].Message, "bad zip"))
}

func TestGenerateRecoversPanic(t *testing.T) {
	res, err := newTestService(panickingEmitter{}).Generate(context.Background(), fixtureUploads(t, testkit.NewFixtures()))
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, apperrors.CodeReportFailed, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "panic: boom")

	var inner *apperrors.AppError
	require.ErrorAs(t, errors.Unwrap(err), &inner)
	assert.Equal(t, apperrors.CodeInternalError, inner.Code)
}

func TestGenerateNoOrdersKeepsZeroRatio(t *testing.T) {
	fx := testkit.NewFixtures()
	fx.Orders = nil

	res, err := newTestService(nil).Generate(context.Background(), fixtureUploads(t, fx))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Report.SoldProducts.RowCount())
	assert.Equal(t, 1, res.Report.AllProducts.RowCount())
	assert.Equal(t, 0.0, res.RatioPercent)
}
