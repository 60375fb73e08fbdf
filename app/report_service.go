package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"stokreport/domain/core"
	"stokreport/domain/sheet"
	"stokreport/internal"
	apperrors "stokreport/internal/errors"
	"stokreport/internal/report"
	"stokreport/internal/schema"
	"stokreport/ports"

	"github.com/montanaflynn/stats"
)

// Upload is one named input stream
type Upload struct {
	Filename string
	Reader   io.Reader
}

// Uploads are the four inputs of a report run
type Uploads struct {
	Barcode  Upload
	Sales    Upload
	Orders   Upload
	Template Upload
}

// ReportResult is the outcome of a successful run
type ReportResult struct {
	RunID    core.RunID
	Report   *report.Report
	Workbook []byte
	Hash     core.Hash

	// RatioPercent is the whole-catalog efficiency ratio, rounded to two places
	RatioPercent float64
}

// ReportService turns the four uploaded spreadsheets into the stock report workbook
type ReportService struct {
	reader   ports.TableReader
	emitter  ports.WorkbookEmitter
	schema   schema.Schema
	logger   *internal.Logger
	observer ports.ProgressObserver
}

// NewReportService creates a report service
func NewReportService(reader ports.TableReader, emitter ports.WorkbookEmitter, s schema.Schema, logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{
		reader:  reader,
		emitter: emitter,
		schema:  s,
		logger:  logger,
	}
}

// WithObserver registers a progress observer for subsequent runs
func (s *ReportService) WithObserver(observer ports.ProgressObserver) *ReportService {
	s.observer = observer
	return s
}

// Generate runs the whole pipeline. Any failure, including a panic in a
// stage, is returned as a REPORT_FAILED error and no workbook is produced.
func (s *ReportService) Generate(ctx context.Context, up Uploads) (result *ReportResult, err error) {
	runID := core.NewRunID()
	logger := s.logger.With("run", runID.Short())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err = apperrors.InternalError(fmt.Sprintf("panic: %v", r))
		}
		if err != nil {
			result = nil
			err = apperrors.ReportFailed(err)
			logger.Error("report failed after %s: %v", time.Since(start).Round(time.Millisecond), err)
			s.progress(runID, ports.StageFailed, 100, err.Error())
		}
	}()

	// Step 1: read the four sources
	in, err := s.readInputs(ctx, up)
	if err != nil {
		return nil, err
	}
	logger.Info("inputs read: barcode=%d sales=%d orders=%d template columns=%d",
		in.Barcode.RowCount(), in.Sales.RowCount(), in.Orders.RowCount(), len(in.Columns()))
	s.progress(runID, ports.StageRead, 20, "files read")

	// Step 2: index the catalog and sales, sum the orders
	lk := report.BuildLookups(in, s.schema)
	logger.Debug("lookups built: barcode=%d sales=%d order codes=%d", lk.Barcode.Len(), lk.Sales.Len(), lk.Orders.Len())
	s.progress(runID, ports.StageLookups, 40, "lookups built")

	// Step 3: project both reports and build the summary
	sold := report.SoldProducts(in, lk, s.schema)
	all := report.AllProducts(in, lk, s.schema)
	rep := &report.Report{
		SoldProducts: sold,
		AllProducts:  all,
		Summary:      report.BuildSummary(sold, all),
	}
	logger.Info("reports built: sold=%d all=%d breakdown groups=%d", sold.RowCount(), all.RowCount(), len(rep.Summary.Breakdown))
	s.progress(runID, ports.StageReports, 80, "reports built")

	// Step 4: render the workbook
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.emitter.Emit(ctx, rep)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to write workbook")
	}

	ratio, err := stats.Round(rep.Summary.Static.Ratio()*100, 2)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to round ratio")
	}
	hash := core.NewHash(data)
	logger.Info("workbook written in %s: %d bytes, sha256 %s, efficiency %.2f%%",
		time.Since(start).Round(time.Millisecond), len(data), hash.Short(), ratio)
	s.progress(runID, ports.StageWorkbook, 100, "workbook ready")

	return &ReportResult{
		RunID:        runID,
		Report:       rep,
		Workbook:     data,
		Hash:         hash,
		RatioPercent: ratio,
	}, nil
}

func (s *ReportService) readInputs(ctx context.Context, up Uploads) (report.Inputs, error) {
	var in report.Inputs
	sources := []struct {
		name   string
		upload Upload
		dst    **sheet.Table
	}{
		{"barcode", up.Barcode, &in.Barcode},
		{"sales", up.Sales, &in.Sales},
		{"orders", up.Orders, &in.Orders},
		{"template", up.Template, &in.Template},
	}

	for _, src := range sources {
		if src.upload.Reader == nil {
			return report.Inputs{}, core.NewMissingInputError(src.name)
		}
		table, err := s.reader.ReadTable(ctx, src.upload.Filename, src.upload.Reader)
		if err != nil {
			return report.Inputs{}, apperrors.Wrapf(err, "failed to read %s", src.name)
		}
		*src.dst = table
	}
	return in, nil
}

func (s *ReportService) progress(runID core.RunID, stage ports.Stage, percent int, msg string) {
	if s.observer == nil {
		return
	}
	s.observer.OnProgress(ports.ProgressEvent{
		RunID:   runID,
		Stage:   stage,
		Percent: percent,
		Message: msg,
	})
}
