package ports

import (
	"context"
	"io"

	"stokreport/domain/core"
	"stokreport/domain/sheet"
	"stokreport/internal/report"
)

// TableReader loads the first sheet of an uploaded spreadsheet. filename is
// used only to pick the format.
type TableReader interface {
	ReadTable(ctx context.Context, filename string, r io.Reader) (*sheet.Table, error)
}

// WorkbookEmitter renders a finished report into workbook bytes
type WorkbookEmitter interface {
	Emit(ctx context.Context, rep *report.Report) ([]byte, error)
}

// Stage names a step of a report run
type Stage string

const (
	StageRead     Stage = "read"
	StageLookups  Stage = "lookups"
	StageReports  Stage = "reports"
	StageWorkbook Stage = "workbook"
	StageFailed   Stage = "failed"
)

// ProgressEvent is reported to observers as a run advances
type ProgressEvent struct {
	RunID   core.RunID
	Stage   Stage
	Percent int
	Message string
}

// ProgressObserver receives progress events; it must not block the run
type ProgressObserver interface {
	OnProgress(event ProgressEvent)
}

// ProgressFunc adapts a function to ProgressObserver
type ProgressFunc func(event ProgressEvent)

func (f ProgressFunc) OnProgress(event ProgressEvent) { f(event) }
