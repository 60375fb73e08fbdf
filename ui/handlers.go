package ui

import (
	"errors"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"net/http"

	"stokreport/app"
	apperrors "stokreport/internal/errors"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// waitingMessage is shown until every input has been uploaded
const waitingMessage = "Waiting for all 4 Excel files to be uploaded."

type uploadInput struct {
	Field string
	Label string
}

// uploadInputs are the multipart fields of POST /reports, in upload order
var uploadInputs = []uploadInput{
	{Field: "barcode", Label: "1. Barkodlu Ürün Raporu"},
	{Field: "sales", Label: "2. Net Satış Raporu"},
	{Field: "orders", Label: "3. Orders In Excel"},
	{Field: "template", Label: "4. Template File"},
}

type indexPage struct {
	Title   string
	Inputs  []uploadInput
	Waiting string
	Error   string
	Guide   template.HTML
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderTemplate(c, http.StatusOK, "index.html", indexPage{
		Title:   "RND Stok Report",
		Inputs:  uploadInputs,
		Waiting: waitingMessage,
		Guide:   s.guide,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// uploadTargets maps each upload field to its slot in up
func uploadTargets(up *app.Uploads) map[string]*app.Upload {
	return map[string]*app.Upload{
		"barcode":  &up.Barcode,
		"sales":    &up.Sales,
		"orders":   &up.Orders,
		"template": &up.Template,
	}
}

// errorBody renders an error for a JSON response
func errorBody(err error) gin.H {
	return gin.H{"error": err.Error(), "code": apperrors.GetCode(err)}
}

// handleGenerateReport runs the pipeline over the four uploaded files and
// returns the workbook as a download
func (s *Server) handleGenerateReport(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(s.router.MaxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Warn("[handleGenerateReport] upload over %d bytes rejected", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, errorBody(apperrors.InvalidInput(
				fmt.Sprintf("Upload exceeds the %d MB limit.", s.config.Server.MaxUploadMB))))
			return
		}
		// anything else surfaces below as missing files
	}

	var files []multipart.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	var up app.Uploads
	targets := uploadTargets(&up)
	for _, in := range uploadInputs {
		fh, err := c.FormFile(in.Field)
		if err != nil {
			s.logger.Warn("[handleGenerateReport] missing %s: %v", in.Field, err)
			body := errorBody(apperrors.InvalidInput(waitingMessage))
			body["missing"] = in.Field
			c.JSON(http.StatusBadRequest, body)
			return
		}
		f, err := fh.Open()
		if err != nil {
			err = apperrors.WithCode(apperrors.CodeInvalidInput, apperrors.Wrapf(err, "failed to open %s", in.Field))
			c.JSON(http.StatusBadRequest, errorBody(err))
			return
		}
		files = append(files, f)
		*targets[in.Field] = app.Upload{Filename: fh.Filename, Reader: f}
	}

	result, err := s.service.Generate(c.Request.Context(), up)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorBody(apperrors.New(
			apperrors.GetCode(err),
			fmt.Sprintf("Error during automation: %v", cause(err)),
		)))
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": s.config.Report.Filename})
	c.Header("Content-Disposition", disposition)
	c.Header("X-Run-ID", result.RunID.String())
	c.Data(http.StatusOK, xlsxContentType, result.Workbook)
}

// cause strips the REPORT_FAILED wrapper so the user sees the underlying failure
func cause(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Cause != nil {
		return appErr.Cause
	}
	return err
}
