package echo

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	app "github.com/campushub/user-gateway/internal/application/user"
	domain "github.com/campushub/user-gateway/internal/domain/user"
)

// UploadSaver persists one uploaded file and returns its path on disk.
type UploadSaver interface {
	Save(header *multipart.FileHeader) (string, error)
}

// SourceFactory opens a saved upload as a record source. The source owns
// the file from here on and removes it on Close.
type SourceFactory func(path string) (app.RecordSource, error)

// BulkHandler serves the batch endpoints: file-driven creation and
// criteria-driven deletion.
type BulkHandler struct {
	bulkCreate app.BulkCreateUsers
	bulkDelete app.BulkDeleteUsers
	uploads    UploadSaver
	newSource  SourceFactory
}

func NewBulkHandler(bulkCreate app.BulkCreateUsers, bulkDelete app.BulkDeleteUsers, uploads UploadSaver, newSource SourceFactory) *BulkHandler {
	return &BulkHandler{
		bulkCreate: bulkCreate,
		bulkDelete: bulkDelete,
		uploads:    uploads,
		newSource:  newSource,
	}
}

func (h *BulkHandler) Create(c echo.Context) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Bad Request", "No file uploaded")
	}

	path, err := h.uploads.Save(header)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal Server Error", "Failed to store uploaded file")
	}

	source, err := h.newSource(path)
	if err != nil {
		_ = os.Remove(path)
		return fail(c, http.StatusBadRequest, "Bad Request", err.Error())
	}

	result, err := h.bulkCreate.Execute(c.Request().Context(), app.BulkCreateUsersInput{Source: source})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Internal Server Error", "Failed to process file")
	}

	message := fmt.Sprintf("Bulk upload completed: %d succeeded, %d failed", result.SuccessCount, result.FailureCount)
	return ok(c, http.StatusOK, result, message)
}

func (h *BulkHandler) Delete(c echo.Context) error {
	var criteria domain.DeleteCriteria
	if err := c.Bind(&criteria); err != nil {
		return fail(c, http.StatusBadRequest, "Bad Request", "Invalid request body")
	}

	result, err := h.bulkDelete.Execute(c.Request().Context(), app.BulkDeleteUsersInput{Criteria: criteria})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrConfirmationRequired):
			return fail(c, http.StatusBadRequest, "Confirmation Required",
				`Deleting all users requires explicit confirmation. Set "confirm: true" in request body.`)
		case errors.Is(err, app.ErrRoleRequired):
			return fail(c, http.StatusBadRequest, "Validation failed", `Role is required when criteria is "role"`)
		case errors.Is(err, app.ErrValidation):
			return fail(c, http.StatusBadRequest, "Validation failed", `Criteria must be either "all" or "role"`)
		default:
			return fail(c, http.StatusInternalServerError, "Internal Server Error", "Failed to delete users")
		}
	}

	message := fmt.Sprintf("Bulk delete completed: %d users deleted, %d failed", result.DeletedCount, result.FailedCount)
	return ok(c, http.StatusOK, result, message)
}
