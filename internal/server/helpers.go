package server

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a numeric ID from the :id route parameter. An id that
// does not parse can never match a record, so it resolves to the same
// structured 404 as a missing one; parseID writes that response and
// returns errResponseWritten.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = respondNotFound(c, resource)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondNotFound writes the structured 404 body for a missing resource.
func respondNotFound(c *fiber.Ctx, resource string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "Not Found",
		"message": resource + " not found",
	})
}

// respondValidationFailed writes the 422 validation-failure envelope.
func respondValidationFailed(c *fiber.Ctx, errs validation.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status":  "failed",
		"message": "Validation Error!",
		"data":    errs,
	})
}

// formImage returns the uploaded "image" file header if one was sent.
func formImage(c *fiber.Ctx) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return nil, false
	}
	return fh, true
}

// readFormFile reads an uploaded multipart file fully into memory.
func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
