package server

import (
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/storage"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetCategories lists all categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.Status(fiber.StatusOK).JSON(categories)
}

// GetCategory fetches a single category by ID
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} map[string]interface{}
// @Router /categories/{id} [get]
func (s *Server) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "Category")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Category")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(category)
}

// CreateCategory creates a category from multipart form data
// @Summary Create a category
// @Tags categories
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param short_description formData string true "Short description"
// @Param long_description formData string true "Long description"
// @Param image formData file false "Category image"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /categories [post]
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	in := validation.CatalogInput{
		Title:            c.FormValue("title"),
		ShortDescription: c.FormValue("short_description"),
		LongDescription:  c.FormValue("long_description"),
	}
	errs := validation.Category(in)

	fh, hasImage := formImage(c)
	if hasImage {
		for _, msg := range validation.ImageUpload(
			fh.Filename, fh.Header.Get("Content-Type"), fh.Size, 0) {
			errs.Add("image", msg)
		}
	}

	if errs.Any() {
		return respondValidationFailed(c, errs)
	}

	var imagePath *string
	if hasImage {
		content, err := readFormFile(fh)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		rel, err := s.files.Save(storage.BucketCategories, fh.Filename, content)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		imagePath = &rel
		middleware.ImageUploads.WithLabelValues(storage.BucketCategories).Inc()
	}

	category := &models.Category{
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Image:            imagePath,
	}

	if err := s.categoryRepo.Create(c.Context(), category); err != nil {
		// The staged file must not outlive a failed insert.
		if imagePath != nil {
			_ = s.files.Delete(*imagePath)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category create successfully",
		"category": category,
	})
}

// UpdateCategory updates an existing category
// @Summary Update a category
// @Tags categories
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param title formData string true "Title"
// @Param short_description formData string true "Short description"
// @Param long_description formData string true "Long description"
// @Param image formData file false "Replacement image"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /categories/{id} [post]
func (s *Server) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "Category")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Category")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	in := validation.CatalogInput{
		Title:            c.FormValue("title"),
		ShortDescription: c.FormValue("short_description"),
		LongDescription:  c.FormValue("long_description"),
	}
	errs := validation.Category(in)

	fh, hasImage := formImage(c)
	if hasImage {
		for _, msg := range validation.ImageUpload(
			fh.Filename, fh.Header.Get("Content-Type"), fh.Size, 0) {
			errs.Add("image", msg)
		}
	}

	if errs.Any() {
		return respondValidationFailed(c, errs)
	}

	// Stage the new file before touching the row so the old image stays
	// valid until the update has committed.
	oldImage := category.Image
	var stagedPath *string
	if hasImage {
		content, err := readFormFile(fh)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		rel, err := s.files.Save(storage.BucketCategories, fh.Filename, content)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		stagedPath = &rel
		middleware.ImageUploads.WithLabelValues(storage.BucketCategories).Inc()
	}

	category.Title = in.Title
	category.ShortDescription = in.ShortDescription
	category.LongDescription = in.LongDescription
	if stagedPath != nil {
		category.Image = stagedPath
	}

	if err := s.categoryRepo.Update(c.Context(), category); err != nil {
		if stagedPath != nil {
			_ = s.files.Delete(*stagedPath)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if stagedPath != nil && oldImage != nil && *oldImage != *stagedPath {
		_ = s.files.Delete(*oldImage)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory removes a category and its stored image
// @Summary Delete a category
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /categories/{id} [delete]
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "Category")
	if err != nil {
		return nil
	}

	category, err := s.categoryRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Category")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.categoryRepo.Delete(c.Context(), id); err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Category")
		}
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return respondValidationFailed(c, validation.Errors{
				"category": {appErr.Message},
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if category.Image != nil {
		_ = s.files.Delete(*category.Image)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
