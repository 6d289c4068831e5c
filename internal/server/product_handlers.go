package server

import (
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/storage"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetProducts lists all products
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (s *Server) GetProducts(c *fiber.Ctx) error {
	products, err := s.productRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.Status(fiber.StatusOK).JSON(products)
}

// GetProduct fetches a single product by ID
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [get]
func (s *Server) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "Product")
	if err != nil {
		return nil
	}

	product, err := s.productRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Product")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(product)
}

// validateProductForm validates product form fields including the
// category reference and optional image, returning the parsed category ID.
func (s *Server) validateProductForm(c *fiber.Ctx, in validation.CatalogInput) (uint, validation.Errors, error) {
	rawCategoryID := c.FormValue("category_id")
	errs := validation.Product(rawCategoryID, in)

	var categoryID uint
	if _, invalid := errs["category_id"]; !invalid {
		id64, _ := strconv.ParseUint(rawCategoryID, 10, 32)
		categoryID = uint(id64)

		exists, err := s.categoryRepo.Exists(c.Context(), categoryID)
		if err != nil {
			return 0, nil, err
		}
		if !exists {
			errs.Add("category_id", "The selected category id is invalid.")
		}
	}

	if fh, ok := formImage(c); ok {
		for _, msg := range validation.ImageUpload(
			fh.Filename, fh.Header.Get("Content-Type"), fh.Size,
			validation.MaxProductImageBytes) {
			errs.Add("image", msg)
		}
	}

	return categoryID, errs, nil
}

// CreateProduct creates a product from multipart form data
// @Summary Create a product
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param category_id formData int true "Category ID"
// @Param title formData string true "Title"
// @Param short_description formData string true "Short description"
// @Param long_description formData string true "Long description"
// @Param image formData file false "Product image (max 2048 KB)"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /products [post]
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	in := validation.CatalogInput{
		Title:            c.FormValue("title"),
		ShortDescription: c.FormValue("short_description"),
		LongDescription:  c.FormValue("long_description"),
	}

	categoryID, errs, err := s.validateProductForm(c, in)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if errs.Any() {
		return respondValidationFailed(c, errs)
	}

	var imagePath *string
	if fh, ok := formImage(c); ok {
		content, err := readFormFile(fh)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		rel, err := s.files.Save(storage.BucketProducts, fh.Filename, content)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		imagePath = &rel
		middleware.ImageUploads.WithLabelValues(storage.BucketProducts).Inc()
	}

	product := &models.Product{
		CategoryID:       categoryID,
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Image:            imagePath,
	}

	if err := s.productRepo.Create(c.Context(), product); err != nil {
		if imagePath != nil {
			_ = s.files.Delete(*imagePath)
		}
		// The category can disappear between the existence check and the
		// insert; surface it the same way the check would have.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return respondValidationFailed(c, validation.Errors{
				"category_id": {"The selected category id is invalid."},
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product create successfully",
		"product": product,
	})
}

// UpdateProduct updates an existing product
// @Summary Update a product
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param category_id formData int true "Category ID"
// @Param title formData string true "Title"
// @Param short_description formData string true "Short description"
// @Param long_description formData string true "Long description"
// @Param image formData file false "Replacement image (max 2048 KB)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /products/{id} [post]
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "Product")
	if err != nil {
		return nil
	}

	product, err := s.productRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Product")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	in := validation.CatalogInput{
		Title:            c.FormValue("title"),
		ShortDescription: c.FormValue("short_description"),
		LongDescription:  c.FormValue("long_description"),
	}

	categoryID, errs, err := s.validateProductForm(c, in)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if errs.Any() {
		return respondValidationFailed(c, errs)
	}

	oldImage := product.Image
	var stagedPath *string
	if fh, ok := formImage(c); ok {
		content, err := readFormFile(fh)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		rel, err := s.files.Save(storage.BucketProducts, fh.Filename, content)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		stagedPath = &rel
		middleware.ImageUploads.WithLabelValues(storage.BucketProducts).Inc()
	}

	product.CategoryID = categoryID
	product.Category = nil
	product.Title = in.Title
	product.ShortDescription = in.ShortDescription
	product.LongDescription = in.LongDescription
	if stagedPath != nil {
		product.Image = stagedPath
	}

	if err := s.productRepo.Update(c.Context(), product); err != nil {
		if stagedPath != nil {
			_ = s.files.Delete(*stagedPath)
		}
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return respondValidationFailed(c, validation.Errors{
				"category_id": {"The selected category id is invalid."},
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if stagedPath != nil && oldImage != nil && *oldImage != *stagedPath {
		_ = s.files.Delete(*oldImage)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product and its stored image
// @Summary Delete a product
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [delete]
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "Product")
	if err != nil {
		return nil
	}

	product, err := s.productRepo.GetByID(c.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Product")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := s.productRepo.Delete(c.Context(), id); err != nil {
		if models.IsNotFound(err) {
			return respondNotFound(c, "Product")
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if product.Image != nil {
		_ = s.files.Delete(*product.Image)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
