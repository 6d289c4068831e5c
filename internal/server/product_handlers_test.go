package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/storage"
	"storefront/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock of the ProductRepository interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newProductTestServer(t *testing.T) (*fiber.App, *MockProductRepository, *MockCategoryRepository, *storage.Store) {
	t.Helper()

	app := fiber.New()
	mockProducts := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	files := storage.New(t.TempDir())

	s := &Server{
		config:       &config.Config{Env: "test"},
		productRepo:  mockProducts,
		categoryRepo: mockCategories,
		files:        files,
	}

	app.Get("/products", s.GetProducts)
	app.Get("/products/:id", s.GetProduct)
	app.Post("/products", s.CreateProduct)
	app.Post("/products/:id", s.UpdateProduct)
	app.Delete("/products/:id", s.DeleteProduct)

	return app, mockProducts, mockCategories, files
}

func TestGetProductNotFound(t *testing.T) {
	app, mockProducts, _, _ := newProductTestServer(t)

	mockProducts.On("GetByID", mock.Anything, uint(42)).
		Return(nil, models.NewNotFoundError("Product", 42))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/products/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "Product not found", body["message"])
}

func TestCreateProduct(t *testing.T) {
	validFields := map[string]string{
		"category_id":       "3",
		"title":             "Wireless Earbuds",
		"short_description": "Bluetooth earbuds",
		"long_description":  "In-ear wireless earbuds with a charging case",
	}

	t.Run("Success", func(t *testing.T) {
		app, mockProducts, mockCategories, _ := newProductTestServer(t)
		mockCategories.On("Exists", mock.Anything, uint(3)).Return(true, nil)
		mockProducts.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = 1
		}).Return(nil)

		req := multipartRequest(t, http.MethodPost, "/products", validFields, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Product create successfully", body["message"])
		product := body["product"].(map[string]any)
		assert.Equal(t, float64(3), product["category_id"])
	})

	t.Run("Nonexistent category", func(t *testing.T) {
		app, _, mockCategories, _ := newProductTestServer(t)
		mockCategories.On("Exists", mock.Anything, uint(3)).Return(false, nil)

		req := multipartRequest(t, http.MethodPost, "/products", validFields, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]any)
		assert.Contains(t, data["category_id"], "The selected category id is invalid.")
	})

	t.Run("Non-numeric category skips existence check", func(t *testing.T) {
		app, _, _, _ := newProductTestServer(t)

		fields := map[string]string{
			"category_id":       "abc",
			"title":             "Widget",
			"short_description": "s",
			"long_description":  "l",
		}
		req := multipartRequest(t, http.MethodPost, "/products", fields, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]any)
		assert.Contains(t, data["category_id"], "The category id must be an integer.")
	})

	t.Run("Oversized image", func(t *testing.T) {
		app, _, mockCategories, _ := newProductTestServer(t)
		mockCategories.On("Exists", mock.Anything, uint(3)).Return(true, nil)

		req := multipartRequest(t, http.MethodPost, "/products", validFields, &formFile{
			field:       "image",
			filename:    "huge.png",
			contentType: "image/png",
			content:     []byte(strings.Repeat("x", validation.MaxProductImageBytes+1)),
		})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]any)
		assert.Contains(t, data["image"], "The image must not be greater than 2048 kilobytes.")
	})
}

func TestUpdateProduct(t *testing.T) {
	existing := func() *models.Product {
		return &models.Product{
			ID:               1,
			CategoryID:       3,
			Title:            "Wireless Earbuds",
			ShortDescription: "Bluetooth earbuds",
			LongDescription:  "In-ear wireless earbuds",
		}
	}

	fields := map[string]string{
		"category_id":       "4",
		"title":             "Wireless Earbuds Pro",
		"short_description": "Bluetooth earbuds",
		"long_description":  "In-ear wireless earbuds",
	}

	t.Run("Success with category move", func(t *testing.T) {
		app, mockProducts, mockCategories, _ := newProductTestServer(t)
		mockProducts.On("GetByID", mock.Anything, uint(1)).Return(existing(), nil)
		mockCategories.On("Exists", mock.Anything, uint(4)).Return(true, nil)
		mockProducts.On("Update", mock.Anything, mock.Anything).Return(nil)

		req := multipartRequest(t, http.MethodPost, "/products/1", fields, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Product updated successfully", body["message"])
		product := body["product"].(map[string]any)
		assert.Equal(t, float64(4), product["category_id"])
	})

	t.Run("Move to nonexistent category is rejected", func(t *testing.T) {
		app, mockProducts, mockCategories, _ := newProductTestServer(t)
		mockProducts.On("GetByID", mock.Anything, uint(1)).Return(existing(), nil)
		mockCategories.On("Exists", mock.Anything, uint(4)).Return(false, nil)

		req := multipartRequest(t, http.MethodPost, "/products/1", fields, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		body := decodeBody(t, resp)
		data := body["data"].(map[string]any)
		assert.Contains(t, data["category_id"], "The selected category id is invalid.")
		mockProducts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Missing product is a clean 404", func(t *testing.T) {
		app, mockProducts, _, _ := newProductTestServer(t)
		mockProducts.On("GetByID", mock.Anything, uint(42)).
			Return(nil, models.NewNotFoundError("Product", 42))

		req := multipartRequest(t, http.MethodPost, "/products/42", fields, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Product not found", body["message"])
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Removes row and image file", func(t *testing.T) {
		app, mockProducts, _, files := newProductTestServer(t)

		rel, err := files.Save(storage.BucketProducts, "shot.png", []byte("bytes"))
		require.NoError(t, err)

		mockProducts.On("GetByID", mock.Anything, uint(1)).Return(&models.Product{
			ID: 1, CategoryID: 3, Title: "Earbuds", Image: &rel,
		}, nil)
		mockProducts.On("Delete", mock.Anything, uint(1)).Return(nil)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/products/1", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.False(t, files.Exists(rel), "image file must be removed with the product")
	})

	t.Run("Missing product is a clean 404", func(t *testing.T) {
		app, mockProducts, _, _ := newProductTestServer(t)
		mockProducts.On("GetByID", mock.Anything, uint(42)).
			Return(nil, models.NewNotFoundError("Product", 42))

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/products/42", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Not Found", body["error"])
	})
}
