package handlers

import (
	"bytes"
	"log"
	"strings"

	"devurai/internal/models"
	"devurai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes on router. Authentication is
// applied by the caller.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/", h.HandleCreateProduct)
	router.Get("/", h.HandleGetProducts)
	router.Get("/:id", h.HandleGetProductByID)
	router.Put("/:id", h.HandleUpdateProduct)
	router.Delete("/:id", h.HandleDeleteProduct)
}

// CreateProductRequest is the request body for product creation. Only the
// name is accepted; price and amount are set through updates.
type CreateProductRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// HandleUpdateProduct applies the name, price and amount present in the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if !services.ValidID(id) {
		return respondError(c, services.ErrNotFound)
	}

	// An empty body is an empty patch.
	var patch models.ProductPatch
	if len(bytes.TrimSpace(c.Body())) > 0 {
		if err := c.BodyParser(&patch); err != nil {
			log.Printf("Error parsing update body for product %s: %v", id, err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// HandleDeleteProduct deletes a product and returns it.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.service.DeleteProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}
