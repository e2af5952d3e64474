package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/painelfacil/painel-api/internal/core/domain"
	"github.com/painelfacil/painel-api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type productRequest struct {
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	CategoryID    int     `json:"categoryId" validate:"required,gt=0"`
	SubcategoryID int     `json:"subcategoryId"`
	ISBN          string  `json:"isbn"`
}

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// List returns a filtered, paginated product page.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        category     query  int     false  "Category id"
// @Param        subcategory  query  int     false  "Subcategory id"
// @Param        search       query  string  false  "Partial match on name or ISBN"
// @Param        page         query  int     false  "Page number (1-based)"
// @Param        limit        query  int     false  "Rows per page"
// @Success      200  {object}  productListResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	filter := ports.ListProductsFilter{
		CategoryID:    queryInt(c, "category"),
		SubcategoryID: queryInt(c, "subcategory"),
		Search:        c.QueryParam("search"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	}

	products, total, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{
		Products: products,
		Total:    total,
		Page:     filter.Page,
		Limit:    filter.Limit,
	})
}

// Create adds a product to the catalogue.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product details"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update replaces a product's editable fields.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product details"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  map[string]string
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), id, productInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  int  true  "Product id"
// @Success      204  "product removed"
// @Failure      404  {object}  map[string]string
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Categories lists the category catalogue.
//
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	cats, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// Subcategories lists subcategories, optionally scoped to one category.
//
// @Summary      List subcategories
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        category  query  int  false  "Category id"
// @Success      200  {array}  domain.Subcategory
// @Router       /subcategories [get]
func (h *ProductHandler) Subcategories(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	subs, err := h.service.Subcategories(c.Request().Context(), queryInt(c, "category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

func productInput(req productRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:          req.Name,
		Price:         req.Price,
		Stock:         req.Stock,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		ISBN:          req.ISBN,
	}
}
