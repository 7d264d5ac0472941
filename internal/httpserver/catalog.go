package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.categories")

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		return failWith(c, l, "categories_failed", err)
	}
	return ok(c, "", echo.Map{"categories": categories})
}

func (h *CatalogHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.add_product")

	var req transport.AddProductRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "add_product_failed", err)
	}

	prod, err := h.Svc.AddProduct(ctx, identity.FromContext(ctx), req.Input())
	if err != nil {
		return failWith(c, l, "add_product_failed", err,
			errMessage{service.ErrForbidden, "Only admins can add products"},
			errMessage{service.ErrMissingFields, "Missing required fields (name, price, category)"},
			errMessage{service.ErrInvalidPrice, "Invalid price"},
			errMessage{service.ErrInvalidCategory, "Invalid category"},
		)
	}
	return ok(c, "Product added successfully", echo.Map{"productId": prod.ProductID, "product": prod})
}

func (h *CatalogHTTP) GetAllProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_all_products")

	items, err := h.Svc.ListAllProducts(ctx)
	if err != nil {
		return failWith(c, l, "get_all_products_failed", err)
	}
	l.Debug("get_all_products_success", "count", len(items))
	return ok(c, "", echo.Map{"products": items})
}

func (h *CatalogHTTP) GetProductsByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products_by_category")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "get_products_by_category_failed", err)
	}

	items, err := h.Svc.ListProductsByCategory(ctx, req.Category)
	if err != nil {
		return failWith(c, l, "get_products_by_category_failed", err,
			errMessage{service.ErrInvalidCategory, "Invalid or missing category"},
		)
	}
	return ok(c, "", echo.Map{"products": items})
}

func (h *CatalogHTTP) GetSpecificProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_specific_product")

	var req transport.GetProductRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "get_specific_product_failed", err)
	}

	prod, err := h.Svc.GetProduct(ctx, req.ProductKey)
	if err != nil {
		return failWith(c, l, "get_specific_product_failed", err,
			errMessage{service.ErrMissingID, "Product ID is required"},
			errMessage{service.ErrNotFound, "Product not found"},
		)
	}
	return ok(c, "", echo.Map{"product": prod})
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	var req transport.DeleteProductRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "delete_product_failed", err)
	}

	deleted, err := h.Svc.DeleteProduct(ctx, identity.FromContext(ctx), req.ProductID.Ptr())
	if err != nil {
		return failWith(c, l, "delete_product_failed", err,
			errMessage{service.ErrForbidden, "Only admins can delete products"},
			errMessage{service.ErrMissingID, "Missing productId"},
			errMessage{service.ErrNotFound, "Product not found"},
		)
	}
	return ok(c, "Product deleted successfully", echo.Map{"deletedProduct": deleted})
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_product")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "update_product_failed", err)
	}

	prod, err := h.Svc.UpdateProduct(ctx, identity.FromContext(ctx), req.ProductID.Ptr(), req.Input())
	if err != nil {
		return failWith(c, l, "update_product_failed", err,
			errMessage{service.ErrForbidden, "Only admins can update products"},
			errMessage{service.ErrMissingID, "Missing productId"},
			errMessage{service.ErrNotFound, "Product not found"},
			errMessage{service.ErrInvalidPrice, "Invalid price"},
			errMessage{service.ErrInvalidCategory, "Invalid category"},
		)
	}
	return ok(c, "Product updated successfully", echo.Map{"product": prod})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	var req transport.SearchRequest
	if err := c.Bind(&req); err != nil {
		return bindFailed(c, l, "search_products_failed", err)
	}

	items, err := h.Svc.SearchProducts(ctx, req.Query, req.Page, req.Size)
	if err != nil {
		return failWith(c, l, "search_products_failed", err,
			errMessage{service.ErrMissingFields, "Missing search query"},
		)
	}
	return ok(c, "", echo.Map{"products": items})
}
