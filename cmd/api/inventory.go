package main

import (
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/params"

	"github.com/go-chi/chi/v5"
)

// listProductsHandler godoc
//
//	@Summary		List products
//	@Tags			products
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			page	query		int	false	"Page number"
//	@Success		200		{object}	map[string]any
//	@Security		ApiKeyAuth
//	@Router			/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Inventory.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"products":   list,
		"pagination": p,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getProductHandler godoc
//
//	@Summary		Get a product
//	@Description	Returns the product and, when it is variant-tracked, its variants with per-variant stock.
//	@Tags			products
//	@Produce		json
//	@Param			productID	path		int	true	"Product ID"
//	@Success		200			{object}	inventory.Product
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/products/{productID} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product, err := app.store.Inventory.GetByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

type AdjustStockPayload struct {
	Delta     int    `json:"delta" validate:"required,ne=0"`
	VariantID *int64 `json:"variant_id" validate:"omitempty,min=1"`
	Reason    string `json:"reason" validate:"required,max=255"`
}

// adjustStockHandler godoc
//
//	@Summary		Manually adjust stock
//	@Description	Applies a signed delta to product or variant stock. Stock never goes below zero. The reason lands in the audit trail.
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			productID	path		int					true	"Product ID"
//	@Param			payload		body		AdjustStockPayload	true	"Adjustment"
//	@Success		200			{object}	inventory.Product
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	error
//	@Failure		409			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/products/{productID}/stock [post]
func (app *application) adjustStockHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload AdjustStockPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Inventory.AdjustStock(r.Context(), productID, payload.Delta, payload.VariantID); err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound), errors.Is(err, inventory.ErrVariantNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, inventory.ErrStockBelowZero):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.appendAuditEvent(r, audit.ActionInventoryAdjusted, "product", &productID, map[string]any{
		"delta":      payload.Delta,
		"variant_id": payload.VariantID,
	}, map[string]any{"reason": payload.Reason})

	product, err := app.store.Inventory.GetByID(r.Context(), productID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

// uploadProductImageHandler godoc
//
//	@Summary		Upload a product image
//	@Description	Accepts a multipart image, uploads it to Cloudinary and stores the delivery URL on the product.
//	@Tags			products
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			productID	path		int		true	"Product ID"
//	@Param			image		formData	file	true	"Image file"
//	@Success		200			{object}	map[string]string
//	@Failure		400			{object}	ErrorBadRequestResponse
//	@Failure		404			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/products/{productID}/image [post]
func (app *application) uploadProductImageHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	url, err := app.uploadToCloudinary(r.Context(), file, header.Filename, productID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.store.Inventory.AttachImage(r.Context(), productID, url); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]string{"image_url": url}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
