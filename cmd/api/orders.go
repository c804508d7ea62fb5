package main

import (
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/domain/orders"
	"backoffice/internal/params"

	"github.com/go-chi/chi/v5"
)

// listOrdersHandler godoc
//
//	@Summary		List orders
//	@Tags			orders
//	@Produce		json
//	@Param			status	query		string	false	"Filter by order status"
//	@Param			limit	query		int		false	"Page size"
//	@Param			page	query		int		false	"Page number"
//	@Success		200		{object}	map[string]any
//	@Security		ApiKeyAuth
//	@Router			/orders [get]
func (app *application) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())
	status := r.URL.Query().Get("status")

	list, total, err := app.store.Orders.ListAll(r.Context(), status, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"orders":     list,
		"pagination": p,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOrderHandler godoc
//
//	@Summary		Get an order with its line items
//	@Tags			orders
//	@Produce		json
//	@Param			orderID	path		int	true	"Order ID"
//	@Success		200		{object}	orders.OrderDetail
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/orders/{orderID} [get]
func (app *application) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	detail, err := app.store.Orders.GetDetail(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}

// orderReturnableHandler godoc
//
//	@Summary		Returnable quantities for an order
//	@Description	Reports, per line item SKU, how many units a new RMA could still claim. Pass exclude_rma_id when editing an existing RMA so its own reservation is not counted against it.
//	@Tags			orders
//	@Produce		json
//	@Param			orderID			path		int	true	"Order ID"
//	@Param			exclude_rma_id	query		int	false	"RMA being edited"
//	@Success		200				{object}	map[string]int
//	@Failure		404				{object}	error
//	@Security		ApiKeyAuth
//	@Router			/orders/{orderID}/returnable [get]
func (app *application) orderReturnableHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var excludeID *int64
	if raw := r.URL.Query().Get("exclude_rma_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		excludeID = &id
	}

	quantities, err := app.rmaService.ReturnableQuantities(r.Context(), orderID, excludeID)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, quantities); err != nil {
		app.internalServerError(w, r, err)
	}
}
