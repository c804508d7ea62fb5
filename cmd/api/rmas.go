package main

import (
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/domain/orders"
	"backoffice/internal/domain/rmas"
	"backoffice/internal/params"

	"github.com/go-chi/chi/v5"
)

func (app *application) actorFromRequest(r *http.Request) rmas.Actor {
	identity := getIdentityFromContext(r)
	if identity == nil {
		return rmas.Actor{}
	}
	return rmas.Actor{ID: identity.ID, Name: identity.Name, Role: identity.Role}
}

// rmaErrorResponse maps engine errors onto HTTP statuses in one place so
// every RMA handler reports the same way.
func (app *application) rmaErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var qtyErr *rmas.ReturnQtyError
	var stockErr *rmas.InsufficientStockError
	switch {
	case errors.Is(err, rmas.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, orders.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, rmas.ErrAlreadyCompleted),
		errors.Is(err, rmas.ErrAlreadyCancelled),
		errors.Is(err, rmas.ErrCompleteCancelled):
		app.conflictResponse(w, r, err)
	case errors.As(err, &stockErr):
		app.conflictResponse(w, r, err)
	case errors.As(err, &qtyErr):
		app.badRequestResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}

type CreateRMAPayload struct {
	Type             string                 `json:"type" validate:"required,oneof=return exchange"`
	Status           string                 `json:"status" validate:"omitempty,oneof=draft approved"`
	OrderID          int64                  `json:"order_id" validate:"required,min=1"`
	Note             *string                `json:"note" validate:"omitempty,max=2000"`
	ReturnItems      []rmas.ReturnItem      `json:"return_items" validate:"required,min=1,dive"`
	ReplacementItems []rmas.ReplacementItem `json:"replacement_items" validate:"omitempty,dive"`
	PaymentMethod    *string                `json:"payment_method" validate:"omitempty,max=40"`
	PaymentRef       *string                `json:"payment_ref" validate:"omitempty,max=120"`
}

// createRMAHandler godoc
//
//	@Summary		Create an RMA
//	@Description	Opens a return or exchange against an order. Return quantities are checked against what the order still has returnable; settlement amounts are derived server side.
//	@Tags			rmas
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateRMAPayload	true	"New RMA"
//	@Success		201		{object}	rmas.RMA
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/rmas [post]
func (app *application) createRMAHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateRMAPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rma, err := app.rmaService.Create(r.Context(), app.actorFromRequest(r), rmas.CreateInput{
		Type:             rmas.Type(payload.Type),
		Status:           rmas.Status(payload.Status),
		OrderID:          payload.OrderID,
		Note:             payload.Note,
		ReturnItems:      payload.ReturnItems,
		ReplacementItems: payload.ReplacementItems,
		PaymentMethod:    payload.PaymentMethod,
		PaymentRef:       payload.PaymentRef,
	})
	if err != nil {
		app.rmaErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, rma); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRMAsHandler godoc
//
//	@Summary		List RMAs
//	@Tags			rmas
//	@Produce		json
//	@Param			status	query		string	false	"Filter by status"	Enums(draft, approved, completed, cancelled)
//	@Param			limit	query		int		false	"Page size"
//	@Param			page	query		int		false	"Page number"
//	@Success		200		{object}	map[string]any
//	@Security		ApiKeyAuth
//	@Router			/rmas [get]
func (app *application) listRMAsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())
	status := rmas.Status(r.URL.Query().Get("status"))

	list, total, err := app.rmaService.List(r.Context(), status, p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"rmas":       list,
		"pagination": p,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRMAHandler godoc
//
//	@Summary		Get an RMA
//	@Tags			rmas
//	@Produce		json
//	@Param			rmaID	path		int	true	"RMA ID"
//	@Success		200		{object}	rmas.RMA
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/rmas/{rmaID} [get]
func (app *application) getRMAHandler(w http.ResponseWriter, r *http.Request) {
	rmaID, err := strconv.ParseInt(chi.URLParam(r, "rmaID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rma, err := app.rmaService.GetByID(r.Context(), rmaID)
	if err != nil {
		app.rmaErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rma); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateRMAPayload struct {
	Type             *string                 `json:"type" validate:"omitempty,oneof=return exchange"`
	Note             *string                 `json:"note" validate:"omitempty,max=2000"`
	ReturnItems      *[]rmas.ReturnItem      `json:"return_items" validate:"omitempty,min=1,dive"`
	ReplacementItems *[]rmas.ReplacementItem `json:"replacement_items" validate:"omitempty,dive"`
	PaymentMethod    *string                 `json:"payment_method" validate:"omitempty,max=40"`
	PaymentRef       *string                 `json:"payment_ref" validate:"omitempty,max=120"`
}

// updateRMAHandler godoc
//
//	@Summary		Update an RMA
//	@Description	Patches the RMA's items, note or payment details. Money is recomputed whenever either item set changes. Status transitions go through the status, complete and cancel endpoints.
//	@Tags			rmas
//	@Accept			json
//	@Produce		json
//	@Param			rmaID	path		int					true	"RMA ID"
//	@Param			payload	body		UpdateRMAPayload	true	"Fields to update"
//	@Success		200		{object}	rmas.RMA
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/rmas/{rmaID} [patch]
func (app *application) updateRMAHandler(w http.ResponseWriter, r *http.Request) {
	rmaID, err := strconv.ParseInt(chi.URLParam(r, "rmaID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateRMAPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	in := rmas.UpdateInput{
		Note:             payload.Note,
		ReturnItems:      payload.ReturnItems,
		ReplacementItems: payload.ReplacementItems,
		PaymentMethod:    payload.PaymentMethod,
		PaymentRef:       payload.PaymentRef,
	}
	if payload.Type != nil {
		t := rmas.Type(*payload.Type)
		in.Type = &t
	}

	rma, err := app.rmaService.Update(r.Context(), app.actorFromRequest(r), rmaID, in)
	if err != nil {
		app.rmaErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rma); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ChangeRMAStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=draft approved completed cancelled"`
}

// changeRMAStatusHandler godoc
//
//	@Summary		Change RMA status
//	@Description	Moves the RMA along the lifecycle. Only transitions allowed by the state machine succeed; this endpoint never touches inventory.
//	@Tags			rmas
//	@Accept			json
//	@Produce		json
//	@Param			rmaID	path		int						true	"RMA ID"
//	@Param			payload	body		ChangeRMAStatusPayload	true	"Target status"
//	@Success		200		{object}	rmas.RMA
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/rmas/{rmaID}/status [put]
func (app *application) changeRMAStatusHandler(w http.ResponseWriter, r *http.Request) {
	rmaID, err := strconv.ParseInt(chi.URLParam(r, "rmaID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload ChangeRMAStatusPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rma, err := app.rmaService.ChangeStatus(r.Context(), app.actorFromRequest(r), rmaID, rmas.Status(payload.Status))
	if err != nil {
		if errors.Is(err, rmas.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		// Disallowed transitions surface as plain errors from the table.
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rma); err != nil {
		app.internalServerError(w, r, err)
	}
}

// completeRMAHandler godoc
//
//	@Summary		Complete an RMA
//	@Description	Restocks returned items, consumes replacement stock and marks the RMA completed, all in one transaction. Fails without touching inventory if any replacement line lacks stock.
//	@Tags			rmas
//	@Produce		json
//	@Param			rmaID	path		int	true	"RMA ID"
//	@Success		200		{object}	rmas.RMA
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/rmas/{rmaID}/complete [post]
func (app *application) completeRMAHandler(w http.ResponseWriter, r *http.Request) {
	rmaID, err := strconv.ParseInt(chi.URLParam(r, "rmaID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	rma, err := app.rmaService.Complete(r.Context(), app.actorFromRequest(r), rmaID)
	if err != nil {
		app.rmaErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rma); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CancelRMAPayload struct {
	RevertInventory bool `json:"revert_inventory"`
}

// cancelRMAHandler godoc
//
//	@Summary		Cancel an RMA
//	@Description	Cancels the RMA from any non-cancelled state. For a completed RMA, pass revert_inventory to undo its stock effects in the same transaction.
//	@Tags			rmas
//	@Accept			json
//	@Produce		json
//	@Param			rmaID	path		int					true	"RMA ID"
//	@Param			payload	body		CancelRMAPayload	false	"Cancel options"
//	@Success		200		{object}	rmas.RMA
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/rmas/{rmaID}/cancel [post]
func (app *application) cancelRMAHandler(w http.ResponseWriter, r *http.Request) {
	rmaID, err := strconv.ParseInt(chi.URLParam(r, "rmaID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload CancelRMAPayload
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &payload); err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
	}

	rma, err := app.rmaService.Cancel(r.Context(), app.actorFromRequest(r), rmaID, payload.RevertInventory)
	if err != nil {
		app.rmaErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, rma); err != nil {
		app.internalServerError(w, r, err)
	}
}
