package main

import (
	"net/http"

	"backoffice/internal/params"
)

// listAuditEventsHandler godoc
//
//	@Summary		List audit events
//	@Description	Returns the append-only trail of who did what and when, newest first.
//	@Tags			audit
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			page	query		int	false	"Page number"
//	@Success		200		{object}	map[string]any
//	@Security		ApiKeyAuth
//	@Router			/audit [get]
func (app *application) listAuditEventsHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	events, total, err := app.store.Audit.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"events":     events,
		"pagination": p,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
