package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/roles"

	"github.com/go-chi/chi/v5"
)

type CreateRolePayload struct {
	Name        string   `json:"name" validate:"required,max=60"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Permissions []string `json:"permissions" validate:"required,min=1"`
}

// createRoleHandler godoc
//
//	@Summary		Create a role
//	@Description	Creates a custom role with a named set of permissions.
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateRolePayload	true	"New role"
//	@Success		201		{object}	roles.Role
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/roles [post]
func (app *application) createRoleHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateRolePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	perms, err := parsePermissions(payload.Permissions)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	available, err := app.store.Roles.IsNameAvailable(r.Context(), payload.Name, 0)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if !available {
		app.conflictResponse(w, r, roles.ErrDuplicateName)
		return
	}

	role := &roles.Role{
		Name:        payload.Name,
		Description: payload.Description,
		Permissions: perms,
	}
	created, err := app.store.Roles.Create(r.Context(), role)
	if err != nil {
		if errors.Is(err, roles.ErrDuplicateName) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.appendAuditEvent(r, audit.ActionRoleCreated, "role", &created.ID, map[string]any{
		"name":        created.Name,
		"permissions": created.Permissions,
	}, nil)

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRolesHandler godoc
//
//	@Summary		List roles
//	@Description	Returns every role, system and custom, with the full permission vocabulary alongside.
//	@Tags			roles
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Security		ApiKeyAuth
//	@Router			/roles [get]
func (app *application) listRolesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.store.Roles.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]any{
		"roles":       list,
		"permissions": roles.AllPermissions,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateRolePayload struct {
	Name        *string   `json:"name" validate:"omitempty,max=60"`
	Description *string   `json:"description" validate:"omitempty,max=255"`
	Permissions *[]string `json:"permissions" validate:"omitempty,min=1"`
}

// updateRoleHandler godoc
//
//	@Summary		Update a role
//	@Description	Patches a custom role. Changes apply to every user holding the role on their next request. System roles cannot be modified.
//	@Tags			roles
//	@Accept			json
//	@Produce		json
//	@Param			roleID	path		int					true	"Role ID"
//	@Param			payload	body		UpdateRolePayload	true	"Fields to update"
//	@Success		200		{object}	roles.Role
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/roles/{roleID} [patch]
func (app *application) updateRoleHandler(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "roleID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateRolePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	role, err := app.store.Roles.GetByID(r.Context(), roleID)
	if err != nil {
		if errors.Is(err, roles.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	changes := map[string]any{}
	if payload.Name != nil {
		available, err := app.store.Roles.IsNameAvailable(r.Context(), *payload.Name, role.ID)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		if !available {
			app.conflictResponse(w, r, roles.ErrDuplicateName)
			return
		}
		role.Name = *payload.Name
		changes["name"] = *payload.Name
	}
	if payload.Description != nil {
		role.Description = payload.Description
		changes["description"] = *payload.Description
	}
	if payload.Permissions != nil {
		perms, err := parsePermissions(*payload.Permissions)
		if err != nil {
			app.badRequestResponse(w, r, err)
			return
		}
		role.Permissions = perms
		changes["permissions"] = perms
	}

	if err := app.store.Roles.Update(r.Context(), role); err != nil {
		switch {
		case errors.Is(err, roles.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, roles.ErrSystemRole):
			app.conflictResponse(w, r, err)
		case errors.Is(err, roles.ErrDuplicateName):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.appendAuditEvent(r, audit.ActionRoleUpdated, "role", &role.ID, changes, nil)

	if err := app.jsonResponse(w, http.StatusOK, role); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRoleHandler godoc
//
//	@Summary		Delete a role
//	@Description	Removes a custom role. System roles cannot be deleted, and a role still assigned to users must be unassigned first.
//	@Tags			roles
//	@Produce		json
//	@Param			roleID	path		int	true	"Role ID"
//	@Success		204		{string}	string	"No Content"
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/roles/{roleID} [delete]
func (app *application) deleteRoleHandler(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "roleID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Roles.Delete(r.Context(), roleID); err != nil {
		switch {
		case errors.Is(err, roles.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, roles.ErrSystemRole), errors.Is(err, roles.ErrRoleInUse):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.appendAuditEvent(r, audit.ActionRoleDeleted, "role", &roleID, nil, nil)

	w.WriteHeader(http.StatusNoContent)
}

func parsePermissions(in []string) ([]roles.Permission, error) {
	perms := make([]roles.Permission, 0, len(in))
	for _, p := range in {
		perm := roles.Permission(p)
		if !roles.IsKnown(perm) {
			return nil, fmt.Errorf("unknown permission %q", p)
		}
		perms = append(perms, perm)
	}
	return perms, nil
}
