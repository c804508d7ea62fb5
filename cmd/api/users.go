package main

import (
	"errors"
	"net/http"
	"strconv"

	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/roles"
	"backoffice/internal/domain/users"
	"backoffice/internal/mailer"
	"backoffice/internal/params"

	"github.com/go-chi/chi/v5"
)

type CreateUserPayload struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	RoleID   int64  `json:"role_id" validate:"required,min=1"`
}

// createUserHandler godoc
//
//	@Summary		Create a back-office user
//	@Description	Creates an active user with the given role and emails them a welcome message.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateUserPayload	true	"New user"
//	@Success		201		{object}	users.User
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		409		{object}	error
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/users [post]
func (app *application) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	role, err := app.store.Roles.GetByID(r.Context(), payload.RoleID)
	if err != nil {
		if errors.Is(err, roles.ErrNotFound) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	user := &users.User{
		Name:   payload.Name,
		Email:  payload.Email,
		RoleID: role.ID,
		Status: users.StatusActive,
	}
	if err := user.Password.Set(payload.Password); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	created, err := app.store.Users.Create(r.Context(), user)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateEmail) {
			app.conflictResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.appendAuditEvent(r, audit.ActionUserCreated, "user", &created.ID, map[string]any{
		"email": created.Email,
		"role":  role.Name,
	}, nil)

	// Welcome email is best effort; the account exists either way.
	go func() {
		data := struct {
			Username string
			RoleName string
			LoginURL string
		}{
			Username: created.Name,
			RoleName: role.Name,
			LoginURL: app.config.frontendURL + "/login",
		}
		status, err := app.mailer.Send(mailer.UserWelcomeTemplate, created.Name, created.Email, data)
		if err != nil {
			app.logger.Errorw("error sending welcome email", "email", created.Email, "error", err)
			return
		}
		app.logger.Infow("welcome email sent", "email", created.Email, "status code", status)
	}()

	if err := app.jsonResponse(w, http.StatusCreated, created); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listUsersHandler godoc
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			page	query		int	false	"Page number"
//	@Success		200		{object}	map[string]any
//	@Security		ApiKeyAuth
//	@Router			/users [get]
func (app *application) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Users.List(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	p.ComputeMeta(total)

	response := map[string]any{
		"users":      list,
		"pagination": p,
	}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateUserPayload struct {
	Name   *string `json:"name" validate:"omitempty,max=100"`
	Email  *string `json:"email" validate:"omitempty,email,max=255"`
	RoleID *int64  `json:"role_id" validate:"omitempty,min=1"`
}

// updateUserHandler godoc
//
//	@Summary		Update a user
//	@Description	Patches name, email or role. Role changes take effect on the user's next request.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			userID	path		int					true	"User ID"
//	@Param			payload	body		UpdateUserPayload	true	"Fields to update"
//	@Success		200		{object}	users.User
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		404		{object}	error
//	@Failure		409		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/{userID} [patch]
func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var payload UpdateUserPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.store.Users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	changes := map[string]any{}
	if payload.Name != nil {
		user.Name = *payload.Name
		changes["name"] = *payload.Name
	}
	if payload.Email != nil {
		available, err := app.store.Users.IsEmailAvailable(r.Context(), *payload.Email, user.ID)
		if err != nil {
			app.internalServerError(w, r, err)
			return
		}
		if !available {
			app.conflictResponse(w, r, users.ErrDuplicateEmail)
			return
		}
		user.Email = *payload.Email
		changes["email"] = *payload.Email
	}
	if payload.RoleID != nil {
		role, err := app.store.Roles.GetByID(r.Context(), *payload.RoleID)
		if err != nil {
			if errors.Is(err, roles.ErrNotFound) {
				app.badRequestResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
		user.RoleID = role.ID
		changes["role"] = role.Name
	}

	if err := app.store.Users.Update(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, users.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, users.ErrDuplicateEmail):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.appendAuditEvent(r, audit.ActionUserUpdated, "user", &user.ID, changes, nil)

	if err := app.jsonResponse(w, http.StatusOK, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// suspendUserHandler godoc
//
//	@Summary		Suspend a user
//	@Description	Suspended users keep their record but can no longer authenticate or act.
//	@Tags			users
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	map[string]string
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/{userID}/suspend [put]
func (app *application) suspendUserHandler(w http.ResponseWriter, r *http.Request) {
	app.setUserStatusHandler(w, r, users.StatusSuspended, audit.ActionUserSuspended)
}

// activateUserHandler godoc
//
//	@Summary		Reactivate a suspended user
//	@Tags			users
//	@Produce		json
//	@Param			userID	path		int	true	"User ID"
//	@Success		200		{object}	map[string]string
//	@Failure		404		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/users/{userID}/activate [put]
func (app *application) activateUserHandler(w http.ResponseWriter, r *http.Request) {
	app.setUserStatusHandler(w, r, users.StatusActive, audit.ActionUserActivated)
}

func (app *application) setUserStatusHandler(w http.ResponseWriter, r *http.Request, status users.Status, action string) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.Users.SetStatus(r.Context(), userID, status); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	// Revoke the refresh token so a suspended user cannot mint new access tokens.
	if status == users.StatusSuspended {
		if err := app.store.Users.DeleteRefreshToken(r.Context(), userID); err != nil {
			app.internalServerError(w, r, err)
			return
		}
	}

	app.appendAuditEvent(r, action, "user", &userID, map[string]any{"status": string(status)}, nil)

	response := map[string]string{"status": string(status)}
	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// appendAuditEvent records an administrative action against the trail. Audit
// failures are logged, never surfaced; the admin action itself already took
// effect.
func (app *application) appendAuditEvent(r *http.Request, action, entity string, entityID *int64, changes, metadata map[string]any) {
	identity := getIdentityFromContext(r)
	if identity == nil {
		return
	}

	event := &audit.Event{
		ActorID:   identity.ID,
		ActorName: identity.Name,
		ActorRole: identity.Role,
		Action:    action,
		Entity:    &entity,
		EntityID:  entityID,
		Changes:   changes,
		Metadata:  metadata,
	}
	if err := app.store.Audit.Append(r.Context(), event); err != nil {
		app.logger.Errorw("error appending audit event", "action", action, "error", err)
	}
}
