package http

import (
	"net/http"

	"github.com/aussiebroadwan/idgate/internal/auth/service"
	"github.com/aussiebroadwan/idgate/pkg/authsdk"
	"github.com/aussiebroadwan/idgate/pkg/httpx"
)

// RolesHandler serves the ADMIN-only role endpoints.
type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList handles GET /v1/admin/roles
//
//	@Summary		List all roles
//	@Description	Returns every role in the system. Requires the ADMIN role.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	authsdk.ListRolesResponse	"List of roles"
//	@Failure		401	{object}	authsdk.ErrorResponse		"Missing, invalid or temporary token"
//	@Failure		403	{object}	authsdk.ErrorResponse		"Caller is not ADMIN"
//	@Failure		500	{object}	authsdk.ErrorResponse		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/admin/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListRoles(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := authsdk.ListRolesResponse{
		Roles: make([]authsdk.RoleInfo, len(roles)),
	}
	for i, role := range roles {
		response.Roles[i] = authsdk.RoleInfo{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// HandleGrant handles PUT /v1/admin/identities/{id}/roles/{role}
//
//	@Summary		Grant a role
//	@Description	Gives the identity the named role. Granting a held role succeeds. Takes effect at the identity's next login.
//	@Tags			Admin
//	@Param			id		path	string	true	"Identity ID"
//	@Param			role	path	string	true	"Role name"	example(MODERATOR)
//	@Success		204		"Role granted"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Missing, invalid or temporary token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Caller is not ADMIN"
//	@Failure		404		{object}	authsdk.ErrorResponse	"Unknown identity or role"
//	@Security		BearerAuth
//	@Router			/v1/admin/identities/{id}/roles/{role} [put].
func (h *RolesHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	if err := h.RolesService.GrantRole(r.Context(), r.PathValue("id"), r.PathValue("role")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRevoke handles DELETE /v1/admin/identities/{id}/roles/{role}
//
//	@Summary		Revoke a role
//	@Description	Removes the named role from the identity. Takes effect at the identity's next login.
//	@Tags			Admin
//	@Param			id		path	string	true	"Identity ID"
//	@Param			role	path	string	true	"Role name"	example(MODERATOR)
//	@Success		204		"Role revoked"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Missing, invalid or temporary token"
//	@Failure		403		{object}	authsdk.ErrorResponse	"Caller is not ADMIN"
//	@Failure		404		{object}	authsdk.ErrorResponse	"Unknown identity, role, or role not held"
//	@Security		BearerAuth
//	@Router			/v1/admin/identities/{id}/roles/{role} [delete].
func (h *RolesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.RolesService.RevokeRole(r.Context(), r.PathValue("id"), r.PathValue("role")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
