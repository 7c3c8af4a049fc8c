package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// ListRoles retrieves all roles. Requires ADMIN.
func (s *Session) ListRoles(ctx context.Context) (*ListRolesResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/admin/roles", nil)
	if err != nil {
		return nil, err
	}

	var rolesResp ListRolesResponse
	if err := decodeJSON(resp, &rolesResp, http.StatusOK); err != nil {
		return nil, err
	}
	return &rolesResp, nil
}

// GrantRole gives an identity a role. Requires ADMIN.
func (s *Session) GrantRole(ctx context.Context, identityID, role string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPut, identityRolePath(identityID, role), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// RevokeRole removes a role from an identity. Requires ADMIN.
func (s *Session) RevokeRole(ctx context.Context, identityID, role string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, identityRolePath(identityID, role), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func identityRolePath(identityID, role string) string {
	return "/v1/admin/identities/" + url.PathEscape(identityID) + "/roles/" + url.PathEscape(role)
}
