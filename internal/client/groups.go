// ABOUTME: Group and membership endpoints for the SkillSync API client
// ABOUTME: Covers group listing/creation, member administration and invitations

package client

import (
	"context"
	"fmt"
)

// Group is a study group the current user belongs to.
type Group struct {
	GroupID     string `json:"groupId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt,omitempty"`
	Role        string `json:"currentUserGroupRole,omitempty"`
}

// Member is one membership row in a group.
type Member struct {
	UserID       string `json:"userId"`
	MembershipID string `json:"membershipId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

// Invitation is a pending group invitation for the current user.
type Invitation struct {
	MembershipID string `json:"membershipId"`
	GroupID      string `json:"groupId"`
	GroupName    string `json:"groupName"`
	InviterEmail string `json:"inviterEmail"`
}

// CreateGroupRequest is the body for group creation.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MyGroups calls GET /api/groups/my-groups
func (c *Client) MyGroups(ctx context.Context) ([]Group, error) {
	p, err := c.do(ctx, "GET", "/api/groups/my-groups", nil)
	if err != nil {
		return nil, err
	}

	var groups []Group
	if err := p.decode(&groups); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return groups, nil
}

// CreateGroup calls POST /api/groups/create
func (c *Client) CreateGroup(ctx context.Context, name, description string) (*Group, error) {
	p, err := c.do(ctx, "POST", "/api/groups/create", CreateGroupRequest{Name: name, Description: description})
	if err != nil {
		return nil, err
	}

	var group Group
	if err := p.decode(&group); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return &group, nil
}

// GroupMembers calls GET /api/groups/{groupID}/members
func (c *Client) GroupMembers(ctx context.Context, groupID string) ([]Member, error) {
	p, err := c.do(ctx, "GET", fmt.Sprintf("/api/groups/%s/members", groupID), nil)
	if err != nil {
		return nil, err
	}

	var members []Member
	if err := p.decode(&members); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return members, nil
}

// RemoveMember calls DELETE /api/groups/{groupID}/members/{membershipID}.
// A 404 means the membership is already gone; callers decide whether that
// counts as success (MutationGuard does).
func (c *Client) RemoveMember(ctx context.Context, groupID, membershipID string) error {
	_, err := c.do(ctx, "DELETE", fmt.Sprintf("/api/groups/%s/members/%s", groupID, membershipID), nil)
	return err
}

// Invitations calls GET /api/notifications/invitations
func (c *Client) Invitations(ctx context.Context) ([]Invitation, error) {
	p, err := c.do(ctx, "GET", "/api/notifications/invitations", nil)
	if err != nil {
		return nil, err
	}

	var invitations []Invitation
	if err := p.decode(&invitations); err != nil {
		return nil, &NetworkError{msg: "invalid response from backend", err: err}
	}
	return invitations, nil
}
