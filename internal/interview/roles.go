package interview

import "strings"

// DefaultRoleID is the internal fallback role. It is used whenever a
// requested role id is absent and is never listed as selectable.
const DefaultRoleID = "default"

// RoleConfig is one entry of the fixed role table.
type RoleConfig struct {
	ID       string `json:"roleId"`
	Greeting string `json:"greeting"`
}

// RoleTable is the immutable role configuration, loaded once at startup.
type RoleTable struct {
	byID map[string]RoleConfig
	ids  []string
}

// NewRoleTable builds the fixed enumerated role table.
func NewRoleTable() *RoleTable {
	roles := []RoleConfig{
		{
			ID:       "software-engineer",
			Greeting: "Hi, thanks for joining today! I'll be conducting your software engineering interview. To get us started, tell me a bit about yourself and the kind of systems you enjoy building.",
		},
		{
			ID:       "product-manager",
			Greeting: "Hi, great to have you here! I'll be running your product management interview today. To kick things off, walk me through your background and a product you're proud of.",
		},
		{
			ID:       "data-analyst",
			Greeting: "Hi, thanks for making the time! I'll be conducting your data analyst interview. To start, tell me about your background and the kinds of data problems you've worked on.",
		},
		{
			ID:       DefaultRoleID,
			Greeting: "Hi, thanks for joining today! I'll be conducting your interview. To get us started, tell me a bit about yourself and your recent work.",
		},
	}

	table := &RoleTable{byID: make(map[string]RoleConfig, len(roles))}
	for _, role := range roles {
		table.byID[role.ID] = role
		if role.ID != DefaultRoleID {
			table.ids = append(table.ids, role.ID)
		}
	}
	return table
}

// Get resolves a role id, silently falling back to the default entry for
// unknown ids. This is deliberate policy, not an error path.
func (t *RoleTable) Get(id string) RoleConfig {
	if role, ok := t.byID[id]; ok {
		return role
	}
	return t.byID[DefaultRoleID]
}

// IDs returns the selectable role ids, excluding the internal default entry.
func (t *RoleTable) IDs() []string {
	ids := make([]string, len(t.ids))
	copy(ids, t.ids)
	return ids
}

// roleLabel turns a role id into the human-readable form used in prompts.
func roleLabel(id string) string {
	if id == DefaultRoleID {
		return "open"
	}
	return strings.ReplaceAll(id, "-", " ")
}
