// Package model provides domain models and DTOs for team module.
package model

import (
	"sort"
	"strconv"
	"strings"

	"github.com/festy23/as_manager/internal/apperror"
	playerModel "github.com/festy23/as_manager/internal/player/model"
)

// SaveTeamRequest describes a team edit: new scalar fields plus the
// players to add to and remove from the membership.
type SaveTeamRequest struct {
	Name            string  `json:"name"              binding:"required,max=255"`
	ContactPersonID *int64  `json:"contact_person_id" binding:"omitempty,gt=0"`
	PlatoonID       *int64  `json:"platoon_id"        binding:"omitempty,gt=0"`
	Added           []int64 `json:"added"             binding:"omitempty,dive,gt=0"`
	Removed         []int64 `json:"removed"           binding:"omitempty,dive,gt=0"`
}

// CreateTeamRequest describes a new team and its initial members.
type CreateTeamRequest struct {
	Name            string  `json:"name"              binding:"required,max=255"`
	ContactPersonID *int64  `json:"contact_person_id" binding:"omitempty,gt=0"`
	PlatoonID       *int64  `json:"platoon_id"        binding:"omitempty,gt=0"`
	Members         []int64 `json:"members"           binding:"omitempty,dive,gt=0"`
}

// Plan is the effective membership change computed for a save.
type Plan struct {
	Add    []int64 `json:"add"`
	Remove []int64 `json:"remove"`
}

// Empty reports whether the plan changes no membership.
func (p Plan) Empty() bool {
	return len(p.Add) == 0 && len(p.Remove) == 0
}

// SaveResult is returned by a successful save.
type SaveResult struct {
	Team    Team                 `json:"team"`
	Added   []int64              `json:"added"`
	Removed []int64              `json:"removed"`
	Members []playerModel.Player `json:"members"`
}

// ListResponse wraps a list of teams for the JSON API.
type ListResponse struct {
	Teams []Team `json:"teams"`
	Total int    `json:"total"`
}

// ParseIDList parses a comma separated list of ids such as "1, 2,3".
// Blank entries are skipped. The result is sorted and de-duplicated.
func ParseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, apperror.Invalid("invalid player id %q", part)
		}
		ids = append(ids, id)
	}
	return SortedIDs(ids), nil
}

// FormatIDList is the inverse of ParseIDList.
func FormatIDList(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// SortedIDs returns a sorted copy of ids without duplicates. Never nil.
func SortedIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
