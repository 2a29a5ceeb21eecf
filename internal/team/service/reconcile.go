package service

import (
	teamModel "github.com/festy23/as_manager/internal/team/model"
)

// Reconcile computes the membership change for a team save.
//
// members are the current member ids; add and remove are the requested
// changes. An id present in both add and remove is removed. The contact
// person, when set, is never removed and joins the team if not already a
// member. Adds of current members and removes of non-members are dropped,
// so the plan touches only rows that change.
func Reconcile(contact *int64, members, add, remove []int64) teamModel.Plan {
	isMember := make(map[int64]bool, len(members))
	for _, id := range members {
		isMember[id] = true
	}

	removing := make(map[int64]bool, len(remove))
	for _, id := range remove {
		removing[id] = true
	}

	adding := make(map[int64]bool, len(add))
	for _, id := range add {
		if !removing[id] {
			adding[id] = true
		}
	}

	if contact != nil {
		delete(removing, *contact)
		if !isMember[*contact] {
			adding[*contact] = true
		}
	}

	var plan teamModel.Plan
	for id := range adding {
		if !isMember[id] {
			plan.Add = append(plan.Add, id)
		}
	}
	for id := range removing {
		if isMember[id] {
			plan.Remove = append(plan.Remove, id)
		}
	}
	plan.Add = teamModel.SortedIDs(plan.Add)
	plan.Remove = teamModel.SortedIDs(plan.Remove)
	return plan
}
