package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func id(v int64) *int64 { return &v }

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		contact    *int64
		members    []int64
		add        []int64
		remove     []int64
		wantAdd    []int64
		wantRemove []int64
	}{
		{
			name:       "nothing requested",
			members:    []int64{1, 2},
			wantAdd:    []int64{},
			wantRemove: []int64{},
		},
		{
			name:       "plain add and remove",
			members:    []int64{1, 2},
			add:        []int64{3},
			remove:     []int64{2},
			wantAdd:    []int64{3},
			wantRemove: []int64{2},
		},
		{
			name:       "contact joins when not a member",
			contact:    id(9),
			members:    []int64{1},
			wantAdd:    []int64{9},
			wantRemove: []int64{},
		},
		{
			name:       "contact already a member adds nothing",
			contact:    id(1),
			members:    []int64{1},
			wantAdd:    []int64{},
			wantRemove: []int64{},
		},
		{
			name:       "contact is never removed",
			contact:    id(1),
			members:    []int64{1, 2},
			remove:     []int64{1, 2},
			wantAdd:    []int64{},
			wantRemove: []int64{2},
		},
		{
			name:       "contact in add and remove while not a member still joins",
			contact:    id(5),
			members:    []int64{1},
			add:        []int64{5},
			remove:     []int64{5},
			wantAdd:    []int64{5},
			wantRemove: []int64{},
		},
		{
			name:       "id in both sets is removed",
			members:    []int64{1, 2},
			add:        []int64{2, 3},
			remove:     []int64{2, 3},
			wantAdd:    []int64{},
			wantRemove: []int64{2},
		},
		{
			name:       "adds of members and removes of non-members are dropped",
			members:    []int64{1, 2},
			add:        []int64{1, 4},
			remove:     []int64{7, 2},
			wantAdd:    []int64{4},
			wantRemove: []int64{2},
		},
		{
			name:       "duplicates and order",
			members:    []int64{10, 20},
			add:        []int64{5, 3, 5, 3},
			remove:     []int64{20, 10, 20},
			wantAdd:    []int64{3, 5},
			wantRemove: []int64{10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Reconcile(tt.contact, tt.members, tt.add, tt.remove)
			assert.Equal(t, tt.wantAdd, plan.Add)
			assert.Equal(t, tt.wantRemove, plan.Remove)
		})
	}
}

func TestReconcile_Properties(t *testing.T) {
	members := []int64{1, 2, 3, 4}
	add := []int64{3, 5, 6, 7}
	remove := []int64{1, 6, 8, 4}
	contact := id(4)

	plan := Reconcile(contact, members, add, remove)

	isMember := map[int64]bool{1: true, 2: true, 3: true, 4: true}
	for _, a := range plan.Add {
		assert.False(t, isMember[a], "add %d is already a member", a)
		assert.NotContains(t, plan.Remove, a)
	}
	for _, r := range plan.Remove {
		assert.True(t, isMember[r], "remove %d is not a member", r)
		assert.NotEqual(t, *contact, r)
	}
	assert.Equal(t, []int64{5, 7}, plan.Add)
	assert.Equal(t, []int64{1}, plan.Remove)
}
