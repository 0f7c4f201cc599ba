package services

import (
	"testing"

	"learnhub/backend/models"

	"github.com/stretchr/testify/assert"
)

func statuses(nodes []NodeView) []string {
	out := make([]string, len(nodes))
	for i, node := range nodes {
		out[i] = node.Status
	}
	return out
}

func countActive(nodes []NodeView) int {
	active := 0
	for _, node := range nodes {
		if node.Status == models.NodeActive {
			active++
		}
	}
	return active
}

func TestAnnotateStatusesFreshUser(t *testing.T) {
	nodes := []NodeView{
		{resolvable: true},
		{resolvable: true},
		{resolvable: true},
	}

	annotateStatuses(nodes)

	assert.Equal(t, []string{
		models.NodeActive,
		models.NodeLocked,
		models.NodeLocked,
	}, statuses(nodes))
}

func TestAnnotateStatusesFrontierAdvances(t *testing.T) {
	nodes := []NodeView{
		{resolvable: true, completed: true},
		{resolvable: true, completed: true},
		{resolvable: true},
		{resolvable: true},
	}

	annotateStatuses(nodes)

	assert.Equal(t, []string{
		models.NodeCompleted,
		models.NodeCompleted,
		models.NodeActive,
		models.NodeLocked,
	}, statuses(nodes))
	assert.Equal(t, 1, countActive(nodes), "exactly one frontier while anything is incomplete")
}

func TestAnnotateStatusesAllCompleted(t *testing.T) {
	nodes := []NodeView{
		{resolvable: true, completed: true},
		{resolvable: true, completed: true},
	}

	annotateStatuses(nodes)

	assert.Equal(t, []string{models.NodeCompleted, models.NodeCompleted}, statuses(nodes))
	assert.Equal(t, 0, countActive(nodes), "a fully completed path has no active node")
}

func TestAnnotateStatusesOutOfOrderCompletion(t *testing.T) {
	// Node 5 was completed before node 3; it stays completed while the
	// frontier sits on node 3.
	nodes := []NodeView{
		{resolvable: true, completed: true},
		{resolvable: true, completed: true},
		{resolvable: true},
		{resolvable: true},
		{resolvable: true, completed: true},
	}

	annotateStatuses(nodes)

	assert.Equal(t, []string{
		models.NodeCompleted,
		models.NodeCompleted,
		models.NodeActive,
		models.NodeLocked,
		models.NodeCompleted,
	}, statuses(nodes))
	assert.Equal(t, 1, countActive(nodes))
}

func TestAnnotateStatusesDanglingReference(t *testing.T) {
	nodes := []NodeView{
		{resolvable: false},
		{resolvable: true},
		{resolvable: true},
	}

	annotateStatuses(nodes)

	assert.Equal(t, []string{
		models.NodeLocked,
		models.NodeActive,
		models.NodeLocked,
	}, statuses(nodes), "a dangling node is locked and never takes the frontier")
}

func TestAnnotateStatusesEmptyPath(t *testing.T) {
	nodes := []NodeView{}
	annotateStatuses(nodes)
	assert.Empty(t, nodes)
}

func TestCountCompleted(t *testing.T) {
	nodes := []NodeView{
		{resolvable: true, completed: true},
		{resolvable: true},
		{resolvable: false, completed: true}, // dangling completions don't count
		{resolvable: true, completed: true},
	}

	assert.Equal(t, 2, countCompleted(nodes))
}
