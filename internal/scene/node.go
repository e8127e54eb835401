// Package scene provides the attachment point the mesh builder renders into.
package scene

import (
	"sync"

	"pointquad-renderer/internal/quadmesh"
)

// Node displays at most one renderable. It is safe for concurrent use: the
// builder's background finalizations write to it while the frame loop reads.
type Node struct {
	Name string

	mu         sync.RWMutex
	enabled    bool
	renderable *quadmesh.Renderable
	updates    int
}

// NewNode returns an enabled node with nothing displayed.
func NewNode(name string) *Node {
	return &Node{Name: name, enabled: true}
}

func (n *Node) Enabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

func (n *Node) SetEnabled(enabled bool) {
	n.mu.Lock()
	n.enabled = enabled
	n.mu.Unlock()
}

// SetRenderable replaces the displayed renderable; nil clears it.
func (n *Node) SetRenderable(r *quadmesh.Renderable) {
	n.mu.Lock()
	n.renderable = r
	n.updates++
	n.mu.Unlock()
}

// Renderable returns the displayed renderable, or nil.
func (n *Node) Renderable() *quadmesh.Renderable {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.renderable
}

// Updates counts SetRenderable calls.
func (n *Node) Updates() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.updates
}
