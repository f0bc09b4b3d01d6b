// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package surface holds the authoritative per-surface state.
package surface

import (
	"sync"

	"github.com/jeranaias/loom-tui/internal/datapath"
	"github.com/jeranaias/loom-tui/internal/protocol"
)

// RootComponentID is the reserved component id that marks a surface's
// rendering entry point. A surface without it renders to nothing.
const RootComponentID = "root"

// =============================================================================
// SURFACE
// =============================================================================

// Surface is one independently addressable UI instance: an opaque id,
// the catalog naming its component vocabulary (informational only),
// a component map keyed by component id, and the data model tree.
type Surface struct {
	ID         string
	CatalogID  string
	Components map[string]protocol.Component
	DataModel  any
}

// Component looks up a component by id.
func (s *Surface) Component(id string) (protocol.Component, bool) {
	c, ok := s.Components[id]
	return c, ok
}

// Root returns the rendering entry point, if the surface has one.
func (s *Surface) Root() (protocol.Component, bool) {
	return s.Component(RootComponentID)
}

// =============================================================================
// STORE
// =============================================================================

// Store owns the live set of surfaces. It is the only shared mutable
// resource in the interpreter: mutation happens solely through its
// methods, and Apply treats a whole batch as one critical section so
// concurrent batches for the same store serialize in receipt order
// rather than interleaving message-by-message.
type Store struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
	order    []string // creation order, for stable listing
}

// NewStore creates an empty surface store.
func NewStore() *Store {
	return &Store{surfaces: make(map[string]*Surface)}
}

// CreateSurface inserts a new surface with an empty component map and
// an empty data model. Re-creating an existing id resets it.
func (s *Store) CreateSurface(surfaceID, catalogID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createLocked(surfaceID, catalogID)
}

func (s *Store) createLocked(surfaceID, catalogID string) {
	if _, exists := s.surfaces[surfaceID]; !exists {
		s.order = append(s.order, surfaceID)
	}
	s.surfaces[surfaceID] = &Surface{
		ID:         surfaceID,
		CatalogID:  catalogID,
		Components: make(map[string]protocol.Component),
		DataModel:  make(map[string]any),
	}
}

// UpsertComponents inserts or fully overwrites components on a
// surface. Overwrite is total, not a merge. No-op for an unknown
// surface.
func (s *Store) UpsertComponents(surfaceID string, components []protocol.Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(surfaceID, components)
}

func (s *Store) upsertLocked(surfaceID string, components []protocol.Component) {
	surf, ok := s.surfaces[surfaceID]
	if !ok {
		return
	}
	for _, c := range components {
		if c.ID == "" {
			continue
		}
		surf.Components[c.ID] = c
	}
}

// SetDataModel writes value at path in the surface's data model; a
// root path replaces the whole tree. No-op for an unknown surface.
func (s *Store) SetDataModel(surfaceID, path string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setDataLocked(surfaceID, path, value)
}

func (s *Store) setDataLocked(surfaceID, path string, value any) {
	surf, ok := s.surfaces[surfaceID]
	if !ok {
		return
	}
	surf.DataModel = datapath.Set(surf.DataModel, path, value)
}

// RemoveDataModel deletes the node at path; a root path clears the
// data model. No-op for an unknown surface.
func (s *Store) RemoveDataModel(surfaceID, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeDataLocked(surfaceID, path)
}

func (s *Store) removeDataLocked(surfaceID, path string) {
	surf, ok := s.surfaces[surfaceID]
	if !ok {
		return
	}
	surf.DataModel = datapath.Remove(surf.DataModel, path)
}

// DeleteSurface removes a surface entirely. No-op if absent.
func (s *Store) DeleteSurface(surfaceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(surfaceID)
}

func (s *Store) deleteLocked(surfaceID string) {
	if _, ok := s.surfaces[surfaceID]; !ok {
		return
	}
	delete(s.surfaces, surfaceID)
	for i, id := range s.order {
		if id == surfaceID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// =============================================================================
// READ ACCESS
// =============================================================================

// ListSurfaces returns live surface ids in creation order.
func (s *Store) ListSurfaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of live surfaces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.surfaces)
}

// Snapshot returns an isolated copy of a surface: the component map is
// copied and the data model deep-cloned, so rendering can read it
// without holding the store lock and without observing later
// mutations. The second return is false for an unknown surface.
func (s *Store) Snapshot(surfaceID string) (*Surface, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	surf, ok := s.surfaces[surfaceID]
	if !ok {
		return nil, false
	}
	components := make(map[string]protocol.Component, len(surf.Components))
	for id, c := range surf.Components {
		components[id] = c
	}
	return &Surface{
		ID:         surf.ID,
		CatalogID:  surf.CatalogID,
		Components: components,
		DataModel:  datapath.Clone(surf.DataModel),
	}, true
}
