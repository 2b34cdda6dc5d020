// Package session holds per-browser state: the logged-in principal and the
// picks shortlist. Nothing here touches the database; a session lives in
// the configured Store until its TTL runs out.
package session

import "context"

// Session is the value stored per session id. Picks are namespaced by
// tenant slug so a shortlist built under one restaurant never shows up
// under another.
type Session struct {
	UserID uint              `json:"user_id,omitempty"`
	Picks  map[string][]uint `json:"picks,omitempty"`
}

// AddPick appends the item to the tenant's shortlist. Adding an id that is
// already present is a no-op; first-added order is preserved.
func (s *Session) AddPick(tenant string, itemID uint) {
	for _, id := range s.Picks[tenant] {
		if id == itemID {
			return
		}
	}
	if s.Picks == nil {
		s.Picks = make(map[string][]uint)
	}
	s.Picks[tenant] = append(s.Picks[tenant], itemID)
}

// RemovePick drops the item from the tenant's shortlist, silently doing
// nothing when it is not there.
func (s *Session) RemovePick(tenant string, itemID uint) {
	picks := s.Picks[tenant]
	for i, id := range picks {
		if id == itemID {
			s.Picks[tenant] = append(picks[:i], picks[i+1:]...)
			return
		}
	}
}

// ClearPicks empties the tenant's shortlist.
func (s *Session) ClearPicks(tenant string) {
	if s.Picks != nil {
		delete(s.Picks, tenant)
	}
}

// TenantPicks returns the tenant's shortlist in first-added order.
func (s *Session) TenantPicks(tenant string) []uint {
	return s.Picks[tenant]
}

// clone deep-copies the session. The Picks map would otherwise be shared
// between the stored value and whatever the caller mutates.
func (s *Session) clone() Session {
	out := Session{UserID: s.UserID}
	if s.Picks != nil {
		out.Picks = make(map[string][]uint, len(s.Picks))
		for tenant, ids := range s.Picks {
			out.Picks[tenant] = append([]uint(nil), ids...)
		}
	}
	return out
}

// Store persists sessions keyed by id.
type Store interface {
	// Get returns the session for sid, or a fresh empty session when the
	// id is unknown or expired.
	Get(ctx context.Context, sid string) (*Session, error)
	// Save writes the session back, resetting its TTL.
	Save(ctx context.Context, sid string, s *Session) error
	// Delete discards the session.
	Delete(ctx context.Context, sid string) error
}
