package detector

import (
	"github.com/TinyKitten/trainlcd-cli/internal/models"
)

// NotificationKind tells which event triggered a notification
type NotificationKind int

const (
	NotifyApproaching NotificationKind = iota
	NotifyArrived
)

func (k NotificationKind) String() string {
	if k == NotifyArrived {
		return "arrived"
	}
	return "approaching"
}

// Notification is emitted once per station and kind for flagged stations
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Station models.Station   `json:"station"`
}

// SetFlagged replaces the set of stations the rider wants to be notified
// about. Notification history is cleared only when the set changes.
func (d *Detector) SetFlagged(ids []int64) {
	next := make(map[int64]bool, len(ids))
	for _, id := range ids {
		next[id] = true
	}
	if sameSet(d.flagged, next) {
		return
	}
	d.flagged = next
	d.lastNotified = map[NotificationKind]int64{}
}

// Flagged reports whether notifications are enabled for a station id
func (d *Detector) Flagged(id int64) bool {
	return d.flagged[id]
}

func (d *Detector) notify(kind NotificationKind, s *models.Station) *Notification {
	if s == nil || !d.flagged[s.ID] {
		return nil
	}
	if last, ok := d.lastNotified[kind]; ok && last == s.ID {
		return nil
	}
	d.lastNotified[kind] = s.ID
	return &Notification{Kind: kind, Station: *s}
}

func sameSet(a, b map[int64]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
