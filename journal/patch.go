package journal

import "time"

// Patch is a sparse update applied by the store. Nil fields are left alone.
type Patch struct {
	ClosedAt    *string   `json:"closedAt,omitempty"`
	CloseReason *string   `json:"closeReason,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Images      *[]string `json:"images,omitempty"`
}

func (p Patch) IsZero() bool {
	return p.ClosedAt == nil && p.CloseReason == nil && p.Notes == nil && p.Images == nil
}

// Apply returns a copy of t with p applied. t is not modified.
func Apply(t TradeRecord, p Patch) TradeRecord {
	out := t
	out.Images = cloneImages(t.Images)
	if p.ClosedAt != nil {
		out.ClosedAt = *p.ClosedAt
	}
	if p.CloseReason != nil {
		out.CloseReason = *p.CloseReason
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.Images != nil {
		out.Images = cloneImages(*p.Images)
	}
	return out
}

// ClosePatch builds the patch that closes a trade at the given time.
func ClosePatch(at time.Time, reason string) Patch {
	closedAt := FormatTime(at)
	return Patch{ClosedAt: &closedAt, CloseReason: &reason}
}

// Close returns t closed at the given time with reason.
func Close(t TradeRecord, at time.Time, reason string) TradeRecord {
	return Apply(t, ClosePatch(at, reason))
}
