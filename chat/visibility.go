package chat

import "github.com/batepapo/group-chat-api/models"

// VisibleTo filters msgs down to what identity may observe, preserving order.
// Public chat and status messages are visible to everyone; a private message
// only to its sender and recipient. A positive limit takes the tail of the
// FILTERED sequence, so private messages a reader cannot see never occupy
// slots of their window.
func VisibleTo(identity string, msgs []models.Message, limit int) []models.Message {
	visible := make([]models.Message, 0, len(msgs))
	for _, m := range msgs {
		if visibleTo(identity, m) {
			visible = append(visible, m)
		}
	}
	if limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	return visible
}

func visibleTo(identity string, m models.Message) bool {
	switch m.Kind {
	case models.KindMessage, models.KindStatus:
		return true
	case models.KindPrivateMessage:
		return m.From == identity || m.To == identity
	default:
		return false
	}
}
