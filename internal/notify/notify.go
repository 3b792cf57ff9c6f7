package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dori/larder/internal/view"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Timeout in milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "larder")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// SendExpiryAlert surfaces the aggregate expiry notice as a desktop
// notification. Nothing is sent when there is nothing to warn about.
// Any expired item raises the urgency to critical.
func (n *Notifier) SendExpiryAlert(notices view.Notices) error {
	if notices.Empty() {
		return nil
	}

	var lines []string
	if len(notices.Expired) > 0 {
		lines = append(lines, "Expired:")
		for _, it := range notices.Expired {
			lines = append(lines, fmt.Sprintf("  %s (%s)", it.Name, it.Date))
		}
	}
	if len(notices.Upcoming) > 0 {
		lines = append(lines, "Expiring soon:")
		for _, it := range notices.Upcoming {
			lines = append(lines, fmt.Sprintf("  %s (%s)", it.Name, it.Date))
		}
	}

	urgency := UrgencyNormal
	if len(notices.Expired) > 0 {
		urgency = UrgencyCritical
	}

	return n.Send(Notification{
		Title:   "Check your larder",
		Body:    strings.Join(lines, "\n"),
		Urgency: urgency,
		Timeout: 15 * time.Second,
		Icon:    "appointment-soon-symbolic",
	})
}
