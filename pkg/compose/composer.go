package compose

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/settings"
)

// Composer turns alerts into notification payloads using the active
// settings snapshot for templates, colors, icons and sound preferences.
type Composer struct {
	cfg settings.Settings
}

// New creates a composer over cfg. Composers are cheap; build a fresh one
// from the current settings whenever composition is needed.
func New(cfg settings.Settings) *Composer {
	return &Composer{cfg: cfg}
}

// Compose builds the payload for alert, scheduled for delivery at.
// The payload id is supplied by the caller so that the lifecycle record and
// the platform notification share one identifier.
func (c *Composer) Compose(id string, alert alerts.Alert, at time.Time) Payload {
	title, message := c.text(alert)

	return Payload{
		ID:        id,
		Title:     title,
		Message:   message,
		ChannelID: ChannelFor(alert.Type),
		Color:     c.color(alert.Type),
		Icon:      c.icon(alert.Type),
		Sound:     c.sound(),
		Vibrate:   c.cfg.Sound.Vibrate,
		Badge:     c.cfg.Visual.ShowBadge,
		Metadata: Metadata{
			AlertID:     alert.ID,
			ProductID:   alert.ProductID,
			Type:        alert.Type,
			ScheduledAt: at,
		},
	}
}

// text resolves the title/message pair: composite alerts carry their own
// copy, templated types substitute placeholders, everything else falls
// back to fixed per-type wording.
func (c *Composer) text(alert alerts.Alert) (string, string) {
	if alert.Type == alerts.TypeBatchExpiring && alert.Batch != nil {
		return alert.Batch.Title, alert.Batch.Message
	}

	title := fallbackTitle(alert)
	if tmpl, ok := c.cfg.Messages.Templates[alert.Type]; ok && tmpl != "" {
		return title, substitute(tmpl, alert)
	}
	return title, fallbackMessage(alert)
}

// substitute replaces {placeholder} markers with values from the alert's
// product. Unknown markers are left untouched.
func substitute(tmpl string, alert alerts.Alert) string {
	r := strings.NewReplacer(
		"{productName}", alert.Product.Name,
		"{daysUntilExpiration}", strconv.Itoa(alert.DaysUntilExpiration),
		"{category}", alert.Product.Category,
		"{location}", alert.Product.Location,
		"{quantity}", strconv.Itoa(alert.Product.Quantity),
		"{brand}", alert.Product.Brand,
		"{expirationDate}", alert.Product.ExpirationDate.Format("2006-01-02"),
	)
	return r.Replace(tmpl)
}

func fallbackTitle(alert alerts.Alert) string {
	switch alert.Type {
	case alerts.TypeExpired:
		return "Item expired"
	case alerts.TypeCriticalExpiring:
		return "Item expiring today"
	case alerts.TypeExpiringSoon:
		return "Item expiring soon"
	case alerts.TypeConsumePriority:
		return "Consume soon"
	case alerts.TypeWasteWarning:
		return "Avoid food waste"
	case alerts.TypeBatchExpiring:
		return "Items expiring"
	default:
		return "Expiration reminder"
	}
}

func fallbackMessage(alert alerts.Alert) string {
	name := alert.Product.Name
	switch alert.Type {
	case alerts.TypeExpired:
		return fmt.Sprintf("%s expired %s ago.", name, days(-alert.DaysUntilExpiration))
	case alerts.TypeCriticalExpiring:
		return fmt.Sprintf("%s expires today. Use it now.", name)
	case alerts.TypeExpiringSoon:
		return fmt.Sprintf("%s expires in %s.", name, days(alert.DaysUntilExpiration))
	case alerts.TypeConsumePriority:
		return fmt.Sprintf("%s should be consumed within %s.", name, days(alert.DaysUntilExpiration))
	case alerts.TypeWasteWarning:
		return fmt.Sprintf("%s is about to go to waste. Expires in %s.", name, days(alert.DaysUntilExpiration))
	case alerts.TypeBatchExpiring:
		return fmt.Sprintf("%s and other items are expiring.", name)
	default:
		return fmt.Sprintf("Check %s before it expires.", name)
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func (c *Composer) color(t alerts.Type) string {
	if color, ok := c.cfg.Visual.Colors[t]; ok && color != "" {
		return color
	}
	return "default"
}

func (c *Composer) sound() string {
	if !c.cfg.Sound.Enabled {
		return ""
	}
	if c.cfg.Sound.Name != "" {
		return c.cfg.Sound.Name
	}
	return "default"
}

func (c *Composer) icon(t alerts.Type) string {
	if icon, ok := c.cfg.Visual.Icons[t]; ok && icon != "" {
		return icon
	}
	return "default"
}
