// Package notify adapts Fyne desktop notifications to the timer's Notifier
// contract. Delivery is best-effort; the caller swallows failures.
package notify

import "fyne.io/fyne/v2"

// FyneNotifier sends desktop notifications through the Fyne app.
type FyneNotifier struct {
	app fyne.App
}

// New creates a notifier bound to the app.
func New(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app}
}

// Notify shows a desktop notification. Fyne has no urgency hint, so the
// urgent flag is accepted and ignored.
func (notifier *FyneNotifier) Notify(title, body string, urgent bool) error {
	notifier.app.SendNotification(fyne.NewNotification(title, body))
	return nil
}
