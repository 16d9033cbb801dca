// Package notification delivers trading alerts. Every channel implements
// Notifier; Multi fans an alert out to several of them.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Alert is one message about one instrument.
type Alert struct {
	ID      string            `json:"id"`
	Symbol  string            `json:"symbol"`
	Subject string            `json:"subject"`
	Message string            `json:"message"`
	Signal  types.SignalGrade `json:"signal"`
	Price   float64           `json:"price"`
	Time    time.Time         `json:"time"`
}

// Subject returns the alert subject used for symbol.
func Subject(symbol string) string {
	return fmt.Sprintf("Alerta de Trading: %s", symbol)
}

// Notifier sends alerts to one channel.
type Notifier interface {
	// Name identifies the channel in logs.
	Name() string
	Send(ctx context.Context, alert Alert) error
}

// Multi sends every alert to all of its notifiers. A failing channel does not
// stop the others; their errors are joined.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a notifier fanning out to notifiers.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

func (m *Multi) Name() string {
	return "multi"
}

func (m *Multi) Send(ctx context.Context, alert Alert) error {
	var errs []error

	for _, n := range m.notifiers {
		if err := n.Send(ctx, alert); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}

	return errors.Join(errs...)
}

// Len returns the number of channels.
func (m *Multi) Len() int {
	return len(m.notifiers)
}
