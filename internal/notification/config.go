package notification

import (
	"github.com/rxtech-lab/argo-signal/internal/logger"
)

// WebhookConfig configures the webhook notifier.
type WebhookConfig struct {
	URL     string            `yaml:"url" json:"url" jsonschema:"title=Webhook URL" validate:"required,url"`
	Headers map[string]string `yaml:"headers" json:"headers,omitempty" jsonschema:"title=Extra request headers"`
}

// Config selects the alert channels.
type Config struct {
	Log          bool           `yaml:"log" json:"log" jsonschema:"title=Log alerts,default=true"`
	NotifyOnHold bool           `yaml:"notify_on_hold" json:"notify_on_hold" jsonschema:"title=Notify hold signals,default=false"`
	Webhook      *WebhookConfig `yaml:"webhook" json:"webhook,omitempty" validate:"omitempty"`
	Email        *EmailConfig   `yaml:"email" json:"email,omitempty" validate:"omitempty"`
}

// New builds a Multi over the channels enabled in config.
func New(config Config, log *logger.Logger) *Multi {
	var notifiers []Notifier

	if config.Log {
		notifiers = append(notifiers, NewLogNotifier(log))
	}

	if config.Webhook != nil {
		notifiers = append(notifiers, NewWebhookNotifier(config.Webhook.URL, config.Webhook.Headers))
	}

	if config.Email != nil {
		notifiers = append(notifiers, NewEmailNotifier(*config.Email))
	}

	return NewMulti(notifiers...)
}
