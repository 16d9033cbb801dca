package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/rxtech-lab/argo-signal/internal/logger"
)

// LogNotifier writes alerts to the application log.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Name() string {
	return "log"
}

func (n *LogNotifier) Send(_ context.Context, alert Alert) error {
	n.logger.Info(alert.Message,
		zap.String("alert_id", alert.ID),
		zap.String("symbol", alert.Symbol),
		zap.String("subject", alert.Subject),
		zap.Int("signal", int(alert.Signal)),
		zap.Float64("price", alert.Price),
	)

	return nil
}
