package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"ferrybackend/internal/services"
)

// AlertExpiryWorker periodically sweeps active alerts whose window elapsed
// without a notification and moves them to expired.
type AlertExpiryWorker struct {
	alerts   services.AlertService
	interval time.Duration
}

func NewAlertExpiryWorker(alerts services.AlertService, interval time.Duration) *AlertExpiryWorker {
	return &AlertExpiryWorker{
		alerts:   alerts,
		interval: interval,
	}
}

func (w *AlertExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("alert expiry worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("alert expiry worker stopped")
			return
		case <-ticker.C:
			expired, err := w.alerts.ExpireDue(ctx)
			if err != nil {
				logrus.Errorf("alert expiry sweep failed: %v", err)
				continue
			}
			if expired > 0 {
				logrus.Infof("expired %d alert(s)", expired)
			}
		}
	}
}
