package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apexhome/products-manager/internal/entity"
)

const CapacityAlert = "capacity_alert.gohtml"

type capacityAlertData struct {
	Kind      string
	Key       string
	Issued    int64
	Limit     int64
	Remaining int64
	Percent   int64
}

// QueueCapacityAlert stores one alert mail per recipient. The worker delivers them,
// so allocation never waits on the mail API.
func (m *Mailer) QueueCapacityAlert(ctx context.Context, alert *entity.CapacityAlert) error {
	if len(m.c.AlertRecipients) == 0 {
		slog.Default().WarnContext(ctx, "no alert recipients configured, capacity alert dropped",
			slog.String("bucket", alert.Bucket.String()),
		)
		return nil
	}

	data := capacityAlertData{
		Kind:      string(alert.Bucket.Kind),
		Key:       alert.Bucket.Key,
		Issued:    alert.Issued,
		Limit:     alert.Bucket.Limit,
		Remaining: alert.Bucket.Limit - alert.Issued,
	}
	if alert.Bucket.Limit > 0 {
		data.Percent = alert.Issued * 100 / alert.Bucket.Limit
	}
	html, err := m.render(CapacityAlert, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Sequence bucket %s is %d%% full", alert.Bucket.String(), data.Percent)

	for _, to := range m.c.AlertRecipients {
		if _, err := m.mailRepository.AddMail(ctx, &entity.SendEmailRequest{
			From:    m.c.FromEmail,
			To:      to,
			Html:    html,
			Subject: subject,
		}); err != nil {
			return fmt.Errorf("error inserting email: %w", err)
		}
	}
	return nil
}
