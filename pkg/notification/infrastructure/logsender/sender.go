package logsender

import (
	"github.com/sirupsen/logrus"

	"github.com/Parshu2496/cosmic-bites/pkg/notification/domain/model"
)

var _ model.NotificationSender = &Sender{}

// Sender delivers notifications as log entries.
type Sender struct {
	logger logrus.FieldLogger
}

func New(logger logrus.FieldLogger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(n model.Notification) error {
	s.logger.WithFields(logrus.Fields{
		"item_id": n.ItemID,
		"body":    n.Body,
	}).Info(n.Title)
	return nil
}
