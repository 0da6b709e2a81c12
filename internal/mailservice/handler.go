package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/arvanweb/sitecms/internal/common"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender, notify string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		notify: notify,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SendContactNotification consumes contact.submitted events and mails each
// submission to the configured inbox. Delivery is retried with exponential
// backoff and jitter; a submission that still fails is acked and logged so
// the queue never wedges on one bad message.
func (s *MailService) SendContactNotification() {
	msgs, err := s.mb.Consume(common.ContactSubmittedKey, common.ContentExchange, common.ContactQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data ContactMessage
				if err := json.Unmarshal(msg.Body, &data); err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(s.notify, data, "contact_email.html")
					if err == nil {
						s.logger.Info("contact notification sent", slog.String("from", data.Email))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying contact notification", slog.String("from", data.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send contact notification", slog.String("from", data.Email))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping contact notification consumer")
				return
			}
		}
	}()
}

func (s *MailService) Close() {
	s.cancel()
}
