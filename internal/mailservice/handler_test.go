package mailservice

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendContactNotification(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		notify: "info@arvanweb.ir",
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	s.SendContactNotification()

	time.Sleep(1 * time.Second)

	assert.True(t, mockMailer.Called, "expected a notification to be sent")
	assert.Equal(t, "info@arvanweb.ir", mockMailer.Email, "notifications go to the configured inbox, not the visitor")

	t.Cleanup(func() {
		s.Close()
	})
}
