package mailer

import (
	"bytes"
	"context"
	"net/smtp"
	"sync"
	"testing"
	"time"

	"github.com/ubhospitality/inventory-backend/pkg/config"
	"github.com/ubhospitality/inventory-backend/pkg/logger"
)

type capturedSend struct {
	addr string
	from string
	to   []string
	msg  []byte
}

func newTestSender(t *testing.T, cfg config.MailConfig) (*smtpSender, chan capturedSend) {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "mailer-test", Output: &bytes.Buffer{}})
	sends := make(chan capturedSend, 1)
	s := &smtpSender{
		cfg:  cfg,
		logg: logg,
		send: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
			sends <- capturedSend{addr: addr, from: from, to: to, msg: msg}
			return nil
		},
	}
	return s, sends
}

func TestSendVerificationEmail(t *testing.T) {
	cfg := config.MailConfig{
		Host:        "smtp.example.com",
		Port:        587,
		DefaultFrom: "noreply@example.com",
	}
	s, sends := newTestSender(t, cfg)

	s.SendVerificationEmail(context.Background(), "user@example.com", "https://app.example.com/verify?token=abc")

	select {
	case got := <-sends:
		if got.addr != "smtp.example.com:587" {
			t.Fatalf("addr = %q", got.addr)
		}
		if got.from != "noreply@example.com" {
			t.Fatalf("from = %q", got.from)
		}
		if len(got.to) != 1 || got.to[0] != "user@example.com" {
			t.Fatalf("to = %v", got.to)
		}
		if !bytes.Contains(got.msg, []byte("Subject: Verify your email address")) {
			t.Fatalf("missing subject header in message:\n%s", got.msg)
		}
		if !bytes.Contains(got.msg, []byte("https://app.example.com/verify?token=abc")) {
			t.Fatalf("missing verify link in message:\n%s", got.msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send was never invoked")
	}
}

func TestDeliverSkipsWhenDisabled(t *testing.T) {
	s, _ := newTestSender(t, config.MailConfig{})

	var mu sync.Mutex
	called := false
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		mu.Lock()
		called = true
		mu.Unlock()
		return nil
	}

	s.SendPasswordResetEmail(context.Background(), "user@example.com", "https://app.example.com/reset?token=x")

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if called {
		t.Fatal("expected no delivery when mail is disabled")
	}
}
