package mailer

import (
	"CodeConnect/internal/api/config"
	"context"
	"crypto/tls"
	"fmt"
	log "log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const dialTimeout = 30 * time.Second

// SendResult 单次发送结果
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

// Send 通过 SMTP 发送一封 HTML 邮件
func Send(ctx context.Context, to, subject, htmlBody string) (*SendResult, error) {
	cfg := config.Cfg.Mail
	messageID := fmt.Sprintf("<%d@%s>", time.Now().UnixNano(), cfg.Host)

	msg := buildMessage(&cfg, to, subject, htmlBody, messageID)
	if err := sendSMTP(ctx, &cfg, to, msg); err != nil {
		log.ErrorContext(ctx, "send mail failed", "to", to, "err", err)
		return &SendResult{Success: false, Error: err.Error()}, err
	}

	return &SendResult{Success: true, MessageID: messageID}, nil
}

func buildMessage(cfg *config.MailConfig, to, subject, htmlBody, messageID string) string {
	fromName := cfg.FromName
	if fromName == "" {
		fromName = "CodeConnect"
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Message-ID: %s\r\n", messageID))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.String()
}

func sendSMTP(ctx context.Context, cfg *config.MailConfig, to, msg string) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if cfg.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if cfg.Username != "" && cfg.Password != "" {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(cfg.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	// 消息已发出，Quit 失败不视为错误
	_ = client.Quit()
	return nil
}
