package main

import (
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/shiftlog-dev/earnings/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

type mailTemplate struct {
	File    string
	Subject string
}

var templatesDir = "./templates"

var mailTemplates = map[string]mailTemplate{
	domain.MailTypeWelcome: {
		File:    "welcome.html",
		Subject: "打工收入记录 - 欢迎注册",
	},
	domain.MailTypeResetPassword: {
		File:    "reset_password.html",
		Subject: "打工收入记录 - 重置密码",
	},
	domain.MailTypeWeeklyLimitExceeded: {
		File:    "weekly_limit_exceeded.html",
		Subject: "打工收入记录 - 本周工时已超出上限",
	},
}

// buildMessage 根据邮件类型选择模板并渲染邮件，返回的错误都表示消息本身有问题，不应该重新入队
func buildMessage(from string, mailMessage domain.MailMessage) (*mail.Msg, error) {
	mt, ok := mailTemplates[mailMessage.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型: %s", mailMessage.Type)
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("无法设置邮件发件人: %w", err)
	}
	if err := m.To(mailMessage.To); err != nil {
		return nil, fmt.Errorf("无法设置邮件收件人: %w", err)
	}

	tmpl, err := template.ParseFiles(filepath.Join(templatesDir, mt.File))
	if err != nil {
		return nil, fmt.Errorf("无法解析邮件模板: %w", err)
	}
	if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		return nil, fmt.Errorf("无法设置邮件正文: %w", err)
	}
	m.Subject(mt.Subject)

	return m, nil
}
