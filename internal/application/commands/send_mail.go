package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/events"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/db"
	"github.com/Negosyo-Digital/platform-backend/internal/infra/mail"
	dbs "github.com/Negosyo-Digital/platform-backend/pkg/db"
	shared "github.com/Negosyo-Digital/platform-backend/pkg/interfaces"
)

type SendMail struct {
	server     *mail.MailServer
	uowFactory *dbs.UOWFactory
}

func NewSendMail(server *mail.MailServer, uowFactory *dbs.UOWFactory) *SendMail {
	return &SendMail{server: server, uowFactory: uowFactory}
}

// Handle delivers one outbox mail event: render, record, send. The returned
// UoW is finalized by the poller once the outbox row is marked.
func (c *SendMail) Handle(ctx context.Context, event events.SendMail) (shared.UoW, error) {
	mailData, err := mapToMailData(event)
	if err != nil {
		return nil, err
	}
	uow := c.uowFactory.GetUoW()
	tx, err := uow.Begin()
	if err != nil {
		return nil, err
	}

	htmlBody, err := mail.Render(mailData)
	if err != nil {
		return uow, err
	}

	record := db.Mail{
		MailType:   string(mailData.GetMailType()),
		Recipients: event.Recipient,
		Subject:    event.Subject,
		Content:    htmlBody,
		SentAt:     time.Now(),
	}
	_, err = tx.Exec(ctx, "INSERT INTO negosyo.mails(type, recipients, subject, content, sent_at) VALUES ($1,$2,$3,$4,$5)",
		record.MailType, record.Recipients, record.Subject, record.Content, record.SentAt,
	)
	if err != nil {
		return uow, err
	}
	if err = c.server.SendMail([]string{event.Recipient}, record.Subject, record.Content); err != nil {
		return uow, err
	}

	return uow, nil
}

func mapToMailData(event events.SendMail) (mail.MailData, error) {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return nil, fmt.Errorf("error mapping to mailData, %v", err)
	}

	switch event.Subject {
	case mail.SubmissionApprovedData{}.GetSubject():
		var data mail.SubmissionApprovedData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("error mapping to mailData, %v", err)
		}
		return data, nil
	case mail.SitePublishedData{}.GetSubject():
		var data mail.SitePublishedData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("error mapping to mailData, %v", err)
		}
		return data, nil
	case mail.PayoutCreditedData{}.GetSubject():
		var data mail.PayoutCreditedData
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("error mapping to mailData, %v", err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("no such mailData type exists")
}
