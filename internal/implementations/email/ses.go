package email

import (
	"context"
	"registrar/internal/core/domain/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SES delivers raw MIME messages through Amazon SES.
type SES struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSES(awsConfig aws.Config, sender string) *SES {
	return &SES{ses: ses.NewFromConfig(awsConfig), sender: sender}
}

func (s *SES) Deliver(ctx context.Context, m mail.Message) error {
	if m.From == "" {
		m.From = s.sender
	}
	data, err := m.Bytes()
	if err != nil {
		return err
	}
	_, err = s.ses.SendRawEmail(
		ctx,
		&ses.SendRawEmailInput{
			Source:       aws.String(s.sender),
			Destinations: m.To,
			RawMessage:   &types.RawMessage{Data: data},
		},
	)
	return err
}
