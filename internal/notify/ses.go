package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/rishiv/portfolio-api/internal/config"
	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/pkg/logger"
)

// SESNotifier sends submission notifications via AWS SES using SDK v2.
type SESNotifier struct {
	client   *sesv2.Client
	composer *Composer
	fromName string
	from     string
	to       string
}

// NewSESNotifier creates a notifier. Explicit keys take precedence;
// without them the default credential chain applies (IAM role on ECS).
func NewSESNotifier(cfg config.MailConfig) (*SESNotifier, error) {
	if cfg.FromEmail == "" || cfg.ToEmail == "" {
		return nil, fmt.Errorf("mail from/to addresses are required")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &SESNotifier{
		client:   sesv2.NewFromConfig(awsCfg),
		composer: NewComposer(),
		fromName: cfg.FromName,
		from:     cfg.FromEmail,
		to:       cfg.ToEmail,
	}, nil
}

// Notify composes and sends the notification email. Reply-to is the
// submitter, so the operator can answer directly from their inbox.
func (n *SESNotifier) Notify(ctx context.Context, sub *contact.Submission) error {
	email, err := n.composer.Compose(sub)
	if err != nil {
		return fmt.Errorf("composing notification: %w", err)
	}

	body := &types.Body{
		Text: &types.Content{Data: aws.String(email.TextBody), Charset: aws.String("UTF-8")},
	}
	if email.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(email.HTMLBody), Charset: aws.String("UTF-8")}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", n.fromName, n.from)),
		Destination:      &types.Destination{ToAddresses: []string{n.to}},
		ReplyToAddresses: []string{email.ReplyTo},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(email.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}

	result, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("sending via SES: %w", err)
	}

	messageID := ""
	if result.MessageId != nil {
		messageID = *result.MessageId
	}
	logger.Info("sent submission notification", "reply_to", email.ReplyTo, "message_id", messageID)

	return nil
}
