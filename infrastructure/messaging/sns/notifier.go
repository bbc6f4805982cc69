package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/threat"
)

// Notifier implements the notification side-channel over an SNS topic.
// Submitter emails are subscribed on first submission; verification notices
// fan out to every confirmed subscription. All of it is best-effort: callers
// log returned errors and move on.
type Notifier struct {
	client   *sns.Client
	topicARN string
	logger   *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(client *sns.Client, topicARN string, logger *zap.Logger) ports.Notifier {
	return &Notifier{
		client:   client,
		topicARN: topicARN,
		logger:   logger,
	}
}

// Subscribe adds an email endpoint to the topic. SNS treats a repeat
// subscription of the same endpoint as a no-op, so this is duplicate-safe.
func (n *Notifier) Subscribe(ctx context.Context, email string) error {
	if n.topicARN == "" {
		return nil
	}

	_, err := n.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: aws.String(n.topicARN),
		Protocol: aws.String("email"),
		Endpoint: aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", email, err)
	}

	n.logger.Info("Subscribed email to notification topic", zap.String("email", email))
	return nil
}

// PublishThreatVerified notifies subscribers that a threat was verified
func (n *Notifier) PublishThreatVerified(ctx context.Context, t *threat.Threat, submitterEmail string) error {
	if n.topicARN == "" {
		return nil
	}

	message := fmt.Sprintf(
		"A threat you may have reported has been verified.\n\nArtifact: %s\nType: %s\nDescription: %s",
		t.Artifact, t.Type, t.Description,
	)

	// SNS rejects empty attribute values, and the submitter lookup is allowed
	// to fail upstream.
	attributes := map[string]types.MessageAttributeValue{
		"threatId": {
			DataType:    aws.String("String"),
			StringValue: aws.String(t.ThreatID),
		},
	}
	if submitterEmail != "" {
		attributes["submitterEmail"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(submitterEmail),
		}
	}

	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(n.topicARN),
		Subject:           aws.String("TrustNet: threat verified"),
		Message:           aws.String(message),
		MessageAttributes: attributes,
	})
	if err != nil {
		return fmt.Errorf("failed to publish verification notice: %w", err)
	}

	n.logger.Info("Published verification notice",
		zap.String("threatID", t.ThreatID),
		zap.String("artifact", t.Artifact),
	)
	return nil
}
