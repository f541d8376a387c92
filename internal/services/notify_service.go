package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// EventOrderStatusChanged is the event type published on status updates
const EventOrderStatusChanged = "order.status_changed"

type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// OrderEvent is the JSON payload published to the order events topic
type OrderEvent struct {
	Type        string             `json:"type"`
	OrderID     int                `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Status      models.OrderStatus `json:"status"`
	Location    string             `json:"location"`
	Progress    int                `json:"progress"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// NotifyService publishes order events to an SNS topic.
type NotifyService struct {
	client   snsPublisher
	topicARN string
}

// NewNotifyService creates a publisher for topicARN. Returns nil when the topic is not configured.
func NewNotifyService(cfg aws.Config, topicARN string) *NotifyService {
	if topicARN == "" {
		return nil
	}
	return &NotifyService{client: sns.NewFromConfig(cfg), topicARN: topicARN}
}

// OrderStatusChanged publishes an order.status_changed event for o
func (s *NotifyService) OrderStatusChanged(ctx context.Context, o models.Order) error {
	if s == nil {
		return nil
	}
	event := OrderEvent{
		Type:        EventOrderStatusChanged,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Location:    o.Location,
		Progress:    o.Progress,
		OccurredAt:  o.UpdatedAt.UTC(),
	}
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(b)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventOrderStatusChanged),
			},
		},
	}

	result, err := s.client.Publish(ctx, input)
	if err != nil {
		log.Printf("Failed to publish order event for %s: %v", o.OrderNumber, err)
		return err
	}

	log.Printf("Published order event for %s. Message ID: %s", o.OrderNumber, aws.ToString(result.MessageId))
	return nil
}
