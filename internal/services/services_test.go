package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	qt "github.com/frankban/quicktest"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sesv2.SendEmailOutput{}, f.err
}

type fakeSNS struct {
	inputs []*sns.PublishInput
}

func (f *fakeSNS) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestNilServicesAreNoops(t *testing.T) {
	c := qt.New(t)
	var e *EmailService
	var n *NotifyService
	c.Assert(e.SendWelcome(context.Background(), models.User{Email: "a@b.c"}), qt.IsNil)
	c.Assert(e.SendFeedbackThanks(context.Background(), models.Feedback{CustomerEmail: "a@b.c"}), qt.IsNil)
	c.Assert(n.OrderStatusChanged(context.Background(), models.Order{}), qt.IsNil)

	c.Assert(NewEmailService(aws.Config{}, ""), qt.IsNil)
	c.Assert(NewNotifyService(aws.Config{}, ""), qt.IsNil)
}

func TestSendWelcome(t *testing.T) {
	c := qt.New(t)
	fake := &fakeSES{}
	e := &EmailService{sesClient: fake, fromEmail: "no-reply@example.com"}

	err := e.SendWelcome(context.Background(), models.User{FirstName: "<Ada>", Email: "ada@example.com"})
	c.Assert(err, qt.IsNil)
	c.Assert(fake.inputs, qt.HasLen, 1)
	in := fake.inputs[0]
	c.Assert(aws.ToString(in.FromEmailAddress), qt.Equals, "no-reply@example.com")
	c.Assert(in.Destination.ToAddresses, qt.DeepEquals, []string{"ada@example.com"})
	c.Assert(aws.ToString(in.Content.Simple.Body.Html.Data), qt.Contains, "&lt;Ada&gt;")
}

func TestSendFeedbackThanks(t *testing.T) {
	c := qt.New(t)
	fake := &fakeSES{}
	e := &EmailService{sesClient: fake, fromEmail: "no-reply@example.com"}

	// no address, nothing to send
	c.Assert(e.SendFeedbackThanks(context.Background(), models.Feedback{OrderNumber: "ORD-001"}), qt.IsNil)
	c.Assert(fake.inputs, qt.HasLen, 0)

	f := models.Feedback{CustomerName: "Ada", CustomerEmail: "ada@example.com", OrderNumber: "ORD-001", Rating: 5, DeliveryRating: 4, ProductRating: 3}
	c.Assert(e.SendFeedbackThanks(context.Background(), f), qt.IsNil)
	c.Assert(fake.inputs, qt.HasLen, 1)
	c.Assert(aws.ToString(fake.inputs[0].Content.Simple.Subject.Data), qt.Equals, "Thanks for your feedback on ORD-001")
	c.Assert(aws.ToString(fake.inputs[0].Content.Simple.Body.Html.Data), qt.Contains, "Delivery: 4/5")

	fake.err = errors.New("throttled")
	c.Assert(e.SendFeedbackThanks(context.Background(), f), qt.ErrorMatches, "failed to send email: throttled")
}

func TestOrderStatusChanged(t *testing.T) {
	c := qt.New(t)
	fake := &fakeSNS{}
	n := &NotifyService{client: fake, topicARN: "arn:aws:sns:eu-central-1:123:orders"}

	o := models.Order{ID: 3, OrderNumber: "ORD-003", Status: models.OrderStatusInTransit, Location: "Hub", Progress: 40,
		UpdatedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)}
	c.Assert(n.OrderStatusChanged(context.Background(), o), qt.IsNil)
	c.Assert(fake.inputs, qt.HasLen, 1)
	c.Assert(aws.ToString(fake.inputs[0].TopicArn), qt.Equals, "arn:aws:sns:eu-central-1:123:orders")

	var event OrderEvent
	c.Assert(json.Unmarshal([]byte(aws.ToString(fake.inputs[0].Message)), &event), qt.IsNil)
	c.Assert(event.Type, qt.Equals, EventOrderStatusChanged)
	c.Assert(event.OrderNumber, qt.Equals, "ORD-003")
	c.Assert(event.Status, qt.Equals, models.OrderStatusInTransit)
	c.Assert(event.Progress, qt.Equals, 40)
}
