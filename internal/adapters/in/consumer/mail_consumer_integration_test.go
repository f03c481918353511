package consumer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tailoring/internal/adapters/in/consumer"
	"tailoring/internal/adapters/out/rabbitmq"
	"tailoring/internal/adapters/out/rabbitmq/rabbittest"
	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/notification"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

// recordingMailer fails the first n sends, n = failures, then records every message.
type recordingMailer struct {
	mu       sync.Mutex
	failures int
	attempts int
	sent     []notification.Message
}

func (m *recordingMailer) Send(_ context.Context, msg notification.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	if m.failures > 0 {
		m.failures--
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) snapshot() ([]notification.Message, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notification.Message(nil), m.sent...), m.attempts
}

type MailConsumerTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcrabbitmq.RabbitMQContainer
	url       string
}

func (s *MailConsumerTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, url, err := rabbittest.Start(s.ctx)
	s.Require().NoError(err)
	s.container = container
	s.url = url
}

func (s *MailConsumerTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

// run starts a consumer on its own connection and returns a stop function.
func (s *MailConsumerTestSuite) run(mailer *recordingMailer, opts ...consumer.Option) func() {
	conn, err := rabbitmq.NewConnection(s.url, nil)
	s.Require().NoError(err)

	c := consumer.NewMailConsumer(conn, commands.NewDeliverNotificationCommandHandler(mailer), nil, opts...)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Start(s.ctx)
	}()

	return func() {
		c.Stop()
		<-done
		_ = conn.Close()
	}
}

func (s *MailConsumerTestSuite) publisher() (*rabbitmq.Publisher, *rabbitmq.Connection) {
	conn, err := rabbitmq.NewConnection(s.url, nil)
	s.Require().NoError(err)
	return rabbitmq.NewPublisher(conn, nil), conn
}

func (s *MailConsumerTestSuite) TestDeliversInPublishOrder() {
	mailer := &recordingMailer{}
	stop := s.run(mailer)
	defer stop()

	pub, conn := s.publisher()
	defer func() { _ = conn.Close() }()

	subjects := []string{"Order Confirmed", "Fabric Being Cut", "Stitching Started", "Quality Check", "Order Dispatched"}
	for _, subject := range subjects {
		msg, err := notification.NewMessage("owner@shop.test", subject, "OrderId=1")
		s.Require().NoError(err)
		s.Require().NoError(pub.Publish(s.ctx, msg))
	}

	s.Eventually(func() bool {
		sent, _ := mailer.snapshot()
		return len(sent) == len(subjects)
	}, 10*time.Second, 50*time.Millisecond)

	sent, _ := mailer.snapshot()
	for i, subject := range subjects {
		s.Equal(subject, sent[i].Subject)
		s.Equal("owner@shop.test", sent[i].To)
	}
}

func (s *MailConsumerTestSuite) TestRequeuesFailedSend() {
	mailer := &recordingMailer{failures: 2}
	stop := s.run(mailer)
	defer stop()

	pub, conn := s.publisher()
	defer func() { _ = conn.Close() }()

	msg, err := notification.NewMessage("manager@shop.test", "Order is Stuck more than 1 day", "details")
	s.Require().NoError(err)
	s.Require().NoError(pub.Publish(s.ctx, msg))

	s.Eventually(func() bool {
		sent, _ := mailer.snapshot()
		return len(sent) == 1
	}, 10*time.Second, 50*time.Millisecond)

	sent, attempts := mailer.snapshot()
	s.Equal(msg, sent[0])
	s.Equal(3, attempts)
}

func (s *MailConsumerTestSuite) TestDeadLettersAfterMaxDeliveries() {
	mailer := &recordingMailer{failures: 1000}
	stop := s.run(mailer, consumer.WithMaxDeliveries(3))
	defer stop()

	pub, conn := s.publisher()
	defer func() { _ = conn.Close() }()

	msg, err := notification.NewMessage("bounce@shop.test", "Order Confirmed", "OrderId=9")
	s.Require().NoError(err)
	s.Require().NoError(pub.Publish(s.ctx, msg))

	var dead amqp.Delivery
	s.Eventually(func() bool {
		var ok bool
		_ = conn.WithChannel(func(ch *amqp.Channel) error {
			var err error
			dead, ok, err = ch.Get(string(rabbitmq.QueueDLQ), true)
			return err
		})
		return ok
	}, 10*time.Second, 50*time.Millisecond)

	parked, err := notification.Decode(dead.Body)
	s.Require().NoError(err)
	s.Equal(msg, parked)

	sent, attempts := mailer.snapshot()
	s.Empty(sent)
	s.Equal(3, attempts)
}

func (s *MailConsumerTestSuite) TestDeadLettersUndecodablePayload() {
	mailer := &recordingMailer{}
	stop := s.run(mailer)
	defer stop()

	conn, err := rabbitmq.NewConnection(s.url, nil)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	s.Require().NoError(conn.WithChannel(func(ch *amqp.Channel) error {
		return ch.PublishWithContext(s.ctx,
			string(rabbitmq.ExchangeNotifications),
			string(rabbitmq.RoutingKeyMail),
			false, false,
			amqp.Publishing{ContentType: "application/json", Body: []byte(`{"subject":`)},
		)
	}))

	var dead amqp.Delivery
	s.Eventually(func() bool {
		var ok bool
		_ = conn.WithChannel(func(ch *amqp.Channel) error {
			var err error
			dead, ok, err = ch.Get(string(rabbitmq.QueueDLQ), true)
			return err
		})
		return ok
	}, 10*time.Second, 50*time.Millisecond)

	s.Equal(`{"subject":`, string(dead.Body))
	_, attempts := mailer.snapshot()
	s.Zero(attempts)
}

func TestMailConsumerTestSuite(t *testing.T) {
	suite.Run(t, new(MailConsumerTestSuite))
}
