package event

import (
	"github.com/streadway/amqp"
)

// Kontrak event order SkillConnect: satu topic exchange, routing key per
// jenis event.
const (
	Exchange             = "orders_exchange"
	RoutingOrderCreated  = "order.created"
	RoutingStatusChanged = "order.status_changed"
)

// Publisher adalah kontrak publish event ke message broker.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// AMQPPublisher mem-publish event JSON ke exchange topic RabbitMQ.
type AMQPPublisher struct {
	ch *amqp.Channel
}

func NewAMQPPublisher(ch *amqp.Channel) *AMQPPublisher {
	return &AMQPPublisher{ch: ch}
}

// DeclareExchange memastikan exchange-nya ada (idempotent).
func DeclareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

func (p *AMQPPublisher) Publish(routingKey string, body []byte) error {
	return p.ch.Publish(
		Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
