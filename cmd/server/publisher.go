package main

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"

	"retailorders/internal/config"
	"retailorders/internal/infrastructure/rabbitmq"
	"retailorders/internal/infrastructure/sqs"
	"retailorders/internal/order/service"
)

func newPublisher(cfg *config.Config, awsCfg aws.Config) (service.EventPublisher, func(), error) {
	if cfg.Events.Broker == config.BrokerRabbitMQ {
		client, err := rabbitmq.Dial(cfg.Events.RabbitURL, cfg.Events.Exchange)
		if err != nil {
			return nil, nil, err
		}
		return rabbitmq.NewPublisher(client.Channel(), cfg.Events.Exchange, cfg.Events.RoutingKey), client.Close, nil
	}

	return sqs.NewPublisher(awssqs.NewFromConfig(awsCfg), cfg.Events.QueueURL), func() {}, nil
}
