package commons

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"retailorders/internal/config"
)

// LoadConfig reads the service configuration from a YAML file. Unset
// sections fall back to the same defaults as the environment loader.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg)

	switch cfg.Events.Broker {
	case config.BrokerSQS, config.BrokerRabbitMQ:
	default:
		return nil, fmt.Errorf("unsupported events broker %q", cfg.Events.Broker)
	}

	return &cfg, nil
}

func applyDefaults(cfg *config.Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	cfg.Events.Broker = strings.ToLower(cfg.Events.Broker)
	if cfg.Events.Broker == "" {
		cfg.Events.Broker = config.BrokerSQS
	}
	if cfg.Events.Exchange == "" {
		cfg.Events.Exchange = "orders_topic"
	}
	if cfg.Events.RoutingKey == "" {
		cfg.Events.RoutingKey = "order.status"
	}
	if cfg.History.Table == "" {
		cfg.History.Table = "order_status_history"
	}
	if cfg.Delivery.OrderIDPrefix == "" {
		cfg.Delivery.OrderIDPrefix = "ORD"
	}
	if cfg.Delivery.MaxOrderIDAttempts <= 0 {
		cfg.Delivery.MaxOrderIDAttempts = 3
	}
	if cfg.Delivery.MaxRetryAttempts <= 0 {
		cfg.Delivery.MaxRetryAttempts = 3
	}
}
