// Package rabbittest starts a throwaway RabbitMQ broker for integration suites.
package rabbittest

import (
	"context"

	"tailoring/internal/adapters/out/rabbitmq"

	tcrabbitmq "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

// Start runs the broker, connects to it and declares the notification topology.
func Start(ctx context.Context) (*tcrabbitmq.RabbitMQContainer, string, error) {
	container, err := tcrabbitmq.Run(ctx, "rabbitmq:3.13-management-alpine")
	if err != nil {
		return nil, "", err
	}

	url, err := container.AmqpURL(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}

	conn, err := rabbitmq.NewConnection(url, nil)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}
	defer func() {
		_ = conn.Close()
	}()

	if err = rabbitmq.SetupTopology(conn); err != nil {
		_ = container.Terminate(ctx)
		return nil, "", err
	}

	return container, url, nil
}
