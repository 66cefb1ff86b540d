package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/shopcart/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shopcart/internal/version"
)

func newOrdersCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect order events",
	}

	var group string
	var fromOldest bool
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print order.placed events from Kafka until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			brokers := splitBrokers(env.cfg.KafkaBrokers)
			if len(brokers) == 0 {
				return errors.New("--kafka-brokers (or SHOPCART_KAFKA_BROKERS) is required")
			}

			consumer, err := kafka.NewConsumer(brokers, group, []string{env.cfg.KafkaTopic}, fromOldest, env.printOrderEvent)
			if err != nil {
				return err
			}
			if err := consumer.Start(cmd.Context()); err != nil {
				return err
			}
			env.printf("Watching %s (group %s), Ctrl+C to stop\n", env.cfg.KafkaTopic, group)

			<-cmd.Context().Done()
			return consumer.Stop()
		},
	}
	watch.Flags().StringVar(&group, "group", "shopctl", "consumer group id")
	watch.Flags().BoolVar(&fromOldest, "from-oldest", false, "read the topic from the beginning")

	cmd.AddCommand(watch)
	return cmd
}

func (e *environment) printOrderEvent(_ context.Context, event *kafka.OrderPlacedEvent) error {
	e.printf("%s  order %s  %d items  %s  %s %s\n",
		event.PlacedAt.Format("2006-01-02 15:04:05"),
		event.OrderID,
		event.TotalItems,
		e.formatter.Format(event.Total),
		event.Email,
		event.ShippingMethod,
	)
	return nil
}

func newVersionCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			env.printf("shopctl %s\n", version.String())
			return nil
		},
	}
}
