package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shopcart/internal/service/checkout"
)

func newCheckoutCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Quote and place a simulated order",
	}
	cmd.AddCommand(newQuoteCmd(env), newPlaceCmd(env))
	return cmd
}

func newQuoteCmd(env *environment) *cobra.Command {
	var shipping string
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Show subtotal, shipping, tax and total for the cart",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			method, err := domain.ParseShippingMethod(shipping)
			if err != nil {
				return err
			}
			store := env.cart()
			if len(store.Items()) == 0 {
				return domain.ErrCartEmpty
			}
			env.printQuote(checkout.CalculateQuote(store.TotalPrice(), method))
			return nil
		},
	}
	cmd.Flags().StringVar(&shipping, "shipping", string(domain.ShippingStandard), "shipping method: standard|express")
	return cmd
}

func newPlaceCmd(env *environment) *cobra.Command {
	form := checkout.NewFlow().Form()
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Walk the Information, Shipping and Payment steps and place the order",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			flow := checkout.NewFlow()
			for !flow.Complete() {
				step := flow.Step()
				if err := flow.Advance(form); err != nil {
					env.printf("%s step is incomplete:\n", step)
					return env.printValidation(err)
				}
			}

			publisher, closePublisher, err := env.orderPublisher()
			if err != nil {
				return err
			}
			defer closePublisher()

			svc := checkout.NewService(publisher, checkout.WithLogger(env.logger.WithField("layer", "checkout")))
			order, err := svc.PlaceFlowOrder(env.cart(), flow)
			if err != nil {
				return err
			}

			env.printf("Order %s placed for %s\n", order.ID, order.ShipTo.Email)
			env.printQuote(order.Quote)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.Email, "email", "", "contact email")
	flags.StringVar(&form.FirstName, "first-name", "", "first name")
	flags.StringVar(&form.LastName, "last-name", "", "last name")
	flags.StringVar(&form.Address, "address", "", "street address")
	flags.StringVar(&form.City, "city", "", "city")
	flags.StringVar(&form.Zip, "zip", "", "ZIP or postal code")
	flags.StringVar(&form.Country, "country", form.Country, "country code: US|CA|GB")
	flags.StringVar(&form.State, "state", "", "state or province")
	flags.StringVar(&form.Shipping, "shipping", form.Shipping, "shipping method: standard|express")
	flags.StringVar(&form.CardName, "card-name", "", "name on card")
	flags.StringVar(&form.CardNumber, "card-number", "", "card number (not charged)")
	flags.StringVar(&form.Expiry, "expiry", "", "card expiry MM/YY")
	flags.StringVar(&form.CVV, "cvv", "", "card CVV")
	return cmd
}

// orderPublisher подключает Kafka, если заданы брокеры; без них заказ оформляется без события.
func (e *environment) orderPublisher() (domain.OrderPublisher, func(), error) {
	brokers := splitBrokers(e.cfg.KafkaBrokers)
	if len(brokers) == 0 {
		return nil, func() {}, nil
	}
	producer, err := kafka.NewProducer(brokers, e.cfg.KafkaTopic)
	if err != nil {
		return nil, nil, err
	}
	return producer, func() {
		if err := producer.Close(); err != nil {
			e.logger.WithError(err).Warn("failed to close kafka producer")
		}
	}, nil
}

func (e *environment) printQuote(q domain.Quote) {
	shipping := e.formatter.Format(q.Shipping)
	if q.Shipping.IsZero() {
		shipping = "Free"
	}
	e.printf("Subtotal: %s\n", e.formatter.Format(q.Subtotal))
	e.printf("Shipping (%s): %s\n", q.Method, shipping)
	e.printf("Tax: %s\n", e.formatter.Format(q.Tax))
	e.printf("Total: %s\n", e.formatter.Format(q.Total))
	if q.FreeShippingRemaining.IsPositive() {
		e.printf("Add %s more for free standard shipping\n", e.formatter.Format(q.FreeShippingRemaining))
	}
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, broker := range strings.Split(brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			out = append(out, broker)
		}
	}
	return out
}
