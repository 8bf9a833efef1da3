package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/tradecheck/tradecheck/internal/adapters/inbound/worker"
)

func newWorkerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Assess submissions received over NATS",
		Long:  "Subscribe to the submission subject with a queue group, assess each submission and publish the outcome to the event subject.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.load()
			if err != nil {
				return err
			}
			defer rt.Close()

			installTracePropagation()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := rt.submissionService(ctx, opts.profileDir)
			if err != nil {
				return err
			}

			n := rt.settings.NATS
			conn, err := nats.Connect(n.URL,
				nats.Name("tradecheck-worker"),
				nats.MaxReconnects(-1),
				nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
					rt.logger.Warn("nats disconnected", zap.Error(err))
				}),
				nats.ReconnectHandler(func(c *nats.Conn) {
					rt.logger.Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
				}),
			)
			if err != nil {
				return fmt.Errorf("connecting to nats %s: %w", n.URL, err)
			}
			defer conn.Close()

			w := worker.New(worker.Config{
				RequestSubject: n.RequestSubject,
				EventSubject:   n.EventSubject,
				QueueGroup:     n.QueueGroup,
			}, svc, conn, rt.logger)
			return w.Run(ctx, conn)
		},
	}
}


// installTracePropagation makes request and event headers carry W3C trace
// context and baggage.
func installTracePropagation() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}
