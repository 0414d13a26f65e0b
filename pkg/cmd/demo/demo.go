package demo

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	attr "go.opentelemetry.io/otel/attribute"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/stleox/seetrace/pkg/config"
	"github.com/stleox/seetrace/pkg/trace"
	pkgtracer "github.com/stleox/seetrace/pkg/tracer"
)

// logProcessor dumps finished spans through logrus. Application-level
// plumbing for the demo, not part of the library.
type logProcessor struct{}

func (logProcessor) OnStart(span pkgtracer.ReadableSpan) {
	logrus.WithField("span", span.Name()).Debug("SeeTrace started a span")
}

func (logProcessor) OnEnd(span pkgtracer.ReadableSpan) {
	rendered, err := protojson.Marshal(span.ToProto())
	if err != nil {
		logrus.WithError(err).Warn("SeeTrace couldn't render a span snapshot")
		return
	}
	logrus.WithField("span", string(rendered)).Info("SeeTrace finished a span")
}

func (logProcessor) Shutdown() {
	logrus.Debug("SeeTrace shut down the log processor")
}

func New(vp *viper.Viper) *cobra.Command {
	demo := &cobra.Command{
		Use:   "demo",
		Short: "Emit a small sample trace and print the span snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			t := pkgtracer.New(
				pkgtracer.WithTraceConfig(config.FromViper(vp)),
				pkgtracer.WithResource(trace.NewResource("demo", map[string]string{"service.name": "seetrace-demo"})),
			)
			defer t.Shutdown()
			t.AddSpanProcessor(logProcessor{})

			rootBuilder, err := t.SpanBuilder("demo-root")
			if err != nil {
				return fmt.Errorf("building root span: %w", err)
			}
			root := rootBuilder.SetSpanKind(trace.SpanKindServer).SetNoParent().Start(ctx)
			ctx = t.WithSpan(ctx, root)

			root.SetAttribute("demo.iteration", attr.IntValue(1))
			root.AddEvent(trace.NewEvent("demo-started"))

			childBuilder, err := t.SpanBuilder("demo-child")
			if err != nil {
				return fmt.Errorf("building child span: %w", err)
			}
			// 从 ambient context 解析 parent
			child := childBuilder.SetSpanKind(trace.SpanKindClient).Start(ctx)
			child.SetAttribute("demo.step", attr.StringValue("lookup"))
			child.AddLink(trace.NewLink(root.Context()))
			child.End()

			failedBuilder, err := t.SpanBuilder("demo-failed")
			if err != nil {
				return fmt.Errorf("building failed span: %w", err)
			}
			failed := failedBuilder.SetParent(root).Start(ctx)
			failed.SetStatus(trace.Status{Code: codes.Canceled, Message: "operator interrupt"})
			failed.End()

			root.End()
			return nil
		},
	}
	return demo
}
