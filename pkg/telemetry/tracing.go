package telemetry

import (
	"context"
	"encoding/json"
	"os"

	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName  = "litmuschaos.io/litmus-go-vira"
	TraceParent = "TRACE_PARENT"
)

// StartTracing starts a span as the child of the run context and stores the new context in the clients
func StartTracing(clients *clients.ClientSets, spanName string) trace.Span {
	ctx, span := otel.Tracer(TracerName).Start(clients.Ctx(), spanName)
	clients.Context = ctx
	return span
}

// GetTraceParentContext returns the context carrying the span context passed by the chaos-runner
// a background context is returned if TRACE_PARENT is not set or malformed
func GetTraceParentContext() context.Context {
	traceParent := os.Getenv(TraceParent)
	if traceParent == "" {
		return context.Background()
	}

	carrier := make(map[string]string)
	if err := json.Unmarshal([]byte(traceParent), &carrier); err != nil {
		log.Warnf("unable to parse %v env, err: %v", TraceParent, err)
		return context.Background()
	}
	return otel.GetTextMapPropagator().Extract(context.Background(), propagation.MapCarrier(carrier))
}

// GetMarshalledSpanFromContext Extract spanContext from the context and return it as json encoded string
func GetMarshalledSpanFromContext(ctx context.Context) string {
	carrier := make(map[string]string)
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(carrier))

	if len(carrier) == 0 {
		log.Debugf("spanContext not present in the context, unable to marshall")
		return ""
	}

	marshalled, err := json.Marshal(carrier)
	if err != nil {
		log.Error(err.Error())
		return ""
	}
	if len(marshalled) >= 1024 {
		log.Error("marshalled span context is too large, unable to marshall")
		return ""
	}
	return string(marshalled)
}
