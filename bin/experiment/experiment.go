package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	// Uncomment to load all auth plugins
	// _ "k8s.io/client-go/plugin/pkg/client/auth"

	viraNodeRestart "github.com/litmuschaos/litmus-go-vira/experiments/kubernetes/node-restart/experiment"

	"github.com/litmuschaos/litmus-go-vira/pkg/clients"
	"github.com/litmuschaos/litmus-go-vira/pkg/log"
	"github.com/litmuschaos/litmus-go-vira/pkg/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          true,
		DisableSorting:         true,
		DisableLevelTruncation: true,
	})
	log.SetLevel()
}

func main() {
	ctx := context.Background()
	// Set up Observability.
	if otelExporterEndpoint := os.Getenv(telemetry.OTELExporterEndpoint); otelExporterEndpoint != "" {
		insecure, _ := strconv.ParseBool(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"))
		shutdown, err := telemetry.InitOTelSDK(ctx, otelExporterEndpoint, insecure)
		if err != nil {
			log.Errorf("Failed to initialize OTel SDK: %v", err)
			return
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Errorf("Failed to shutdown OTel SDK: %v", err)
			}
		}()
		ctx = telemetry.GetTraceParentContext()
	}

	clients := clients.ClientSets{}

	ctx, span := otel.Tracer(telemetry.TracerName).Start(ctx, "ExecuteExperiment")
	defer span.End()

	// parse the experiment name
	experimentName := flag.String("name", "vira-node-restart", "name of the chaos experiment")
	flag.Parse()

	//Getting kubeConfig and Generate ClientSets
	if err := clients.GenerateClientSetFromKubeConfig(); err != nil {
		log.Errorf("Unable to Get the kubeconfig, err: %v", err)
		return
	}
	clients.Context = ctx

	log.Infof("Experiment Name: %v", *experimentName)

	// invoke the corresponding experiment based on the (-name) flag
	switch *experimentName {
	case "vira-node-restart":
		viraNodeRestart.NodeRestart(clients)
	default:
		log.Errorf("Unsupported -name %v, please provide the correct value of -name args", *experimentName)
		return
	}
}
