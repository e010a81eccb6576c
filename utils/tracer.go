package utils

import (
	"github.com/EmmanuellaOsikoya/melodymatch/utils/dotenv"
	"github.com/EmmanuellaOsikoya/melodymatch/utils/flag"
	Logger "github.com/EmmanuellaOsikoya/melodymatch/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func init() {
	// Datadog tracer

	env := "development"
	if dotenv.IsProdEnv() {
		env = "production"
	}

	tracer.Start(
		tracer.WithService(flag.ServiceName),
		tracer.WithEnv(env),
	)

	Logger.Log.Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	// Datadog tracer
	tracer.Stop()
}
