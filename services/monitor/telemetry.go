package monitor

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("services/monitor")
