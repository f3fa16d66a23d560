package kvdb

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("portfolio/internal/infrastructure/kvdb")
