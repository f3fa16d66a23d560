package web

import "go.opentelemetry.io/otel"

var tracer = otel.GetTracerProvider().Tracer("portfolio/internal/adapters/web")
