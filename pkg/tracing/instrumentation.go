package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HTTP span attributes
const (
	HTTPMethodKey = attribute.Key("http.method")
	HTTPURLKey    = attribute.Key("http.url")
	HTTPStatusKey = attribute.Key("http.status_code")
	HTTPRouteKey  = attribute.Key("http.route")
)

// Upstream span attributes
const (
	ExternalServiceKey   = attribute.Key("external.service")
	ExternalOperationKey = attribute.Key("external.operation")
	LocationCountKey     = attribute.Key("location.count")
	LocationLatitudeKey  = attribute.Key("location.latitude")
	LocationLongitudeKey = attribute.Key("location.longitude")
)

// TraceExternalCall wraps one HTTP call to a third-party service. fn returns
// the upstream status code (0 when no response arrived).
func TraceExternalCall(ctx context.Context, tracerName, serviceName, operation, method, url string, attrs []attribute.KeyValue, fn func(context.Context) (int, error)) error {
	ctx, span := StartSpan(ctx, tracerName, fmt.Sprintf("%s.%s", serviceName, operation),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	span.SetAttributes(
		ExternalServiceKey.String(serviceName),
		ExternalOperationKey.String(operation),
		HTTPMethodKey.String(method),
		HTTPURLKey.String(url),
	)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}

	statusCode, err := fn(ctx)
	if statusCode > 0 {
		span.SetAttributes(HTTPStatusKey.Int(statusCode))
	}

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case statusCode >= 400:
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
	default:
		span.SetStatus(codes.Ok, "")
	}

	return err
}

// LocationAttributes describes a single lng/lat pair.
func LocationAttributes(longitude, latitude float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		LocationLongitudeKey.Float64(longitude),
		LocationLatitudeKey.Float64(latitude),
	}
}
