package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/protobuf/proto"

	"github.com/byteplus-sdk/sdk-go/pkg/httpclient"
	"github.com/byteplus-sdk/sdk-go/pkg/logger"
)

const (
	instrumentationName = "github.com/byteplus-sdk/sdk-go/pkg/core"
	logBodyLimit        = 512
)

// HTTPCaller signs and sends protobuf requests for one tenant. It is safe for
// concurrent use.
type HTTPCaller struct {
	sdkCtx   *Context
	client   httpclient.Client
	log      logger.Logger
	tracer   trace.Tracer
	duration metric.Float64Histogram

	now          func() time.Time
	nonce        func() string
	newRequestID func() string
}

// CallerOption customizes an HTTPCaller.
type CallerOption func(*callerConfig)

type callerConfig struct {
	client         httpclient.Client
	log            logger.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithHTTPClient replaces the default resty transport.
func WithHTTPClient(c httpclient.Client) CallerOption {
	return func(cfg *callerConfig) { cfg.client = c }
}

// WithLogger sets the diagnostic sink. Defaults to logger.NopLogger.
func WithLogger(l logger.Logger) CallerOption {
	return func(cfg *callerConfig) { cfg.log = l }
}

// WithTracerProvider sets the tracer provider. Defaults to otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) CallerOption {
	return func(cfg *callerConfig) { cfg.tracerProvider = tp }
}

// WithMeterProvider sets the meter provider. Defaults to otel.GetMeterProvider().
func WithMeterProvider(mp metric.MeterProvider) CallerOption {
	return func(cfg *callerConfig) { cfg.meterProvider = mp }
}

// NewHTTPCaller builds a caller bound to sdkCtx.
func NewHTTPCaller(sdkCtx *Context, opts ...CallerOption) (*HTTPCaller, error) {
	if sdkCtx == nil {
		return nil, errors.New("context must not be nil")
	}
	var cfg callerConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.client == nil {
		cfg.client = httpclient.NewRestyClient(0)
	}
	if cfg.tracerProvider == nil {
		cfg.tracerProvider = otel.GetTracerProvider()
	}
	if cfg.meterProvider == nil {
		cfg.meterProvider = otel.GetMeterProvider()
	}

	duration, err := cfg.meterProvider.Meter(instrumentationName).Float64Histogram(
		"sdk.http.client.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of signed SDK HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return &HTTPCaller{
		sdkCtx:       sdkCtx,
		client:       cfg.client,
		log:          logger.Ensure(cfg.log),
		tracer:       cfg.tracerProvider.Tracer(instrumentationName),
		duration:     duration,
		now:          time.Now,
		nonce:        randomNonce,
		newRequestID: timeOrderedID,
	}, nil
}

// DoRequest POSTs request to url and decodes a 200 response into response.
// response is only modified when the whole exchange succeeds.
func (h *HTTPCaller) DoRequest(ctx context.Context, url string, request, response proto.Message, opts ...Option) error {
	if strings.TrimSpace(url) == "" {
		return &BizError{Msg: "url is empty"}
	}
	if request == nil || response == nil || !response.ProtoReflect().IsValid() {
		return &BizError{Msg: "request and response messages are required"}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := proto.Marshal(request)
	if err != nil {
		return &BizError{Msg: "marshal request", Err: err}
	}
	body, err := httpclient.Compress(raw)
	if err != nil {
		return &BizError{Msg: "compress request", Err: err}
	}

	options := resolveOptions(opts)
	headers := h.buildHeaders(options, body)

	payload, err := h.doHTTPRequest(ctx, url, headers, body, options.Timeout)
	if err != nil {
		return err
	}

	payload, err = httpclient.DecodePossibleGzip(payload)
	if err != nil {
		h.logParseFailure(url, err)
		return &BizError{Msg: "parse response fail", Err: err}
	}
	decoded := response.ProtoReflect().New().Interface()
	if err := proto.Unmarshal(payload, decoded); err != nil {
		h.logParseFailure(url, err)
		return &BizError{Msg: "parse response fail", Err: err}
	}
	proto.Reset(response)
	proto.Merge(response, decoded)
	return nil
}

func (h *HTTPCaller) doHTTPRequest(ctx context.Context, url string, headers map[string]string, body []byte, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx, span := h.tracer.Start(ctx, "sdk.http.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", url),
			attribute.String("sdk.tenant_id", h.sdkCtx.TenantID()),
			attribute.String("sdk.request_id", headers[headerRequestID]),
		),
	)
	defer span.End()

	start := h.now()
	rsp, err := h.client.Post(ctx, url, headers, body)
	cost := h.now().Sub(start)
	h.log.DebugObj("http request completed", "http_meta", map[string]any{
		"url":        url,
		"request_id": headers[headerRequestID],
		"cost_ms":    cost.Milliseconds(),
	})

	if err != nil {
		h.recordDuration(ctx, cost, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if isTimeout(err) {
			h.log.ErrorObj("http request timeout", "http_error", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
			return nil, &NetError{Reason: "timeout", Err: err}
		}
		h.log.ErrorObj("http request failed", "http_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return nil, &BizError{Msg: "http request", Err: err}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", rsp.StatusCode()))
	if rsp.StatusCode() != http.StatusOK {
		h.recordDuration(ctx, cost, "error")
		span.SetStatus(codes.Error, rsp.Status())
		h.logStatus(url, rsp)
		return nil, &NetError{StatusCode: rsp.StatusCode(), Reason: rsp.Status()}
	}
	h.recordDuration(ctx, cost, "ok")
	return rsp.Body(), nil
}

func (h *HTTPCaller) recordDuration(ctx context.Context, cost time.Duration, status string) {
	h.duration.Record(ctx, cost.Seconds(), metric.WithAttributes(
		attribute.String("sdk.tenant_id", h.sdkCtx.TenantID()),
		attribute.String("status", status),
	))
}

func (h *HTTPCaller) logStatus(url string, rsp httpclient.Response) {
	fields := map[string]any{
		"url":  url,
		"code": rsp.StatusCode(),
		"msg":  rsp.Status(),
	}
	if body := rsp.Body(); len(body) > 0 {
		if len(body) > logBodyLimit {
			body = body[:logBodyLimit]
		}
		fields["body"] = string(body)
	}
	h.log.ErrorObj("http status not 200", "http_status", fields)
}

func (h *HTTPCaller) logParseFailure(url string, err error) {
	h.log.ErrorObj("parse response failed", "parse_error", map[string]any{
		"url":   url,
		"error": err.Error(),
	})
}

// isTimeout reports whether a transport failure was caused by a deadline.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
