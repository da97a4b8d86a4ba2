package tracing

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/uber/jaeger-client-go"
	jCfg "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"

	"upvotes_analyzer/pkg/logger"
)

var (
	// задаётся из конфига до InitTracer
	serviceName = "default"
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

type Config struct {
	Host string
	Port int
	// SampleRatio в (0, 1) — вероятностный семплер, иначе пишем все spans.
	SampleRatio float64
}

func (c Config) sampler() *jCfg.SamplerConfig {
	if c.SampleRatio > 0 && c.SampleRatio < 1 {
		return &jCfg.SamplerConfig{Type: jaeger.SamplerTypeProbabilistic, Param: c.SampleRatio}
	}
	return &jCfg.SamplerConfig{Type: jaeger.SamplerTypeConst, Param: 1}
}

// InitTracer поднимает Jaeger и делает его глобальным. Без вызова работает noop-трейсер.
func InitTracer(conf Config) (opentracing.Tracer, func(), error) {
	cfg := &jCfg.Configuration{
		ServiceName: serviceName,
		Sampler:     conf.sampler(),
		Reporter: &jCfg.ReporterConfig{
			LocalAgentHostPort: fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		},
	}

	tracer, closer, err := cfg.NewTracer(
		jCfg.Metrics(metrics.NullFactory),
	)
	if err != nil {
		return nil, nil, err
	}

	opentracing.SetGlobalTracer(tracer)
	return tracer, func() {
		opentracing.SetGlobalTracer(opentracing.NoopTracer{})
		if err := closer.Close(); err != nil {
			logger.Error("tracing: close jaeger: %v", err)
		}
	}, nil
}

// StartSpan открывает дочерний span от того, что лежит в ctx.
func StartSpan(ctx context.Context, operation string) (opentracing.Span, context.Context) {
	return opentracing.StartSpanFromContext(ctx, operation)
}

// Finish закрывает span, помечая ошибку если она есть.
func Finish(span opentracing.Span, err error) {
	if err != nil {
		ext.Error.Set(span, true)
		span.LogKV("error", err.Error())
	}
	span.Finish()
}
