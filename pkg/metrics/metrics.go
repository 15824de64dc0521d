package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/vfg2006/billing-status-sync/internal/config"
	"github.com/vfg2006/billing-status-sync/internal/domain"
)

const namespace = "billing_sync"

var runStatuses = []domain.RunStatus{
	domain.RunStatusSucceeded,
	domain.RunStatusNoChanges,
	domain.RunStatusDryRun,
	domain.RunStatusFailed,
}

// Recorder guarda as métricas da última execução e as envia ao Pushgateway.
// Um job de execução única não fica vivo para ser coletado.
type Recorder struct {
	registry *prometheus.Registry
	url      string
	job      string

	lastRun         prometheus.Gauge
	lastSuccess     prometheus.Gauge
	durationSeconds prometheus.Gauge
	watermark       prometheus.Gauge
	storeRows       prometheus.Gauge
	rows            *prometheus.GaugeVec
	status          *prometheus.GaugeVec
}

func NewRecorder(cfg config.Metrics) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		url:      cfg.PushgatewayURL,
		job:      cfg.JobName,
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Horário de término da última execução.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Horário de término da última execução sem erro.",
		}),
		durationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duração da última execução.",
		}),
		watermark: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "watermark_timestamp_seconds",
			Help:      "Maior updated_at presente no histórico após a execução.",
		}),
		storeRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_rows",
			Help:      "Quantidade de faturas no histórico após o merge.",
		}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows",
			Help:      "Linhas processadas na última execução, por operação.",
		}, []string{"operation"}),
		status: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_status",
			Help:      "Status da última execução (1 para o status atual).",
		}, []string{"status"}),
	}

	r.registry.MustRegister(
		r.lastRun,
		r.lastSuccess,
		r.durationSeconds,
		r.watermark,
		r.storeRows,
		r.rows,
		r.status,
	)

	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveRun(report domain.RunReport) {
	r.lastRun.Set(float64(report.FinishedAt.Unix()))
	r.durationSeconds.Set(report.Duration().Seconds())

	for _, status := range runStatuses {
		value := 0.0
		if status == report.Status {
			value = 1
		}
		r.status.WithLabelValues(string(status)).Set(value)
	}

	r.rows.WithLabelValues("extracted").Set(float64(report.RowsExtracted))
	r.rows.WithLabelValues("updated").Set(float64(report.RowsUpdated))
	r.rows.WithLabelValues("inserted").Set(float64(report.RowsInserted))
	r.rows.WithLabelValues("unchanged").Set(float64(report.RowsUnchanged))

	if report.Status == domain.RunStatusFailed {
		return
	}

	r.lastSuccess.Set(float64(report.FinishedAt.Unix()))
	if report.StoreRows > 0 {
		r.storeRows.Set(float64(report.StoreRows))
	}
	if report.NextWatermark != nil {
		r.watermark.Set(float64(report.NextWatermark.Unix()))
	}
}

// Enabled indica se há Pushgateway configurado
func (r *Recorder) Enabled() bool {
	return r.url != ""
}

// Push envia as métricas ao Pushgateway; sem URL configurada não faz nada
func (r *Recorder) Push(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}

	err := push.New(r.url, r.job).
		Gatherer(r.registry).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("erro ao enviar métricas para %s: %w", r.url, err)
	}

	return nil
}
