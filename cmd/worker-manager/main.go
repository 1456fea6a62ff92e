package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"campus-assistant/internal/answer"
	"campus-assistant/internal/common/aws"
	"campus-assistant/internal/common/camunda"
	"campus-assistant/internal/common/config"
	"campus-assistant/internal/common/database"
	"campus-assistant/internal/common/logger"
	"campus-assistant/internal/common/observability"
	"campus-assistant/internal/eval"
	"campus-assistant/internal/nlu"
	"campus-assistant/internal/nlu/classifier"
	"campus-assistant/internal/nlu/gazetteer"
	"campus-assistant/internal/nlu/intent"
	"campus-assistant/internal/store"

	aq "campus-assistant/internal/workers/assistant/answer-question"
	ea "campus-assistant/internal/workers/assistant/evaluate-answer"
	eu "campus-assistant/internal/workers/assistant/escalate-unanswered"
	pq "campus-assistant/internal/workers/assistant/process-question"
	qh "campus-assistant/internal/workers/knowledge/query-halls"
	sd "campus-assistant/internal/workers/knowledge/search-documents"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracing := observability.NewTracing(cfg.App.Name, cfg.Observability.JaegerEndpoint)
	defer tracing.Shutdown()

	ctx := context.Background()

	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	pgStore := store.NewPostgresStore(pg.DB)

	rules, skippedRules, err := loadIntentRules(ctx, pgStore, cfg.Knowledge.IntentRulesPath, zapLog)
	if err != nil {
		zapLog.Fatal("intent rules load failed", zap.Error(err))
	}
	gaz, skippedEntries, err := loadGazetteer(ctx, pgStore, cfg.Knowledge.GazetteerPath, zapLog)
	if err != nil {
		zapLog.Fatal("gazetteer load failed", zap.Error(err))
	}
	zapLog.Info("Knowledge seeds loaded",
		zap.Int("intents", rules.Len()),
		zap.Int("skippedRules", skippedRules),
		zap.Int("gazetteerEntries", gaz.Len()),
		zap.Int("skippedEntries", skippedEntries),
	)

	clf := classifier.FromConfig(classifier.GenAIConfig{
		BaseURL: cfg.APIs.GenAI.BaseURL,
		APIKey:  cfg.APIs.GenAI.APIKey,
		Timeout: time.Duration(cfg.APIs.GenAI.Timeout) * time.Millisecond,
	}, log)

	processor := nlu.NewProcessor(gaz, rules, clf, log)
	synthesizer := answer.NewSynthesizer(log)
	evaluator := eval.NewEvaluator(log)

	halls := store.NewCachedStore(
		pgStore,
		redis.Client,
		time.Duration(cfg.Database.Redis.CacheTTL)*time.Second,
		log,
	)

	var sesClient *aws.SESClient
	if cfg.Escalation.Email.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Escalation.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}
	var snsClient *aws.SNSClient
	if cfg.Escalation.SMS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Escalation.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	zapLog.Info("All external service clients initialized")

	var workers []*camunda.CamundaWorker

	if wcfg := cfg.Workers[pq.TaskType]; wcfg.Enabled {
		handler := pq.NewHandler(
			&pq.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			processor, log,
		)
		workers = append(workers, startWorker(zeebeClient, pq.TaskType, wcfg, handler, tracing, zapLog))
	}

	if wcfg := cfg.Workers[aq.TaskType]; wcfg.Enabled {
		handler := aq.NewHandler(
			&aq.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			synthesizer, halls, log,
		)
		workers = append(workers, startWorker(zeebeClient, aq.TaskType, wcfg, handler, tracing, zapLog))
	}

	if wcfg := cfg.Workers[ea.TaskType]; wcfg.Enabled {
		handler := ea.NewHandler(
			&ea.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			evaluator, log,
		)
		workers = append(workers, startWorker(zeebeClient, ea.TaskType, wcfg, handler, tracing, zapLog))
	}

	if wcfg := cfg.Workers[eu.TaskType]; wcfg.Enabled {
		handler := eu.NewHandler(
			&eu.Config{
				Timeout:             time.Duration(wcfg.Timeout) * time.Millisecond,
				ConfidenceThreshold: cfg.Escalation.ConfidenceThreshold,
				EmailEnabled:        cfg.Escalation.Email.Enabled,
				FromEmail:           cfg.Escalation.Email.FromEmail,
				ToEmail:             cfg.Escalation.Email.ToEmail,
				SMSEnabled:          cfg.Escalation.SMS.Enabled,
				PhoneNumber:         cfg.Escalation.SMS.PhoneNumber,
			},
			sesClient, snsClient, log,
		)
		workers = append(workers, startWorker(zeebeClient, eu.TaskType, wcfg, handler, tracing, zapLog))
	}

	if wcfg := cfg.Workers[qh.TaskType]; wcfg.Enabled {
		handler := qh.NewHandler(
			&qh.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			halls, log,
		)
		workers = append(workers, startWorker(zeebeClient, qh.TaskType, wcfg, handler, tracing, zapLog))
	}

	if wcfg := cfg.Workers[sd.TaskType]; wcfg.Enabled {
		handler := sd.NewHandler(
			&sd.Config{
				Timeout: time.Duration(wcfg.Timeout) * time.Millisecond,
				Index:   cfg.Database.Elasticsearch.DocumentIndex,
			},
			esClient.Client, log,
		)
		workers = append(workers, startWorker(zeebeClient, sd.TaskType, wcfg, handler, tracing, zapLog))
	}

	zapLog.Info("All workers registered successfully", zap.Int("count", len(workers)))

	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, tracing *observability.Tracing, log *zap.Logger) *camunda.CamundaWorker {
	w := camunda.NewWorker(
		client,
		taskType,
		wcfg.MaxJobsActive,
		time.Duration(wcfg.Timeout)*time.Millisecond,
		handler,
		tracing,
		log,
	)
	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return w
}

// loadIntentRules prefers the seeded database rows and falls back to the
// bundled seed file when the table is empty or unreadable.
func loadIntentRules(ctx context.Context, pgStore *store.PostgresStore, path string, log *zap.Logger) (*intent.RuleSet, int, error) {
	docs, err := pgStore.IntentDocuments(ctx)
	if err != nil || len(docs) == 0 {
		if err != nil {
			log.Warn("intent rules unavailable in database, using seed file", zap.Error(err))
		}
		return intent.LoadFile(path)
	}
	rs, skipped := intent.FromDocuments(docs)
	return rs, skipped, nil
}

// loadGazetteer mirrors loadIntentRules for the gazetteer entries.
func loadGazetteer(ctx context.Context, pgStore *store.PostgresStore, path string, log *zap.Logger) (*gazetteer.Gazetteer, int, error) {
	docs, err := pgStore.GazetteerDocuments(ctx)
	if err != nil || len(docs) == 0 {
		if err != nil {
			log.Warn("gazetteer unavailable in database, using seed file", zap.Error(err))
		}
		return gazetteer.LoadFile(path)
	}
	g, skipped := gazetteer.FromDocuments(docs)
	return g, skipped, nil
}
