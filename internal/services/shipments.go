package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "shipment-dashboard/internal/errors"
	"shipment-dashboard/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// snapshot holds everything precomputed from one dataset load. A new
// snapshot replaces the old one wholesale; readers never see a partial
// aggregation.
type snapshot struct {
	metrics     models.DashboardMetrics
	routeDelays []models.RouteDelay
	skuDelays   []models.SKUDelay
	predictions []models.Prediction
	risk        models.RiskSummary
	lastLoaded  time.Time
}

type Shipments struct {
	mu               sync.RWMutex
	snap             *snapshot
	httpClient       *http.Client
	recordsProcessed atomic.Int64
	logger           *slog.Logger
}

func NewShipments() *Shipments {
	return &Shipments{
		snap: &snapshot{
			metrics: Aggregate(nil),
			risk:    TallyRisk(nil),
		},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
}

// SetRecords replaces the current dataset and recomputes every derived view.
func (s *Shipments) SetRecords(records []models.ShipmentRecord) {
	metrics := Aggregate(records)
	s.recordsProcessed.Store(int64(len(records)))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.metrics = metrics
	s.snap.routeDelays = TopRouteDelays(metrics, 0)
	s.snap.skuDelays = TopSKUDelays(metrics, 0)
	s.snap.lastLoaded = time.Now()
}

// LoadFromCSV streams the dataset file, parsing line batches concurrently and
// folding the result into a fresh metrics snapshot. An empty or header-only
// file is a valid zero-record dataset, not an error.
func (s *Shipments) LoadFromCSV(ctx context.Context, filename string) error {
	start := time.Now()
	s.logger.Info("processing shipment file", "filename", filename)

	file, err := os.Open(filename)
	if err != nil {
		return apperrors.ServiceUnavailableWrap(err, "shipment dataset unavailable")
	}
	defer file.Close()

	records, err := s.streamRecords(ctx, file)
	if err != nil {
		return fmt.Errorf("process dataset: %w", err)
	}
	s.SetRecords(records)

	duration := time.Since(start)
	s.logger.Info("dataset processing complete",
		"records", len(records),
		"duration", duration,
	)
	return nil
}

// LoadFromURL fetches the raw dataset from a static resource path. Transport
// failures and non-2xx responses surface as a service-unavailable error so
// the presentation layer can offer a retry; everything past the fetch
// degrades instead of failing.
func (s *Shipments) LoadFromURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.ServiceUnavailableWrap(err, "shipment dataset request failed")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return apperrors.ServiceUnavailableWrap(err, "shipment dataset unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.ServiceUnavailable(fmt.Sprintf("shipment dataset fetch returned HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.ServiceUnavailableWrap(err, "shipment dataset read failed")
	}

	s.SetRecords(ParseRecords(string(body)))
	return nil
}

func (s *Shipments) streamRecords(ctx context.Context, r io.Reader) ([]models.ShipmentRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	// Header is discarded unconditionally; its width is the row contract.
	if !scanner.Scan() {
		return []models.ShipmentRecord{}, scanner.Err()
	}
	fieldCount := len(strings.Split(scanner.Text(), fieldDelimiter))
	if fieldCount < recordFieldCount {
		return []models.ShipmentRecord{}, nil
	}

	var records []models.ShipmentRecord
	batch := make([]string, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		parsed, err := parseBatch(ctx, batch, fieldCount)
		if err != nil {
			return err
		}
		records = append(records, parsed...)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		batch = append(batch, scanner.Text())
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return records, nil
}

// parseBatch splits a batch of lines across workers. Malformed lines are
// dropped inside each chunk, so a batch never fails over bad rows.
func parseBatch(ctx context.Context, lines []string, fieldCount int) ([]models.ShipmentRecord, error) {
	chunkSize := (len(lines) + maxWorkers - 1) / maxWorkers
	chunks := make([][]models.ShipmentRecord, (len(lines)+chunkSize-1)/chunkSize)

	var g errgroup.Group
	g.SetLimit(maxWorkers)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(lines))
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			local := make([]models.ShipmentRecord, 0, end-start)
			for _, line := range lines[start:end] {
				if strings.TrimSpace(line) == "" {
					continue
				}
				fields := strings.Split(line, fieldDelimiter)
				if len(fields) != fieldCount {
					continue
				}
				local = append(local, parseRecord(fields))
			}
			chunks[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]models.ShipmentRecord, 0, len(lines))
	for _, chunk := range chunks {
		records = append(records, chunk...)
	}
	return records, nil
}

// SetPredictions replaces the prediction snapshot and retallies risk buckets.
func (s *Shipments) SetPredictions(predictions []models.Prediction) {
	risk := TallyRisk(predictions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.predictions = predictions
	s.snap.risk = risk
}

// LoadPredictions reads the upstream predictor's JSON document. A missing or
// malformed file leaves the current prediction snapshot untouched.
func (s *Shipments) LoadPredictions(ctx context.Context, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read predictions: %w", err)
	}

	var predictions []models.Prediction
	if err := json.Unmarshal(data, &predictions); err != nil {
		return fmt.Errorf("decode predictions: %w", err)
	}

	s.SetPredictions(predictions)
	s.logger.Info("predictions loaded", "count", len(predictions))
	return nil
}

// Read accessors return precomputed data; nothing is recomputed per request.

func (s *Shipments) Metrics() models.DashboardMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.metrics
}

func (s *Shipments) TopRouteDelays(limit int) []models.RouteDelay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clip(s.snap.routeDelays, limit)
}

func (s *Shipments) TopSKUDelays(limit int) []models.SKUDelay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clip(s.snap.skuDelays, limit)
}

func (s *Shipments) Predictions() []models.Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.predictions
}

func (s *Shipments) RiskSummary() models.RiskSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.risk
}

// Stats reports load state for the admin endpoint.
func (s *Shipments) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"record_count": s.recordsProcessed.Load(),
		"last_loaded":  s.snap.lastLoaded,
		"routes":       len(s.snap.metrics.Routes),
		"skus":         len(s.snap.metrics.SKUs),
		"predictions":  len(s.snap.predictions),
	}
}
