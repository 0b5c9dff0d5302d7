// Package measurement provides the application-level service orchestrating a
// prediction: brand lookup, statistical prediction, formula estimation, and
// persistence.  This package is the interface between HTTP handlers and the
// domain logic.
package measurement

import (
	"context"
	"time"

	domainMeas "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/metrics"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/persistence"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// BrandResolver supplies reference measurements for a brand, or nil when the
// dataset has nothing usable.
type BrandResolver interface {
	Resolve(brand string, age float64, gender domainMeas.Gender) map[string]float64
}

// Predictor is the statistical model consumed by predictions.
type Predictor interface {
	Loaded() bool
	Predict(ctx context.Context, features []float64) ([]float64, error)
}

// Health reports the service's operational state.
type Health struct {
	ModelLoaded bool
	TotalUsers  int
}

// Service exposes the measurement operations consumed by the HTTP layer.
type Service interface {
	Predict(ctx context.Context, in domainMeas.PredictInput) (*domainMeas.Record, error)
	Update(ctx context.Context, parentID, childID string, values map[string]float64) (*domainMeas.Record, error)
	Get(ctx context.Context, parentID, childID string) (*domainMeas.Record, error)
	Health(ctx context.Context) (*Health, error)
}

type serviceImpl struct {
	store     persistence.Store
	brands    BrandResolver
	predictor Predictor
	logger    logging.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewService wires the orchestrator.  metrics may be nil when instrumentation
// is disabled.
func NewService(store persistence.Store, brands BrandResolver, predictor Predictor, logger logging.Logger, m *metrics.Metrics) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		store:     store,
		brands:    brands,
		predictor: predictor,
		logger:    logger.Named("measurement"),
		metrics:   m,
		now:       time.Now,
	}
}

// Predict assembles measurements for one child and persists the record.
// Steps are strictly ordered: brand seed, predictor fallback, tier-1
// formulas, tier-2 lengths, then the store write.
func (s *serviceImpl) Predict(ctx context.Context, in domainMeas.PredictInput) (*domainMeas.Record, error) {
	if err := domainMeas.ValidateIdentifiers(in.ParentID, in.ChildID); err != nil {
		return nil, err
	}
	if err := domainMeas.ValidateRanges(in.Age, in.Weight, in.Height); err != nil {
		return nil, err
	}
	if !s.predictor.Loaded() {
		return nil, apperrors.ModelNotLoaded()
	}

	measurements := make(map[string]float64)

	if in.Brand != nil && *in.Brand != "" {
		seeded := s.brands.Resolve(*in.Brand, in.Age, in.Gender)
		if len(seeded) > 0 {
			for k, v := range seeded {
				measurements[k] = v
			}
			s.countBrandLookup(metrics.OutcomeHit)
			s.countSources(metrics.SourceBrand, len(seeded))
		} else {
			s.countBrandLookup(metrics.OutcomeMiss)
		}
	}

	// Brand data takes priority; the model only fills an empty map.
	if len(measurements) == 0 {
		features := []float64{in.Age, in.Gender.Code(), in.Height, in.Weight}
		outputs, err := s.predictor.Predict(ctx, features)
		if err != nil {
			s.countPrediction("error")
			return nil, err
		}
		measurements["Waist"] = domainMeas.Round2(outputs[0])
		measurements["Hip"] = domainMeas.Round2(outputs[1])
		measurements["Bicep"] = domainMeas.Round2(outputs[2])
		measurements["Wrist"] = domainMeas.Round2(outputs[3])
		s.countSources(metrics.SourceModel, 4)
	}

	core := domainMeas.CoreFromFormula(in.Age, in.Gender, in.Height)
	if _, ok := measurements["Chest"]; !ok {
		measurements["Chest"] = domainMeas.Round2(core.Chest)
	}
	measurements["Shoulder"] = domainMeas.Round2(core.Shoulder)
	measurements["Sleeve"] = domainMeas.Round2(core.Sleeve)

	secondary := domainMeas.SecondaryLengths(in.Age, in.Gender, in.Height, core.Chest)
	for k, v := range secondary {
		measurements[k] = v
	}
	s.countSources(metrics.SourceFormula, 3+len(secondary))

	rec := domainMeas.NewRecord(in.ParentID, in.ChildID, domainMeas.InputParameters{
		Age:    in.Age,
		Gender: in.Gender.String(),
		Weight: in.Weight,
		Height: in.Height,
		Brand:  in.Brand,
	}, measurements, s.now())

	// A failed write is logged but does not fail the prediction; the caller
	// still receives the assembled measurements.
	if err := s.store.Put(ctx, rec); err != nil {
		s.logger.Error("failed to save measurements",
			logging.String("parent_id", in.ParentID),
			logging.String("child_id", in.ChildID),
			logging.Err(err))
		if s.metrics != nil {
			s.metrics.StoreSaveFailures.Inc()
		}
	} else {
		s.logger.Info("measurements saved",
			logging.String("parent_id", in.ParentID),
			logging.String("child_id", in.ChildID))
	}

	s.countPrediction("success")
	return rec, nil
}

// Update merges manually edited values into an existing record.
func (s *serviceImpl) Update(ctx context.Context, parentID, childID string, values map[string]float64) (*domainMeas.Record, error) {
	if err := domainMeas.ValidateIdentifiers(parentID, childID); err != nil {
		return nil, err
	}

	// Value validation runs inside the store callback so an unknown child
	// reports not-found even when the payload also carries a bad key.  A nil
	// values map rewrites the record untouched: the stored data and the
	// manual-update flag stay as they are.  An empty (non-nil) map still
	// counts as a manual update.
	rec, err := s.store.Update(ctx, parentID, childID, func(rec *domainMeas.Record) error {
		if err := domainMeas.ValidateUpdateValues(values); err != nil {
			return err
		}
		if values != nil {
			rec.ApplyUpdate(values, s.now())
		}
		return nil
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrCodePersistenceFailure) {
			s.logger.Error("failed to save updated measurements",
				logging.String("parent_id", parentID),
				logging.String("child_id", childID),
				logging.Err(err))
			if s.metrics != nil {
				s.metrics.StoreSaveFailures.Inc()
			}
		}
		s.countUpdate("error")
		return nil, err
	}

	s.logger.Info("measurements updated",
		logging.String("parent_id", parentID),
		logging.String("child_id", childID))
	s.countUpdate("success")
	return rec, nil
}

// Get returns the persisted record for a parent/child pair.
func (s *serviceImpl) Get(ctx context.Context, parentID, childID string) (*domainMeas.Record, error) {
	return s.store.Get(ctx, parentID, childID)
}

// Health reports model readiness and the number of distinct parents with
// stored records.
func (s *serviceImpl) Health(ctx context.Context) (*Health, error) {
	total, err := s.store.TotalParents(ctx)
	if err != nil {
		return nil, err
	}
	return &Health{
		ModelLoaded: s.predictor.Loaded(),
		TotalUsers:  total,
	}, nil
}

func (s *serviceImpl) countPrediction(result string) {
	if s.metrics != nil {
		s.metrics.PredictionsTotal.WithLabelValues(result).Inc()
	}
}

func (s *serviceImpl) countUpdate(result string) {
	if s.metrics != nil {
		s.metrics.UpdatesTotal.WithLabelValues(result).Inc()
	}
}

func (s *serviceImpl) countBrandLookup(outcome string) {
	if s.metrics != nil {
		s.metrics.BrandLookupsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *serviceImpl) countSources(source string, n int) {
	if s.metrics != nil {
		s.metrics.PredictionSources.WithLabelValues(source).Add(float64(n))
	}
}
