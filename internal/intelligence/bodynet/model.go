// Package bodynet manages the statistical body-measurement model.  The model
// is consumed as an opaque predictor: a fixed feature vector in, a positional
// output vector out.
package bodynet

import (
	"context"
	"sync"
	"time"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// FeatureCount is the length of the input vector: age, gender code, height,
// weight, in that order.
const FeatureCount = 4

// OutputCount is the minimum number of model outputs.  The first four are
// read positionally as waist, hip, bicep, wrist.
const OutputCount = 4

// Backend performs the actual inference.  Implementations must be safe for
// concurrent use.
type Backend interface {
	Predict(ctx context.Context, features []float64) ([]float64, error)
	Healthy(ctx context.Context) error
	Close() error
}

// ModelState represents the lifecycle state of the managed model.
type ModelState int

const (
	ModelStateUnloaded ModelState = iota
	ModelStateLoading
	ModelStateReady
	ModelStateError
)

func (s ModelState) String() string {
	switch s {
	case ModelStateUnloaded:
		return "UNLOADED"
	case ModelStateLoading:
		return "LOADING"
	case ModelStateReady:
		return "READY"
	case ModelStateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ManagerConfig holds the model manager settings.
type ManagerConfig struct {
	ArtifactPath string        `json:"artifact_path" yaml:"artifact_path"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
}

// Manager owns the model lifecycle and gates every prediction behind an
// explicit loaded state.  Callers receive a model-not-loaded error rather
// than touching an uninitialized backend.
type Manager struct {
	config  ManagerConfig
	backend Backend
	logger  logging.Logger

	mu      sync.RWMutex
	state   ModelState
	loadErr error
}

// NewManager creates a manager over the given backend.  The backend is not
// touched until Load is called.
func NewManager(config ManagerConfig, backend Backend, logger logging.Logger) (*Manager, error) {
	if backend == nil {
		return nil, apperrors.New(apperrors.ErrCodeModelInputInvalid, "backend is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Manager{
		config:  config,
		backend: backend,
		logger:  logger.Named("bodynet"),
		state:   ModelStateUnloaded,
	}, nil
}

// Load verifies the backend and marks the model ready.  Loading an already
// ready model is a no-op.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == ModelStateReady {
		return nil
	}
	m.state = ModelStateLoading
	start := time.Now()

	if err := m.backend.Healthy(ctx); err != nil {
		m.state = ModelStateError
		m.loadErr = err
		m.logger.Error("model load failed", logging.Err(err))
		return apperrors.Wrap(err, apperrors.ErrCodeArtifactInvalid, "model backend health check failed")
	}

	m.state = ModelStateReady
	m.loadErr = nil
	m.logger.Info("model loaded",
		logging.String("artifact", m.config.ArtifactPath),
		logging.Duration("duration", time.Since(start)))
	return nil
}

// Unload closes the backend and returns the manager to the unloaded state.
func (m *Manager) Unload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == ModelStateUnloaded {
		return nil
	}
	if err := m.backend.Close(); err != nil {
		m.state = ModelStateError
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "model backend close failed")
	}
	m.state = ModelStateUnloaded
	m.logger.Info("model unloaded")
	return nil
}

// State returns the current lifecycle state.
func (m *Manager) State() ModelState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Loaded reports whether the model is ready to serve predictions.
func (m *Manager) Loaded() bool {
	return m.State() == ModelStateReady
}

// LastError returns the most recent load error, if any.
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadErr
}

// Predict runs the model over the feature vector [age, genderCode, height,
// weight] and returns the raw output vector.  The first four outputs are
// waist, hip, bicep, and wrist circumference in centimeters.
func (m *Manager) Predict(ctx context.Context, features []float64) ([]float64, error) {
	if !m.Loaded() {
		return nil, apperrors.ModelNotLoaded()
	}
	if len(features) != FeatureCount {
		return nil, apperrors.New(apperrors.ErrCodeModelInputInvalid, "feature vector must have exactly 4 elements")
	}

	if m.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.Timeout)
		defer cancel()
	}

	outputs, err := m.backend.Predict(ctx, features)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInferenceFailed, "model inference failed")
	}
	if len(outputs) < OutputCount {
		return nil, apperrors.New(apperrors.ErrCodeInferenceFailed, "model returned fewer than 4 outputs")
	}
	return outputs, nil
}
