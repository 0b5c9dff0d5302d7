package bodynet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// Artifact is the exported form of the trained regression model: one linear
// equation per output, evaluated over the fixed feature vector.
type Artifact struct {
	ModelID      string      `json:"model_id"`
	Version      string      `json:"version"`
	FeatureNames []string    `json:"feature_names"`
	OutputNames  []string    `json:"output_names"`
	Intercepts   []float64   `json:"intercepts"`
	Coefficients [][]float64 `json:"coefficients"`
}

// Validate checks the artifact's dimensional consistency.
func (a *Artifact) Validate() error {
	if len(a.FeatureNames) != FeatureCount {
		return apperrors.New(apperrors.ErrCodeArtifactInvalid,
			fmt.Sprintf("artifact must declare %d features, got %d", FeatureCount, len(a.FeatureNames)))
	}
	if len(a.OutputNames) < OutputCount {
		return apperrors.New(apperrors.ErrCodeArtifactInvalid,
			fmt.Sprintf("artifact must declare at least %d outputs, got %d", OutputCount, len(a.OutputNames)))
	}
	if len(a.Intercepts) != len(a.OutputNames) {
		return apperrors.New(apperrors.ErrCodeArtifactInvalid, "intercept count must match output count")
	}
	if len(a.Coefficients) != len(a.OutputNames) {
		return apperrors.New(apperrors.ErrCodeArtifactInvalid, "coefficient row count must match output count")
	}
	for i, row := range a.Coefficients {
		if len(row) != FeatureCount {
			return apperrors.New(apperrors.ErrCodeArtifactInvalid,
				fmt.Sprintf("coefficient row %d must have %d entries, got %d", i, FeatureCount, len(row)))
		}
	}
	return nil
}

// artifactBackend evaluates the linear model in-process.
type artifactBackend struct {
	artifact *Artifact
}

// NewArtifactBackend loads the regression artifact from path and returns an
// in-process inference backend.
func NewArtifactBackend(path string) (Backend, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeArtifactInvalid,
			fmt.Sprintf("failed to read model artifact %q", path))
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeArtifactInvalid,
			fmt.Sprintf("failed to parse model artifact %q", path))
	}
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &artifactBackend{artifact: &artifact}, nil
}

func (b *artifactBackend) Predict(ctx context.Context, features []float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(features) != FeatureCount {
		return nil, apperrors.New(apperrors.ErrCodeModelInputInvalid, "feature vector must have exactly 4 elements")
	}

	outputs := make([]float64, len(b.artifact.OutputNames))
	for i := range outputs {
		v := b.artifact.Intercepts[i]
		for j, f := range features {
			v += b.artifact.Coefficients[i][j] * f
		}
		outputs[i] = v
	}
	return outputs, nil
}

func (b *artifactBackend) Healthy(ctx context.Context) error {
	return ctx.Err()
}

func (b *artifactBackend) Close() error {
	return nil
}
