package measurement

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainMeas "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/persistence"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

type stubPredictor struct {
	loaded   bool
	outputs  []float64
	err      error
	lastFeat []float64
	calls    int
}

func (p *stubPredictor) Loaded() bool { return p.loaded }

func (p *stubPredictor) Predict(_ context.Context, features []float64) ([]float64, error) {
	p.calls++
	p.lastFeat = features
	return p.outputs, p.err
}

type stubResolver struct {
	result map[string]float64
	calls  int
}

func (r *stubResolver) Resolve(_ string, _ float64, _ domainMeas.Gender) map[string]float64 {
	r.calls++
	return r.result
}

func newTestService(t *testing.T, resolver BrandResolver, predictor Predictor) (Service, persistence.Store) {
	t.Helper()
	store := persistence.NewFileStore(filepath.Join(t.TempDir(), "measurements.json"), logging.NewNopLogger())
	return NewService(store, resolver, predictor, logging.NewNopLogger(), nil), store
}

func validInput() domainMeas.PredictInput {
	return domainMeas.PredictInput{
		ParentID: "p1",
		ChildID:  "c1",
		Age:      7,
		Gender:   domainMeas.Male,
		Weight:   25,
		Height:   120,
	}
}

func TestPredict_NoBrand(t *testing.T) {
	predictor := &stubPredictor{loaded: true, outputs: []float64{52.123, 61.789, 17.5, 11.25}}
	svc, store := newTestService(t, &stubResolver{}, predictor)

	rec, err := svc.Predict(context.Background(), validInput())
	require.NoError(t, err)

	// Formula-derived values for age 7, height 120.
	assert.Equal(t, 56.40, rec.MeasurementsCM["Chest"])
	assert.Equal(t, 27.60, rec.MeasurementsCM["Shoulder"])
	assert.Equal(t, 38.40, rec.MeasurementsCM["Sleeve"])

	// Model outputs read positionally and rounded.
	assert.Equal(t, 52.12, rec.MeasurementsCM["Waist"])
	assert.Equal(t, 61.79, rec.MeasurementsCM["Hip"])
	assert.Equal(t, 17.5, rec.MeasurementsCM["Bicep"])
	assert.Equal(t, 11.25, rec.MeasurementsCM["Wrist"])
	assert.Equal(t, []float64{7, 1, 120, 25}, predictor.lastFeat)

	// Secondary lengths are always merged.
	assert.Contains(t, rec.MeasurementsCM, "Inseam")
	assert.Contains(t, rec.MeasurementsCM, "KurtaLength")
	assert.Contains(t, rec.MeasurementsCM, "NeckDepthFront")

	assert.True(t, rec.IsPredicted)
	assert.False(t, rec.IsManuallyUpdated)
	assert.Equal(t, "male", rec.InputParameters.Gender)

	// Record was persisted.
	stored, err := store.Get(context.Background(), "p1", "c1")
	require.NoError(t, err)
	assert.Equal(t, rec.MeasurementsCM, stored.MeasurementsCM)

	// Inches view is complete and consistent.
	for k, v := range rec.MeasurementsCM {
		assert.Equal(t, domainMeas.Round2(v/2.54), rec.MeasurementsInches[k], "key %s", k)
	}
}

func TestPredict_BrandSeedsSkipModel(t *testing.T) {
	predictor := &stubPredictor{loaded: true, outputs: []float64{1, 2, 3, 4}}
	resolver := &stubResolver{result: map[string]float64{"Chest": 58.0, "Waist": 53.0, "Hip": 61.0}}
	svc, _ := newTestService(t, resolver, predictor)

	in := validInput()
	brand := "Zara"
	in.Brand = &brand

	rec, err := svc.Predict(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, 0, predictor.calls, "model must not run when brand data seeded the map")

	// Brand chest survives; shoulder and sleeve still come from formulas.
	assert.Equal(t, 58.0, rec.MeasurementsCM["Chest"])
	assert.Equal(t, 27.60, rec.MeasurementsCM["Shoulder"])
	assert.Equal(t, 38.40, rec.MeasurementsCM["Sleeve"])
	assert.Equal(t, 53.0, rec.MeasurementsCM["Waist"])

	// No model fallback means no Bicep/Wrist; that is accepted, not an error.
	assert.NotContains(t, rec.MeasurementsCM, "Bicep")
	assert.NotContains(t, rec.MeasurementsCM, "Wrist")
}

func TestPredict_UnknownBrandFallsThrough(t *testing.T) {
	predictor := &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}}
	svc, _ := newTestService(t, &stubResolver{result: nil}, predictor)

	in := validInput()
	brand := "Nonexistent"
	in.Brand = &brand

	withBrand, err := svc.Predict(context.Background(), in)
	require.NoError(t, err)

	svc2, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	noBrand, err := svc2.Predict(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, noBrand.MeasurementsCM, withBrand.MeasurementsCM)
}

func TestPredict_BrandChestMissingUsesFormula(t *testing.T) {
	// Brand row supplied waist/hip but its chest cell was unparseable.
	resolver := &stubResolver{result: map[string]float64{"Waist": 53.0, "Hip": 61.0}}
	svc, _ := newTestService(t, resolver, &stubPredictor{loaded: true, outputs: []float64{1, 2, 3, 4}})

	in := validInput()
	brand := "Allen Solly"
	in.Brand = &brand

	rec, err := svc.Predict(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 56.40, rec.MeasurementsCM["Chest"])
	assert.Equal(t, 53.0, rec.MeasurementsCM["Waist"])
}

func TestPredict_ModelNotLoaded(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: false})

	_, err := svc.Predict(context.Background(), validInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsModelNotLoaded(err))
	assert.Contains(t, err.Error(), "Model not initialized")
}

func TestPredict_ModelNotLoadedEvenWithBrand(t *testing.T) {
	// Readiness is checked up front, before the brand path could make the
	// model unnecessary.
	resolver := &stubResolver{result: map[string]float64{"Chest": 58}}
	svc, _ := newTestService(t, resolver, &stubPredictor{loaded: false})

	in := validInput()
	brand := "Zara"
	in.Brand = &brand

	_, err := svc.Predict(context.Background(), in)
	assert.True(t, apperrors.IsModelNotLoaded(err))
	assert.Equal(t, 0, resolver.calls)
}

func TestPredict_Validation(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{1, 2, 3, 4}})

	tests := []struct {
		name    string
		mutate  func(*domainMeas.PredictInput)
		wantMsg string
	}{
		{"empty parent", func(in *domainMeas.PredictInput) { in.ParentID = " " }, "Parent ID must be a non-empty string"},
		{"empty child", func(in *domainMeas.PredictInput) { in.ChildID = "" }, "Child ID must be a non-empty string"},
		{"age low", func(in *domainMeas.PredictInput) { in.Age = 2 }, "Age must be between 3 and 18 years"},
		{"age high", func(in *domainMeas.PredictInput) { in.Age = 19 }, "Age must be between 3 and 18 years"},
		{"weight low", func(in *domainMeas.PredictInput) { in.Weight = 5 }, "Weight must be between 10.0 and 120.0 kg"},
		{"height high", func(in *domainMeas.PredictInput) { in.Height = 250 }, "Height must be between 80.0 and 220.0 cm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Predict(context.Background(), in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPredict_BoundaryValuesAccepted(t *testing.T) {
	for _, in := range []domainMeas.PredictInput{
		{ParentID: "p", ChildID: "c", Age: 3, Gender: domainMeas.Male, Weight: 10, Height: 80},
		{ParentID: "p", ChildID: "c", Age: 18, Gender: domainMeas.Female, Weight: 120, Height: 220},
	} {
		svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{1, 2, 3, 4}})
		_, err := svc.Predict(context.Background(), in)
		assert.NoError(t, err)
	}
}

func TestPredict_OverwritesExistingRecord(t *testing.T) {
	predictor := &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}}
	svc, store := newTestService(t, &stubResolver{}, predictor)
	ctx := context.Background()

	_, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "p1", "c1", map[string]float64{"Waist": 99})
	require.NoError(t, err)

	// A new prediction replaces the whole record, clearing the manual flag.
	rec, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)
	assert.False(t, rec.IsManuallyUpdated)
	assert.Equal(t, 52.0, rec.MeasurementsCM["Waist"])

	stored, err := store.Get(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.False(t, stored.IsManuallyUpdated)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	ctx := context.Background()

	_, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)

	rec, err := svc.Update(ctx, "p1", "c1", map[string]float64{"Waist": 54.236})
	require.NoError(t, err)
	assert.Equal(t, 54.24, rec.MeasurementsCM["Waist"])
	assert.True(t, rec.IsManuallyUpdated)
	assert.True(t, rec.IsPredicted)

	for k, v := range rec.MeasurementsCM {
		assert.Equal(t, domainMeas.Round2(v/2.54), rec.MeasurementsInches[k], "key %s", k)
	}
}

func TestUpdate_Idempotent(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	ctx := context.Background()

	_, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)

	first, err := svc.Update(ctx, "p1", "c1", map[string]float64{"Waist": 54.0})
	require.NoError(t, err)
	second, err := svc.Update(ctx, "p1", "c1", map[string]float64{"Waist": 54.0})
	require.NoError(t, err)

	assert.Equal(t, first.MeasurementsCM, second.MeasurementsCM)
	assert.True(t, second.IsManuallyUpdated)
	assert.True(t, second.IsPredicted)
}

func TestUpdate_NilValuesLeavesRecordUntouched(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	ctx := context.Background()

	predicted, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)

	rec, err := svc.Update(ctx, "p1", "c1", nil)
	require.NoError(t, err)

	assert.Equal(t, predicted.MeasurementsCM, rec.MeasurementsCM)
	assert.Equal(t, predicted.LastUpdated, rec.LastUpdated)
	assert.False(t, rec.IsManuallyUpdated)

	// An empty non-nil map still counts as a manual update.
	rec, err = svc.Update(ctx, "p1", "c1", map[string]float64{})
	require.NoError(t, err)
	assert.True(t, rec.IsManuallyUpdated)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true})

	_, err := svc.Update(context.Background(), "p1", "ghost", map[string]float64{"Waist": 54})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Please make a prediction first")
}

func TestUpdate_InvalidKey(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	ctx := context.Background()

	_, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "p1", "c1", map[string]float64{"Foo": 10})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Invalid measurement key: Foo")
	assert.Contains(t, err.Error(), "Waist, Hip, Bicep, Neck, Wrist, Chest, Shoulder, Sleeve")
}

func TestUpdate_UnknownChildWinsOverInvalidKey(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})

	// No prior prediction: the missing record is reported even though the
	// payload also carries an unknown key.
	_, err := svc.Update(context.Background(), "p1", "c1", map[string]float64{"Foo": 10})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Child c1 under parent p1 not found. Please make a prediction first.")
}

func TestUpdate_NonPositiveValue(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	ctx := context.Background()

	_, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "p1", "c1", map[string]float64{"Waist": -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Measurement Waist must be a positive number")
}

func TestGet(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	ctx := context.Background()

	_, err := svc.Predict(ctx, validInput())
	require.NoError(t, err)

	rec, err := svc.Get(ctx, "p1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", rec.ChildID)

	_, err = svc.Get(ctx, "p1", "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHealth(t *testing.T) {
	svc, _ := newTestService(t, &stubResolver{}, &stubPredictor{loaded: true, outputs: []float64{52, 61, 17, 11}})
	ctx := context.Background()

	h, err := svc.Health(ctx)
	require.NoError(t, err)
	assert.True(t, h.ModelLoaded)
	assert.Equal(t, 0, h.TotalUsers)

	_, err = svc.Predict(ctx, validInput())
	require.NoError(t, err)

	in2 := validInput()
	in2.ParentID = "p2"
	_, err = svc.Predict(ctx, in2)
	require.NoError(t, err)

	h, err = svc.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, h.TotalUsers)
}
