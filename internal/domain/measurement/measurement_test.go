package measurement

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{"male", Male, false},
		{"FEMALE", Female, false},
		{"m", Male, false},
		{"F", Female, false},
		{" male ", Male, false},
		{"boy", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseGender(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			assert.True(t, apperrors.IsValidation(err))
		} else {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestParseGenderCode(t *testing.T) {
	g, err := ParseGenderCode(1)
	require.NoError(t, err)
	assert.Equal(t, Male, g)

	g, err = ParseGenderCode(2)
	require.NoError(t, err)
	assert.Equal(t, Female, g)

	_, err = ParseGenderCode(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gender must be 1 (male) or 2 (female)")
}

func TestGenderInput_Normalize(t *testing.T) {
	var payload struct {
		Gender GenderInput `json:"gender"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"gender":"f"}`), &payload))
	g, err := payload.Gender.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Female, g)

	require.NoError(t, json.Unmarshal([]byte(`{"gender":1}`), &payload))
	g, err = payload.Gender.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Male, g)

	require.NoError(t, json.Unmarshal([]byte(`{"gender":[true]}`), &payload))
	_, err = payload.Gender.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gender must be a string or integer")

	require.NoError(t, json.Unmarshal([]byte(`{"gender":null}`), &payload))
	_, err = payload.Gender.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gender must be a string or integer")

	require.NoError(t, json.Unmarshal([]byte(`{"gender":1.5}`), &payload))
	_, err = payload.Gender.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gender must be a string or integer")

	payload.Gender = GenderInput{}
	_, err = payload.Gender.Normalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required field: gender")
}

func TestGender_CodeAndString(t *testing.T) {
	assert.Equal(t, 1.0, Male.Code())
	assert.Equal(t, 2.0, Female.Code())
	assert.Equal(t, "male", Male.String())
	assert.Equal(t, "female", Female.String())
}

func TestCoreFromFormula_AgeBands(t *testing.T) {
	// Age 7, height 120: chest 0.47, shoulder 0.23 (male), sleeve 0.32.
	core := CoreFromFormula(7, Male, 120)
	assert.InDelta(t, 56.40, core.Chest, 1e-9)
	assert.InDelta(t, 27.60, core.Shoulder, 1e-9)
	assert.InDelta(t, 38.40, core.Sleeve, 1e-9)

	// Under 6 the middle band applies; female shoulder drops a notch.
	core = CoreFromFormula(4, Female, 100)
	assert.InDelta(t, 49.0, core.Chest, 1e-9)
	assert.InDelta(t, 21.0, core.Shoulder, 1e-9)
	assert.InDelta(t, 30.0, core.Sleeve, 1e-9)
}

func TestSecondaryLengths_Values(t *testing.T) {
	got := SecondaryLengths(7, Male, 120, 56.4)

	assert.InDelta(t, Round2(120*0.42), got["Inseam"], 1e-9)
	assert.InDelta(t, Round2(120*0.38), got["TopLength"], 1e-9)
	assert.InDelta(t, Round2(120*0.43), got["KurtaLength"], 1e-9)
	assert.InDelta(t, Round2(120*0.42+120*0.05), got["PantLength"], 1e-9)
	assert.InDelta(t, Round2(120*0.27), got["KneeLength"], 1e-9)
	assert.InDelta(t, Round2(120*0.40), got["MidiLength"], 1e-9)
	assert.InDelta(t, Round2(120*0.50), got["AnkleLength"], 1e-9)
	assert.InDelta(t, Round2(120*0.58), got["MaxiLength"], 1e-9)
	assert.InDelta(t, Round2(120*0.12), got["Armhole"], 1e-9)
	assert.InDelta(t, Round2(120*0.52*0.115), got["NeckDepthFront"], 1e-9)
	assert.InDelta(t, Round2(120*0.52*0.07), got["NeckDepthBack"], 1e-9)
}

func TestSecondaryLengths_IgnoresCallerChest(t *testing.T) {
	a := SecondaryLengths(7, Male, 120, 10)
	b := SecondaryLengths(7, Male, 120, 9999)
	assert.Equal(t, a, b)
}

func TestSecondaryLengths_NeckDepthFloors(t *testing.T) {
	// Height low enough that the ratio-based neck depths fall below the floors.
	got := SecondaryLengths(3, Male, 30, 0)
	assert.Equal(t, 2.5, got["NeckDepthFront"])
	assert.Equal(t, 1.5, got["NeckDepthBack"])
}

func TestInchesFrom(t *testing.T) {
	cm := map[string]float64{"Chest": 56.4, "Waist": 50.8}
	in := InchesFrom(cm)
	assert.Equal(t, Round2(56.4/2.54), in["Chest"])
	assert.Equal(t, 20.0, in["Waist"])
	assert.Len(t, in, 2)
}

func TestNewRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	brand := "Zara"
	rec := NewRecord("p1", "c1", InputParameters{
		Age: 7, Gender: "male", Weight: 25, Height: 120, Brand: &brand,
	}, map[string]float64{"Chest": 56.4}, now)

	assert.Equal(t, "p1", rec.ParentID)
	assert.Equal(t, "c1", rec.ChildID)
	assert.True(t, rec.IsPredicted)
	assert.False(t, rec.IsManuallyUpdated)
	assert.Equal(t, rec.PredictionTimestamp, rec.LastUpdated)
	assert.Equal(t, Round2(56.4/2.54), rec.MeasurementsInches["Chest"])
}

func TestRecord_ApplyUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rec := NewRecord("p1", "c1", InputParameters{}, map[string]float64{"Chest": 56.4, "Waist": 50.0}, now)
	createdAt := rec.PredictionTimestamp

	later := now.Add(time.Hour)
	rec.ApplyUpdate(map[string]float64{"Waist": 52.345}, later)

	assert.Equal(t, 52.35, rec.MeasurementsCM["Waist"])
	assert.Equal(t, 56.4, rec.MeasurementsCM["Chest"])
	assert.True(t, rec.IsManuallyUpdated)
	assert.True(t, rec.IsPredicted)
	assert.Equal(t, createdAt, rec.PredictionTimestamp)
	assert.NotEqual(t, createdAt, rec.LastUpdated)

	// Inches view is rebuilt for every key, not just the changed one.
	for k, v := range rec.MeasurementsCM {
		assert.Equal(t, Round2(v/2.54), rec.MeasurementsInches[k], "key %s", k)
	}
}

func TestRecord_ApplyUpdate_Idempotent(t *testing.T) {
	now := time.Now()
	rec := NewRecord("p1", "c1", InputParameters{}, map[string]float64{"Chest": 56.4}, now)

	rec.ApplyUpdate(map[string]float64{"Waist": 52.0}, now)
	first := make(map[string]float64, len(rec.MeasurementsCM))
	for k, v := range rec.MeasurementsCM {
		first[k] = v
	}

	rec.ApplyUpdate(map[string]float64{"Waist": 52.0}, now)
	assert.Equal(t, first, rec.MeasurementsCM)
	assert.True(t, rec.IsManuallyUpdated)
	assert.True(t, rec.IsPredicted)
}

func TestRecord_JSONFieldNames(t *testing.T) {
	rec := NewRecord("p1", "c1", InputParameters{Age: 7, Gender: "male", Weight: 25, Height: 120}, map[string]float64{"Chest": 56.4}, time.Now())
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, field := range []string{
		"parent_id", "child_id", "input_parameters", "measurements_cm",
		"measurements_inches", "prediction_timestamp", "last_updated",
		"is_predicted", "is_manually_updated",
	} {
		assert.Contains(t, raw, field)
	}

	var params map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["input_parameters"], &params))
	for _, field := range []string{"age", "gender", "weight", "height", "brand"} {
		assert.Contains(t, params, field)
	}
	assert.Equal(t, "null", string(params["brand"]))
}

func TestValidateIdentifiers(t *testing.T) {
	assert.NoError(t, ValidateIdentifiers("p1", "c1"))

	err := ValidateIdentifiers("  ", "c1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Parent ID must be a non-empty string")

	err = ValidateIdentifiers("p1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Child ID must be a non-empty string")
}

func TestValidateRanges_Boundaries(t *testing.T) {
	// Inclusive boundaries are accepted.
	assert.NoError(t, ValidateRanges(3, 25, 120))
	assert.NoError(t, ValidateRanges(18, 25, 120))
	assert.NoError(t, ValidateRanges(7, 10, 120))
	assert.NoError(t, ValidateRanges(7, 120, 120))
	assert.NoError(t, ValidateRanges(7, 25, 80))
	assert.NoError(t, ValidateRanges(7, 25, 220))

	tests := []struct {
		name                string
		age, weight, height float64
		wantMsg             string
	}{
		{"age too low", 2, 25, 120, "Age must be between 3 and 18 years"},
		{"age too high", 19, 25, 120, "Age must be between 3 and 18 years"},
		{"weight too low", 7, 5, 120, "Weight must be between 10.0 and 120.0 kg"},
		{"weight too high", 7, 130, 120, "Weight must be between 10.0 and 120.0 kg"},
		{"height too low", 7, 25, 70, "Height must be between 80.0 and 220.0 cm"},
		{"height too high", 7, 25, 250, "Height must be between 80.0 and 220.0 cm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRanges(tt.age, tt.weight, tt.height)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestValidateUpdateValues(t *testing.T) {
	assert.NoError(t, ValidateUpdateValues(map[string]float64{"Waist": 52, "Chest": 60}))
	assert.NoError(t, ValidateUpdateValues(nil))

	err := ValidateUpdateValues(map[string]float64{"Foo": 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid measurement key: Foo")
	assert.Contains(t, err.Error(), "Waist, Hip, Bicep, Neck, Wrist, Chest, Shoulder, Sleeve")

	err = ValidateUpdateValues(map[string]float64{"Waist": 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Measurement Waist must be a positive number")

	err = ValidateUpdateValues(map[string]float64{"Hip": -3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Measurement Hip must be a positive number")
}
