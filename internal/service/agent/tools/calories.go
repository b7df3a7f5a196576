package tools

import (
	"context"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BMI category thresholds (closed lower bounds)
const (
	bmiUnderweightLimit = 18.5
	bmiNormalLimit      = 25.0
	bmiOverweightLimit  = 30.0
)

// BMI category labels - a closed enum
const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// Calorie adjustment applied on top of TDEE for gain/loss targets
const targetAdjustment = 500.0

// activityMultipliers maps canonical activity levels to their TDEE factors.
var activityMultipliers = map[string]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
	ActivityExtremelyActive:  1.9,
}

// CaloriesInput is the typed argument contract of the calorie calculator.
// Gender, activity and target are free text resolved through the synonym
// vocabulary; the rest are validated numerics.
type CaloriesInput struct {
	Weight   float64 `json:"weight"` // kg
	Height   float64 `json:"height"` // cm
	Age      int     `json:"age"`    // years
	Gender   string  `json:"gender"`
	Activity string  `json:"activity"`
	Target   string  `json:"target"`
}

// Validate checks the numeric and presence constraints. Vocabulary
// membership is checked separately during calculation.
func (in CaloriesInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Weight, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&in.Height, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&in.Age, validation.Required, validation.Min(1)),
		validation.Field(&in.Gender, validation.Required),
		validation.Field(&in.Activity, validation.Required),
		validation.Field(&in.Target, validation.Required),
	)
}

// CaloriesResult is the calculator's deterministic output. Never persisted.
type CaloriesResult struct {
	BMI                 float64 `json:"bmi"`
	Category            string  `json:"category"`
	BMR                 float64 `json:"bmr"`
	MaintenanceCalories float64 `json:"maintenance_calories"`
	RequiredCalories    float64 `json:"required_calories"`
}

// CaloriesCalculator implements the 'calories-calculator' tool: BMI with
// fixed category thresholds, BMR via Mifflin-St Jeor, TDEE via activity
// multiplier, and a daily calorie budget adjusted for the target.
type CaloriesCalculator struct {
	vocab *Vocabulary
}

// NewCaloriesCalculator creates the calculator with its synonym vocabulary.
func NewCaloriesCalculator(vocab *Vocabulary) *CaloriesCalculator {
	return &CaloriesCalculator{vocab: vocab}
}

// Execute implements the Executor interface.
// Input parameters:
//   - weight (number, required): body weight in kg
//   - height (number, required): body height in cm
//   - age (integer, required): age in years
//   - gender (string, required): matched against the gender vocabulary
//   - activity (string, required): matched against the activity vocabulary
//   - target (string, required): matched against the target vocabulary
func (t *CaloriesCalculator) Execute(ctx context.Context, input map[string]any) (any, error) {
	in, err := decodeCaloriesInput(input)
	if err != nil {
		return nil, err
	}
	return t.Calculate(in)
}

func decodeCaloriesInput(input map[string]any) (CaloriesInput, error) {
	var in CaloriesInput
	var err error

	if in.Weight, err = floatArg(input, "weight"); err != nil {
		return CaloriesInput{}, err
	}
	if in.Height, err = floatArg(input, "height"); err != nil {
		return CaloriesInput{}, err
	}
	if in.Age, err = intArg(input, "age"); err != nil {
		return CaloriesInput{}, err
	}
	if in.Gender, err = stringArg(input, "gender"); err != nil {
		return CaloriesInput{}, err
	}
	if in.Activity, err = stringArg(input, "activity"); err != nil {
		return CaloriesInput{}, err
	}
	if in.Target, err = stringArg(input, "target"); err != nil {
		return CaloriesInput{}, err
	}
	return in, nil
}

// Calculate is the pure computation behind the tool. All outputs are
// rounded to 2 decimal places; no partial result is returned on failure.
func (t *CaloriesCalculator) Calculate(in CaloriesInput) (*CaloriesResult, error) {
	if err := in.Validate(); err != nil {
		return nil, asInvalidArgument(err)
	}

	gender, err := t.vocab.Resolve("gender", in.Gender)
	if err != nil {
		return nil, err
	}
	activity, err := t.vocab.Resolve("activity", in.Activity)
	if err != nil {
		return nil, err
	}
	target, err := t.vocab.Resolve("target", in.Target)
	if err != nil {
		return nil, err
	}

	// BMI is rounded before categorization, so the reported value and its
	// category always agree at the threshold boundaries.
	heightMeters := in.Height / 100
	bmi := round2(in.Weight / (heightMeters * heightMeters))

	// Mifflin-St Jeor: +5 for male, -161 for female
	bmr := 10*in.Weight + 6.25*in.Height - 5*float64(in.Age)
	if gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityMultipliers[activity]

	required := tdee
	switch target {
	case TargetGain:
		required = tdee + targetAdjustment
	case TargetLoss:
		required = tdee - targetAdjustment
	}

	return &CaloriesResult{
		BMI:                 bmi,
		Category:            bmiCategory(bmi),
		BMR:                 round2(bmr),
		MaintenanceCalories: round2(tdee),
		RequiredCalories:    round2(required),
	}, nil
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < bmiUnderweightLimit:
		return CategoryUnderweight
	case bmi < bmiNormalLimit:
		return CategoryNormal
	case bmi < bmiOverweightLimit:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
