package attr

import "github.com/gogpu/ggchart"

// Canonical transform attribute names.
const (
	KeyTranslationX    = "translationX"
	KeyTranslationY    = "translationY"
	KeyScalingX        = "scalingX"
	KeyScalingY        = "scalingY"
	KeyScalingCenterX  = "scalingCenterX"
	KeyScalingCenterY  = "scalingCenterY"
	KeyRotationRads    = "rotationRads"
	KeyRotationCenterX = "rotationCenterX"
	KeyRotationCenterY = "rotationCenterY"
	KeyMatrix          = "matrix"
)

var elementaryKeys = []string{
	KeyTranslationX, KeyTranslationY,
	KeyScalingX, KeyScalingY,
	KeyScalingCenterX, KeyScalingCenterY,
	KeyRotationRads, KeyRotationCenterX, KeyRotationCenterY,
}

// Shorthand keys expanded by Normalize before alias resolution.
const (
	keyTranslation = "translation"
	keyTranslate   = "translate"
	keyScaling     = "scaling"
	keyScale       = "scale"
	keyRotation    = "rotation"
	keyRotate      = "rotate"
)

func isShorthand(k string) bool {
	switch k {
	case keyTranslation, keyTranslate, keyScaling, keyScale, keyRotation, keyRotate:
		return true
	}
	return false
}

// Transform is the canonical transform record of a live set. Matrix is
// always consistent with the elementary fields.
type Transform struct {
	TranslationX, TranslationY     float64
	ScalingX, ScalingY             float64
	ScalingCenterX, ScalingCenterY float64
	RotationRads                   float64
	RotationCenterX                float64
	RotationCenterY                float64
	Matrix                         ggchart.Matrix
}

// IdentityTransform is the record of an untransformed shape.
func IdentityTransform() Transform {
	return Transform{ScalingX: 1, ScalingY: 1, Matrix: ggchart.Identity()}
}

// ComposeAround builds the matrix of t: scale about the scaling center,
// rotate about the rotation center, then translate.
func ComposeAround(t Transform) ggchart.Matrix {
	return ggchart.Translate(t.TranslationX, t.TranslationY).
		Multiply(ggchart.RotateAbout(t.RotationRads, t.RotationCenterX, t.RotationCenterY)).
		Multiply(ggchart.ScaleAbout(t.ScalingX, t.ScalingY, t.ScalingCenterX, t.ScalingCenterY))
}

// field returns the Transform field backing an elementary key.
func (t *Transform) field(key string) *float64 {
	switch key {
	case KeyTranslationX:
		return &t.TranslationX
	case KeyTranslationY:
		return &t.TranslationY
	case KeyScalingX:
		return &t.ScalingX
	case KeyScalingY:
		return &t.ScalingY
	case KeyScalingCenterX:
		return &t.ScalingCenterX
	case KeyScalingCenterY:
		return &t.ScalingCenterY
	case KeyRotationRads:
		return &t.RotationRads
	case KeyRotationCenterX:
		return &t.RotationCenterX
	case KeyRotationCenterY:
		return &t.RotationCenterY
	}
	return nil
}

// TransformProcessors declares the canonical transform attributes. Base
// shape definitions include it.
func TransformProcessors() map[string]Processor {
	return map[string]Processor{
		KeyTranslationX:    Number(),
		KeyTranslationY:    Number(),
		KeyScalingX:        Number(),
		KeyScalingY:        Number(),
		KeyScalingCenterX:  Number(),
		KeyScalingCenterY:  Number(),
		KeyRotationRads:    Number(),
		KeyRotationCenterX: Number(),
		KeyRotationCenterY: Number(),
		KeyMatrix:          MatrixProc(),
	}
}
