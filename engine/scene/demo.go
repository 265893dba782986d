package scene

import (
	"github.com/Carmen-Shannon/oxy-forward/engine/game_object"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
)

// Rotation rates of the demo pyramid about X, Y and Z relative to its spin.
var demoSpinRates = [3]float32{0.7, 1, 0.3}

// DemoObjects returns the demo pyramid lifted to (0, 1, 0) and the ground plane, whose
// vertices already sit at y = -1.5. The pyramid turns spin radians per second about Y
// and proportionally slower about X and Z.
//
// Parameters:
//   - spin: the Y rotation speed in radians per second; 0 keeps the pyramid still
//
// Returns:
//   - []game_object.GameObject: pyramid, then ground
func DemoObjects(spin float32) []game_object.GameObject {
	pyramid := game_object.NewGameObject(
		game_object.WithModel(model.Pyramid()),
		game_object.WithPosition(0, 1, 0),
		game_object.WithRotationSpeed(demoSpinRates[0]*spin, demoSpinRates[1]*spin, demoSpinRates[2]*spin),
	)
	ground := game_object.NewGameObject(
		game_object.WithModel(model.GroundPlane()),
	)
	return []game_object.GameObject{pyramid, ground}
}
