package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got common.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], eps, "component %d", i)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assertVec3(t, common.V3(0, 1, 2), c.Position())
	assertVec3(t, common.V3(0, 0, -1), c.Direction())
	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())

	u := c.Uniform()
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, [3]float32{0, 1, 2}, u.ViewPosition)
}

func TestViewProjectionCentersLookTarget(t *testing.T) {
	c := NewCamera(WithSize(800, 600))
	vp := c.ViewProjectionMatrix()

	// A point straight ahead of the eye lands in the middle of the screen.
	clip := common.MulVec4(vp[:], common.Vec4{0, 1, -3, 1})
	require.Greater(t, clip[3], float32(0))
	assert.InDelta(t, 0, clip[0]/clip[3], eps)
	assert.InDelta(t, 0, clip[1]/clip[3], eps)

	depth := clip[2] / clip[3]
	assert.Greater(t, depth, float32(0))
	assert.Less(t, depth, float32(1))
}

func TestUpdateMovesAlongDirection(t *testing.T) {
	tests := []struct {
		name string
		key  int
		want common.Vec3
	}{
		{"forward", common.KeyW, common.V3(0, 1, 1.8)},
		{"backward arrow", common.KeyDown, common.V3(0, 1, 2.2)},
		{"strafe right", common.KeyD, common.V3(0.2, 1, 2)},
		{"strafe left arrow", common.KeyLeft, common.V3(-0.2, 1, 2)},
		{"up", common.KeySpace, common.V3(0, 1.2, 2)},
		{"down", common.KeyLeftShift, common.V3(0, 0.8, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera()
			ctrl := NewCameraController()
			require.True(t, ctrl.ProcessKey(tt.key, true))

			c.Update(ctrl)
			assertVec3(t, tt.want, c.Position())

			ctrl.ProcessKey(tt.key, false)
			c.Update(ctrl)
			assertVec3(t, tt.want, c.Position())
		})
	}
}

func TestUnboundKeyIsIgnored(t *testing.T) {
	ctrl := NewCameraController()
	assert.False(t, ctrl.ProcessKey(common.KeyP, true))
	assert.Equal(t, ControllerState{Speed: 0.2, Sensitivity: 0.4}, ctrl.State())
}

func TestMouseRotationAndPitchClamp(t *testing.T) {
	c := NewCamera()
	ctrl := NewCameraController(WithSensitivity(1))

	ctrl.ProcessMouse(-90, 0)
	c.Update(ctrl)
	assert.InDelta(t, 0, c.Yaw(), eps)
	assertVec3(t, common.V3(1, 0, 0), c.Direction())

	ctrl.ResetMouse()
	ctrl.ProcessMouse(0, -1000)
	c.Update(ctrl)
	assert.Equal(t, float32(89), c.Pitch())

	ctrl.ProcessMouse(0, 5000)
	c.Update(ctrl)
	assert.Equal(t, float32(-89), c.Pitch())
}

func TestResizeIgnoresEmptyFramebuffer(t *testing.T) {
	c := NewCamera(WithSize(800, 600))
	c.Resize(0, 0)
	assert.InDelta(t, 800.0/600.0, c.Aspect(), eps)

	c.Resize(1000, 500)
	assert.InDelta(t, 2, c.Aspect(), eps)
}

func TestCameraUniformMarshal(t *testing.T) {
	u := GPUCameraUniform{ViewProj: common.Identity4(), ViewPosition: [3]float32{1, 2, 3}}
	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, []int{0, 64, 76}, u.Offsets())
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, buf[0:4])
	assert.Equal(t, []byte{0, 0, 0x40, 0x40}, buf[72:76])
}
