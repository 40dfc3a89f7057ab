package input

import (
	"math/rand"
	"testing"

	"github.com/Chemberlein/ADA-Cosmos/common"
	"github.com/Chemberlein/ADA-Cosmos/engine/camera"
	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/Chemberlein/ADA-Cosmos/engine/layout"
	"github.com/Chemberlein/ADA-Cosmos/engine/scene"
	"github.com/Chemberlein/ADA-Cosmos/engine/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	loop   scheduler.Loop
	rig    camera.Rig
	cam    camera.Camera
	scene  scene.Scene
	router *Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{loop: scheduler.NewLoop(), rig: camera.NewRig()}
	f.cam = camera.NewCamera(camera.WithViewport(800, 600))
	f.scene = scene.NewScene(f.loop,
		scene.WithSurface(f.rig),
		scene.WithCamera(f.cam),
		scene.WithWorkers(1),
		scene.WithLayoutOptions(
			layout.WithRand(rand.New(rand.NewSource(3))),
			layout.WithExplorerRadius(200),
		),
	)
	require.NoError(t, f.scene.SetData(nil,
		&entity.HubData{Price: 0.4},
		&entity.ExplorerInput{Address: "addr1qxyz0123456789abcdefghijklmnop", Payload: "wallet"},
	))
	f.scene.Mount()
	f.cam.Update()
	f.router = NewRouter(f.scene, WithRig(f.rig))
	return f
}

func TestNewRouterPanicsWithoutScene(t *testing.T) {
	assert.Panics(t, func() { NewRouter(nil) })
}

func TestLeftClickSelectsPickedNode(t *testing.T) {
	f := newFixture(t)

	f.router.MouseButton(common.MouseLeft, true, 400, 300)
	f.router.MouseButton(common.MouseLeft, false, 400, 300)

	sel := f.scene.Focus().Selected()
	require.NotNil(t, sel)
	assert.Equal(t, entity.HubID, sel.ID())
	assert.Equal(t, camera.StateTransitioning, f.scene.Focus().State())
}

func TestLeftClickOnEmptySpaceSelectsNothing(t *testing.T) {
	f := newFixture(t)

	f.router.MouseButton(common.MouseLeft, true, 5, 5)
	f.router.MouseButton(common.MouseLeft, false, 5, 5)
	assert.Nil(t, f.scene.Focus().Selected())
}

func TestDragRotatesInsteadOfSelecting(t *testing.T) {
	f := newFixture(t)
	before := f.rig.Pose().Position

	f.router.MouseButton(common.MouseLeft, true, 400, 300)
	f.router.MouseMove(420, 300)
	f.router.MouseMove(460, 300)
	f.router.MouseButton(common.MouseLeft, false, 400, 300)

	assert.Nil(t, f.scene.Focus().Selected())
	after := f.rig.Pose().Position
	assert.NotEqual(t, before, after)
	assert.InDelta(t, before.Len(), after.Len(), 1e-2)
}

func TestPressInterruptsFocus(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.scene.Activate(f.scene.Layout().Hub))

	f.router.MouseButton(common.MouseMiddle, true, 0, 0)
	assert.Equal(t, camera.StateIdle, f.scene.Focus().State())
}

func TestRightClickOnExplorerFocusesHub(t *testing.T) {
	f := newFixture(t)
	explorer := f.scene.Layout().Explorer
	screen, _, ok := f.cam.Project(explorer.Position())
	require.True(t, ok)

	f.router.MouseButton(common.MouseRight, true, int32(screen[0]), int32(screen[1]))
	sel := f.scene.Focus().Selected()
	require.NotNil(t, sel)
	assert.Equal(t, entity.HubID, sel.ID())
}

func TestScrollInterruptsAndZooms(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.scene.Activate(f.scene.Layout().Hub))
	f.rig.MovePose(f.rig.Pose().Position, f.rig.Pose().LookAt, 0)
	distance := f.rig.Pose().Position.Sub(f.rig.Pose().LookAt).Len()

	f.router.Scroll(1)
	assert.Equal(t, camera.StateIdle, f.scene.Focus().State())
	assert.InDelta(t, distance*0.9, f.rig.Pose().Position.Sub(f.rig.Pose().LookAt).Len(), 1e-1)
}

func TestMouseMoveHovers(t *testing.T) {
	f := newFixture(t)

	f.router.MouseMove(400, 300)
	require.NotNil(t, f.scene.Hovered())
	assert.Equal(t, entity.HubID, f.scene.Hovered().ID())
}

func TestKeys(t *testing.T) {
	f := newFixture(t)

	f.router.KeyDown(common.KeyH)
	require.NotNil(t, f.scene.Focus().Selected())
	assert.Equal(t, entity.HubID, f.scene.Focus().Selected().ID())

	f.router.KeyDown(common.KeySpace)
	assert.Equal(t, camera.StateIdle, f.scene.Focus().State())

	f.router.KeyDown(common.KeyF)
	assert.True(t, f.rig.Animating())

	f.router.KeyDown(999)
}

func TestResizeForwardsToCamera(t *testing.T) {
	f := newFixture(t)
	f.router.Resize(1024, 512)
	w, h := f.cam.Viewport()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)
}
