package rack

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRack(t *testing.T, id string, total int) *Rack {
	t.Helper()
	r, err := NewRack(id, "Rack "+id, total, Location{DataCenterID: "dc-a", RoomID: "room-1"})
	require.NoError(t, err)
	return r
}

func placement(id string, start, size int) Placement {
	return Placement{
		DeviceID:      id,
		DeviceName:    "Device " + id,
		DeviceSize:    size,
		ServiceID:     "svc-" + id,
		ServiceName:   "Service " + id,
		StartPosition: start,
	}
}

func TestNewRack(t *testing.T) {
	r := newTestRack(t, "rack-1", 42)
	units := r.Units()
	require.Len(t, units, 42)
	for i, u := range units {
		assert.Equal(t, i+1, u.Position)
		assert.True(t, u.IsFree())
	}
	require.NoError(t, r.Verify())

	_, err := NewRack("rack-x", "bad", 0, Location{})
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewRack("", "no id", 42, Location{})
	require.Error(t, err)
}

func TestAvailableStartPositions(t *testing.T) {
	t.Run("empty rack lists every start", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		got, err := r.AvailableStartPositions(1)
		require.NoError(t, err)
		require.Len(t, got, 42)
		assert.Equal(t, 1, got[0])
		assert.Equal(t, 42, got[41])

		got, err = r.AvailableStartPositions(2)
		require.NoError(t, err)
		require.Len(t, got, 41)
		assert.Equal(t, 41, got[40])
	})

	t.Run("full height fits only an empty rack", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		got, err := r.AvailableStartPositions(42)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, got)

		require.NoError(t, r.Install(placement("dev-1", 20, 1)))
		got, err = r.AvailableStartPositions(42)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("skips occupied runs", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 10)
		require.NoError(t, r.Install(placement("dev-1", 3, 2)))
		require.NoError(t, r.Install(placement("dev-2", 8, 1)))

		got, err := r.AvailableStartPositions(2)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 5, 6, 9}, got)

		got, err = r.AvailableStartPositions(3)
		require.NoError(t, err)
		assert.Equal(t, []int{5}, got)
	})

	t.Run("larger than rack", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 24)
		got, err := r.AvailableStartPositions(25)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid size", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 24)
		_, err := r.AvailableStartPositions(0)
		require.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("reflects current occupancy", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 4)
		before, err := r.AvailableStartPositions(4)
		require.NoError(t, err)
		require.Equal(t, []int{1}, before)

		require.NoError(t, r.Install(placement("dev-1", 1, 1)))
		after, err := r.AvailableStartPositions(4)
		require.NoError(t, err)
		assert.Empty(t, after)
	})
}

func TestInstall(t *testing.T) {
	t.Run("scenario A: install on empty 42U rack", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.NoError(t, r.Install(placement("dev-1", 5, 2)))

		stats := r.Statistics()
		assert.Equal(t, 2, stats.UsedUnits)
		assert.Equal(t, 4, stats.UsagePercent)

		for _, pos := range []int{5, 6} {
			u, ok := r.Unit(pos)
			require.True(t, ok)
			require.NotNil(t, u.Occupant)
			assert.Equal(t, "dev-1", u.Occupant.DeviceID)
			assert.Equal(t, 2, u.Occupant.DeviceSize)
			assert.Equal(t, "svc-dev-1", u.Occupant.ServiceID)
		}
		u, _ := r.Unit(7)
		assert.True(t, u.IsFree())
		require.NoError(t, r.Verify())
	})

	t.Run("scenario B: overlap is a slot conflict", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.NoError(t, r.Install(placement("dev-1", 4, 2)))
		before := r.Units()

		err := r.Install(placement("dev-2", 5, 1))
		require.ErrorIs(t, err, ErrSlotConflict)

		var conflict *SlotConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, 5, conflict.Position)
		assert.Equal(t, "dev-1", conflict.DeviceID)
		assert.Equal(t, "rack-1", conflict.RackID)

		assert.Empty(t, cmp.Diff(before, r.Units()))
	})

	t.Run("conflict reports the lowest occupied unit", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.NoError(t, r.Install(placement("dev-1", 6, 1)))
		require.NoError(t, r.Install(placement("dev-2", 8, 2)))

		err := r.Install(placement("dev-3", 5, 5))
		var conflict *SlotConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, 6, conflict.Position)
		assert.Equal(t, "dev-1", conflict.DeviceID)
	})

	t.Run("scenario C: range beyond capacity", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.NoError(t, r.Install(placement("dev-ok", 41, 2)))
		_, err := r.Uninstall("dev-ok")
		require.NoError(t, err)

		err = r.Install(placement("dev-1", 42, 2))
		require.ErrorIs(t, err, ErrOutOfBounds)

		var bounds *BoundsError
		require.True(t, errors.As(err, &bounds))
		assert.Equal(t, 43, bounds.End)
		assert.Greater(t, bounds.End, r.TotalUnits)
		assert.Equal(t, 0, r.Statistics().UsedUnits)
	})

	t.Run("start below one", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.ErrorIs(t, r.Install(placement("dev-1", 0, 1)), ErrOutOfBounds)
		require.ErrorIs(t, r.Install(placement("dev-1", -3, 2)), ErrOutOfBounds)
	})

	t.Run("invalid size", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.ErrorIs(t, r.Install(placement("dev-1", 1, 0)), ErrInvalidSize)
	})

	t.Run("missing device id", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.ErrorIs(t, r.Install(placement("", 1, 1)), ErrMissingDeviceID)
	})

	t.Run("same device twice", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.NoError(t, r.Install(placement("dev-1", 1, 2)))
		require.ErrorIs(t, r.Install(placement("dev-1", 10, 2)), ErrDeviceAlreadyPlaced)
		require.NoError(t, r.Verify())
	})

	t.Run("device without service", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		p := placement("dev-1", 1, 2)
		p.ServiceID, p.ServiceName = "", ""
		require.NoError(t, r.Install(p))
		assert.Equal(t, 0, r.Statistics().ServiceCount)
	})
}

func TestUninstall(t *testing.T) {
	t.Run("round trip restores occupancy", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.NoError(t, r.Install(placement("dev-9", 30, 3)))
		before := r.Units()

		require.NoError(t, r.Install(placement("dev-1", 5, 4)))
		removed, err := r.Uninstall("dev-1")
		require.NoError(t, err)
		assert.Equal(t, 5, removed.StartPosition)
		assert.Equal(t, 4, removed.DeviceSize)

		assert.Empty(t, cmp.Diff(before, r.Units()))
	})

	t.Run("absent device fails the same way every time", func(t *testing.T) {
		r := newTestRack(t, "rack-1", 42)
		require.NoError(t, r.Install(placement("dev-1", 1, 1)))
		_, err := r.Uninstall("dev-1")
		require.NoError(t, err)

		_, first := r.Uninstall("dev-1")
		_, second := r.Uninstall("dev-1")
		require.ErrorIs(t, first, ErrDeviceNotFound)
		require.ErrorIs(t, second, ErrDeviceNotFound)
		assert.Equal(t, first.Error(), second.Error())
	})
}

func TestMove(t *testing.T) {
	t.Run("scenario D: occupied target keeps source placement", func(t *testing.T) {
		rackA := newTestRack(t, "rack-a", 42)
		rackB := newTestRack(t, "rack-b", 42)
		require.NoError(t, rackA.Install(placement("dev-1", 4, 2)))
		require.NoError(t, rackB.Install(placement("dev-7", 11, 1)))
		beforeA, beforeB := rackA.Units(), rackB.Units()

		_, err := Move(rackA, rackB, "dev-1", 10)
		require.ErrorIs(t, err, ErrSlotConflict)

		var moveErr *MoveError
		require.True(t, errors.As(err, &moveErr))
		assert.Equal(t, PhaseTarget, moveErr.Phase)
		assert.Equal(t, "rack-b", moveErr.RackID)

		got, ok := rackA.Placement("dev-1")
		require.True(t, ok)
		assert.Equal(t, 4, got.StartPosition)
		assert.Empty(t, cmp.Diff(beforeA, rackA.Units()))
		assert.Empty(t, cmp.Diff(beforeB, rackB.Units()))
	})

	t.Run("across racks", func(t *testing.T) {
		rackA := newTestRack(t, "rack-a", 42)
		rackB := newTestRack(t, "rack-b", 24)
		require.NoError(t, rackA.Install(placement("dev-1", 4, 2)))

		moved, err := Move(rackA, rackB, "dev-1", 10)
		require.NoError(t, err)
		assert.Equal(t, 10, moved.StartPosition)
		assert.Equal(t, 2, moved.DeviceSize)
		assert.Equal(t, "svc-dev-1", moved.ServiceID)

		_, ok := rackA.Placement("dev-1")
		assert.False(t, ok)
		got, ok := rackB.Placement("dev-1")
		require.True(t, ok)
		assert.Equal(t, 10, got.StartPosition)
		require.NoError(t, rackA.Verify())
		require.NoError(t, rackB.Verify())
	})

	t.Run("within one rack overlapping itself", func(t *testing.T) {
		r := newTestRack(t, "rack-a", 42)
		require.NoError(t, r.Install(placement("dev-1", 4, 3)))

		moved, err := Move(r, r, "dev-1", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, moved.StartPosition)

		u, _ := r.Unit(4)
		assert.True(t, u.IsFree())
		for _, pos := range []int{5, 6, 7} {
			u, _ := r.Unit(pos)
			require.NotNil(t, u.Occupant)
			assert.Equal(t, "dev-1", u.Occupant.DeviceID)
		}
		require.NoError(t, r.Verify())
	})

	t.Run("missing device fails on source", func(t *testing.T) {
		rackA := newTestRack(t, "rack-a", 42)
		rackB := newTestRack(t, "rack-b", 42)

		_, err := Move(rackA, rackB, "dev-1", 1)
		require.ErrorIs(t, err, ErrDeviceNotFound)
		var moveErr *MoveError
		require.True(t, errors.As(err, &moveErr))
		assert.Equal(t, PhaseSource, moveErr.Phase)
	})

	t.Run("out of bounds on target", func(t *testing.T) {
		rackA := newTestRack(t, "rack-a", 42)
		rackB := newTestRack(t, "rack-b", 24)
		require.NoError(t, rackA.Install(placement("dev-1", 30, 2)))

		_, err := Move(rackA, rackB, "dev-1", 24)
		require.ErrorIs(t, err, ErrOutOfBounds)
		_, ok := rackA.Placement("dev-1")
		assert.True(t, ok)
	})

	t.Run("target already holds the device", func(t *testing.T) {
		rackA := newTestRack(t, "rack-a", 42)
		rackB := newTestRack(t, "rack-b", 42)
		require.NoError(t, rackA.Install(placement("dev-1", 1, 1)))
		require.NoError(t, rackB.Install(placement("dev-1", 1, 1)))

		_, err := Move(rackA, rackB, "dev-1", 5)
		require.ErrorIs(t, err, ErrDeviceAlreadyPlaced)
	})
}

func TestInvariantsHoldUnderOperationSequence(t *testing.T) {
	rackA := newTestRack(t, "rack-a", 42)
	rackB := newTestRack(t, "rack-b", 48)

	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("dev-%d", i)
		size := i%3 + 1
		positions, err := rackA.AvailableStartPositions(size)
		require.NoError(t, err)
		require.NotEmpty(t, positions)
		require.NoError(t, rackA.Install(placement(id, positions[0], size)))
	}

	for i := 0; i < 10; i += 2 {
		id := fmt.Sprintf("dev-%d", i)
		p, ok := rackA.Placement(id)
		require.True(t, ok)
		positions, err := rackB.AvailableStartPositions(p.DeviceSize)
		require.NoError(t, err)
		_, err = Move(rackA, rackB, id, positions[len(positions)-1])
		require.NoError(t, err)
	}

	for _, r := range []*Rack{rackA, rackB} {
		require.NoError(t, r.Verify())

		claimed := make(map[int]string)
		for _, p := range r.Placements() {
			for pos := p.StartPosition; pos <= p.EndPosition(); pos++ {
				owner, taken := claimed[pos]
				require.False(t, taken, "unit %d claimed by %s and %s", pos, owner, p.DeviceID)
				claimed[pos] = p.DeviceID
			}
		}

		for _, share := range r.Statistics().Devices {
			p, ok := r.Placement(share.ID)
			require.True(t, ok)
			assert.Equal(t, p.DeviceSize, share.Units)
		}
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	r := newTestRack(t, "rack-1", 10)
	require.NoError(t, r.Install(placement("dev-1", 2, 3)))

	broken := r.Clone()
	broken.units[2].Occupant = nil
	require.ErrorIs(t, broken.Verify(), ErrCorruptOccupancy)

	broken = r.Clone()
	broken.units[7].Occupant = &Occupant{DeviceID: "dev-1", DeviceName: "Device dev-1", DeviceSize: 3, ServiceID: "svc-dev-1", ServiceName: "Service dev-1"}
	require.ErrorIs(t, broken.Verify(), ErrCorruptOccupancy)

	broken = r.Clone()
	broken.units[1].Occupant.DeviceName = "renamed"
	require.ErrorIs(t, broken.Verify(), ErrCorruptOccupancy)

	require.NoError(t, r.Verify())
}

func TestCloneIsIndependent(t *testing.T) {
	r := newTestRack(t, "rack-1", 10)
	require.NoError(t, r.Install(placement("dev-1", 1, 2)))

	c := r.Clone()
	_, err := c.Uninstall("dev-1")
	require.NoError(t, err)

	_, ok := r.Placement("dev-1")
	assert.True(t, ok)
}
