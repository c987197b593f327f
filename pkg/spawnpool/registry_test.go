package spawnpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasswing-dev/spawnpool/pkg/scene"
	"github.com/glasswing-dev/spawnpool/pkg/spawnpool"
	"github.com/glasswing-dev/spawnpool/pkg/testutil"
	"github.com/glasswing-dev/spawnpool/pkg/transform"
)

type fixture struct {
	world    *scene.World
	holder   *scene.Node
	registry *spawnpool.Registry[*scene.Node]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	world := scene.NewWorld("test")
	holder := world.NewNode("recycled")
	registry := spawnpool.New[*scene.Node](world,
		spawnpool.WithHolder(holder),
		spawnpool.WithLogger[*scene.Node](testutil.TestLogger(t)),
	)
	return &fixture{world: world, holder: holder, registry: registry}
}

func (f *fixture) spawn(t *testing.T, template *scene.Node) *scene.Node {
	t.Helper()
	inst, err := f.registry.Spawn(template, spawnpool.SpawnOptions[*scene.Node]{})
	require.NoError(t, err)
	require.NotNil(t, inst)
	return inst
}

func TestCreatePool(t *testing.T) {
	t.Run("pre-populates inactive copies", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("enemy")

		require.NoError(t, f.registry.CreatePool(prefab, 5))

		assert.Equal(t, 5, f.registry.CountPooled(prefab))
		assert.Equal(t, 0, f.registry.CountSpawned(prefab))
		for _, inst := range f.registry.Pooled(prefab) {
			assert.False(t, inst.Active(), "pooled copies must be inactive")
		}
	})

	t.Run("restores template active state", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("enemy")
		require.True(t, prefab.Active())

		require.NoError(t, f.registry.CreatePool(prefab, 3))
		assert.True(t, prefab.Active())

		inactive := f.world.NewNode("hidden")
		f.world.SetActive(inactive, false)
		require.NoError(t, f.registry.CreatePool(inactive, 2))
		assert.False(t, inactive.Active())
	})

	t.Run("idempotent", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("enemy")

		require.NoError(t, f.registry.CreatePool(prefab, 5))
		require.NoError(t, f.registry.CreatePool(prefab, 5))

		assert.Equal(t, 5, f.registry.CountPooled(prefab))
	})

	t.Run("zero size creates empty pool", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("enemy")

		require.NoError(t, f.registry.CreatePool(prefab, 0))
		assert.Equal(t, 0, f.registry.CountPooled(prefab))
	})

	t.Run("unset template is a contract violation", func(t *testing.T) {
		f := newFixture(t)
		err := f.registry.CreatePool(nil, 5)
		require.Error(t, err)
	})
}

func TestSpawn(t *testing.T) {
	t.Run("reuses oldest free instance first", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 2))

		pooled := f.registry.Pooled(prefab)
		inst := f.spawn(t, prefab)

		assert.Same(t, pooled[0], inst, "spawn must pop the front of the free list")
		assert.True(t, inst.Active())
		assert.True(t, f.registry.IsSpawned(inst))
		assert.Equal(t, 1, f.registry.CountPooled(prefab))
	})

	t.Run("applies placement options", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		parent := f.world.NewNode("turret")
		require.NoError(t, f.registry.CreatePool(prefab, 1))

		pos := transform.Vec3{X: 3, Y: 4, Z: 5}
		rot := transform.Quat{X: 0, Y: 1, Z: 0, W: 0}
		inst, err := f.registry.Spawn(prefab, spawnpool.SpawnOptions[*scene.Node]{
			Parent:   parent,
			Position: pos,
			Rotation: rot,
		})
		require.NoError(t, err)

		assert.Same(t, parent, inst.Parent())
		assert.Equal(t, pos, inst.Position())
		assert.Equal(t, rot, inst.Rotation())
	})

	t.Run("zero rotation defaults to identity", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 1))

		inst := f.spawn(t, prefab)
		assert.Equal(t, transform.Identity(), inst.Rotation())
	})

	t.Run("copies template scale at spawn time", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 2))

		// Grow the template after the pool was filled; the spawn must
		// pick up the current scale, not the pool-creation scale.
		bigger := transform.Vec3{X: 2, Y: 2, Z: 2}
		f.world.SetLocalTransform(prefab, prefab.Position(), prefab.Rotation(), bigger)

		inst := f.spawn(t, prefab)
		assert.Equal(t, bigger, inst.Scale())
	})

	t.Run("instantiates fresh copy when pool is empty", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 1))

		first := f.spawn(t, prefab)
		second := f.spawn(t, prefab)

		assert.NotSame(t, first, second)
		assert.Equal(t, 0, f.registry.CountPooled(prefab))
		assert.Equal(t, 2, f.registry.CountSpawned(prefab))
	})

	t.Run("auto-creates pool on first spawn", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")

		inst := f.spawn(t, prefab)

		assert.True(t, f.registry.IsSpawned(inst))
		assert.Equal(t, 1, f.registry.CountSpawned(prefab))
	})

	t.Run("skips destroyed handles in the free list", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 3))

		pooled := f.registry.Pooled(prefab)
		f.world.Destroy(pooled[0])
		f.world.Destroy(pooled[1])

		inst := f.spawn(t, prefab)
		require.NotNil(t, inst)
		assert.Same(t, pooled[2], inst)
		assert.Equal(t, 0, f.registry.CountPooled(prefab))
	})

	t.Run("unset template is a contract violation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.registry.Spawn(nil, spawnpool.SpawnOptions[*scene.Node]{})
		require.Error(t, err)
	})
}

func TestRecycle(t *testing.T) {
	t.Run("parks instance under the holder, inactive", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 1))

		inst := f.spawn(t, prefab)
		f.registry.Recycle(inst)

		assert.False(t, inst.Active())
		assert.Same(t, f.holder, inst.Parent())
		assert.False(t, f.registry.IsSpawned(inst))
		assert.Equal(t, 1, f.registry.CountPooled(prefab))
	})

	t.Run("untracked instance is destroyed, pools untouched", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 4))
		before := f.registry.CountAllPooled()

		stray := f.world.NewNode("stray")
		f.registry.Recycle(stray)

		assert.False(t, f.world.Valid(stray), "stray instance must be destroyed")
		assert.Equal(t, before, f.registry.CountAllPooled())
	})

	t.Run("double recycle does not corrupt the pool", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("bullet")
		require.NoError(t, f.registry.CreatePool(prefab, 1))

		inst := f.spawn(t, prefab)
		f.registry.Recycle(inst)
		before := f.registry.CountAllPooled()

		f.registry.Recycle(inst)

		assert.Equal(t, before, f.registry.CountAllPooled())
		// The destroyed handle left in the free list is skipped on the
		// next spawn rather than handed out.
		next := f.spawn(t, prefab)
		assert.True(t, f.world.Valid(next))
	})
}

func TestPoolGrowth(t *testing.T) {
	const n = 10
	f := newFixture(t)
	prefab := f.world.NewNode("enemy")

	instances := make([]*scene.Node, 0, n)
	for i := 0; i < n; i++ {
		instances = append(instances, f.spawn(t, prefab))
	}
	for _, inst := range instances {
		f.registry.Recycle(inst)
	}

	assert.Equal(t, n, f.registry.CountPooled(prefab))
	assert.Equal(t, 0, f.registry.CountSpawned(prefab))
}

func TestRoundTripConservation(t *testing.T) {
	f := newFixture(t)
	prefab := f.world.NewNode("enemy")
	require.NoError(t, f.registry.CreatePool(prefab, 2))

	total := func() int {
		return f.registry.CountPooled(prefab) + f.registry.CountSpawned(prefab)
	}
	require.Equal(t, 2, total())

	inst := f.spawn(t, prefab)
	assert.Equal(t, 2, total())

	f.registry.Recycle(inst)
	assert.Equal(t, 2, total())

	f.spawn(t, prefab)
	assert.Equal(t, 2, total())
}

func TestDisjointness(t *testing.T) {
	f := newFixture(t)
	prefab := f.world.NewNode("enemy")
	require.NoError(t, f.registry.CreatePool(prefab, 3))

	check := func() {
		t.Helper()
		for _, pooled := range f.registry.Pooled(prefab) {
			assert.False(t, f.registry.IsSpawned(pooled),
				"instance %s is both pooled and spawned", pooled.Name())
		}
	}

	check()
	a := f.spawn(t, prefab)
	b := f.spawn(t, prefab)
	check()
	f.registry.Recycle(a)
	check()
	f.spawn(t, prefab)
	f.registry.Recycle(b)
	check()
}

func TestRecycleAll(t *testing.T) {
	t.Run("recycles every spawned instance exactly once", func(t *testing.T) {
		f := newFixture(t)
		enemies := f.world.NewNode("enemy")
		bullets := f.world.NewNode("bullet")

		for i := 0; i < 5; i++ {
			f.spawn(t, enemies)
		}
		for i := 0; i < 3; i++ {
			f.spawn(t, bullets)
		}

		f.registry.RecycleAll()

		assert.Equal(t, 0, f.registry.CountSpawned(enemies))
		assert.Equal(t, 0, f.registry.CountSpawned(bullets))
		assert.Equal(t, 5, f.registry.CountPooled(enemies))
		assert.Equal(t, 3, f.registry.CountPooled(bullets))
	})

	t.Run("filtered to one template", func(t *testing.T) {
		f := newFixture(t)
		enemies := f.world.NewNode("enemy")
		bullets := f.world.NewNode("bullet")

		f.spawn(t, enemies)
		f.spawn(t, enemies)
		f.spawn(t, bullets)
		f.spawn(t, bullets)

		f.registry.RecycleAllOf(enemies)

		assert.Equal(t, 0, f.registry.CountSpawned(enemies))
		assert.Equal(t, 2, f.registry.CountSpawned(bullets))
		assert.Equal(t, 2, f.registry.CountPooled(enemies))
	})
}

// TestScenario walks the scripted sequence: warm a pool of two, drain it,
// overflow it, then batch-recycle everything back.
func TestScenario(t *testing.T) {
	f := newFixture(t)
	prefab := f.world.NewNode("enemy")

	require.NoError(t, f.registry.CreatePool(prefab, 2))
	assert.Equal(t, 2, f.registry.CountPooled(prefab))

	f.spawn(t, prefab)
	assert.Equal(t, 1, f.registry.CountPooled(prefab))
	assert.Equal(t, 1, f.registry.CountSpawned(prefab))

	f.spawn(t, prefab)
	assert.Equal(t, 0, f.registry.CountPooled(prefab))
	assert.Equal(t, 2, f.registry.CountSpawned(prefab))

	f.spawn(t, prefab)
	assert.Equal(t, 3, f.registry.CountSpawned(prefab))
	assert.Equal(t, 0, f.registry.CountAllPooled())

	f.registry.RecycleAllOf(prefab)
	assert.Equal(t, 3, f.registry.CountPooled(prefab))
	assert.Equal(t, 0, f.registry.CountSpawned(prefab))
}

func TestStartupPools(t *testing.T) {
	t.Run("ensure is idempotent", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("enemy")
		f.registry.RegisterStartupPool(prefab, 4)

		f.registry.EnsureStartupPoolsCreated()
		f.registry.EnsureStartupPoolsCreated()

		assert.Equal(t, 4, f.registry.CountPooled(prefab))
	})

	t.Run("registration after warm-up is ignored", func(t *testing.T) {
		f := newFixture(t)
		prefab := f.world.NewNode("enemy")

		f.registry.EnsureStartupPoolsCreated()
		f.registry.RegisterStartupPool(prefab, 4)
		f.registry.EnsureStartupPoolsCreated()

		assert.Equal(t, 0, f.registry.CountPooled(prefab))
	})

	t.Run("via constructor option", func(t *testing.T) {
		world := scene.NewWorld("test")
		prefab := world.NewNode("enemy")
		registry := spawnpool.New[*scene.Node](world,
			spawnpool.WithLogger[*scene.Node](testutil.TestLogger(t)),
			spawnpool.WithStartupPools([]spawnpool.StartupPool[*scene.Node]{
				{Template: prefab, Size: 6},
			}),
		)

		registry.EnsureStartupPoolsCreated()
		assert.Equal(t, 6, registry.CountPooled(prefab))
	})
}

func TestQueriesOnUnknownTemplate(t *testing.T) {
	f := newFixture(t)
	unknown := f.world.NewNode("unknown")

	assert.Equal(t, 0, f.registry.CountPooled(unknown))
	assert.Equal(t, 0, f.registry.CountSpawned(unknown))
	assert.Empty(t, f.registry.Pooled(unknown))
	assert.Empty(t, f.registry.Spawned(unknown))
	assert.False(t, f.registry.IsSpawned(unknown))
}
