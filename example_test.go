package slotpool_test

import (
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/slotpool"
	"github.com/hupe1980/slotpool/testutil"
)

type particle struct {
	X, Y, VX, VY float64
}

func particleAccessor() slotpool.AccessorFuncs[*particle, string, float64] {
	return slotpool.AccessorFuncs[*particle, string, float64]{
		GetFunc: func(p *particle, key string) float64 {
			switch key {
			case "x":
				return p.X
			case "y":
				return p.Y
			case "vx":
				return p.VX
			case "vy":
				return p.VY
			}
			return 0
		},
		SetFunc: func(p *particle, key string, v float64) bool {
			switch key {
			case "x":
				p.X = v
			case "y":
				p.Y = v
			default:
				return false
			}
			return true
		},
	}
}

// Example demonstrates checking out, using and releasing handles.
func Example() {
	pool, err := slotpool.New[*particle, string, float64](particleAccessor(), slotpool.WithInitialSize(2))
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	h, err := pool.Checkout(&particle{X: 1, Y: 1, VX: 0.5, VY: -0.5})
	if err != nil {
		log.Fatal(err)
	}
	h.Set("x", h.Get("x")+h.Get("vx"))
	h.Set("y", h.Get("y")+h.Get("vy"))
	fmt.Printf("x=%.1f y=%.1f\n", h.Get("x"), h.Get("y"))

	if err := pool.Release(h); err != nil {
		log.Fatal(err)
	}

	again, _ := pool.Checkout(&particle{X: 7})
	fmt.Println("same handle:", again == h)
	fmt.Printf("x=%.1f\n", again.Get("x"))
	// Output:
	// x=1.5 y=0.5
	// same handle: true
	// x=7.0
}

// Example_prune demonstrates growth under pressure and a manual prune.
func Example_prune() {
	pool, err := slotpool.New[*particle, string, float64](particleAccessor(), slotpool.WithInitialSize(1))
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	handles := make([]*slotpool.Handle[*particle, string, float64], 15)
	for i := range handles {
		handles[i], _ = pool.Checkout(&particle{})
	}
	fmt.Println("grown:", pool.Capacity(), "used:", pool.UsedCapacity())

	for _, h := range handles {
		_ = pool.Release(h)
	}
	_ = pool.Prune()
	fmt.Println("pruned:", pool.Capacity(), "used:", pool.UsedCapacity())
	// Output:
	// grown: 17 used: 15
	// pruned: 1 used: 0
}

// Example_usageThreshold demonstrates automatic compaction after releases.
func Example_usageThreshold() {
	pool, err := slotpool.New[*particle, string, float64](particleAccessor(),
		slotpool.WithInitialSize(1),
		slotpool.WithPruneStrategy(slotpool.OnUsageThreshold{
			Threshold:   0.75,
			GracePeriod: 10 * time.Millisecond,
		}),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	handles := make([]*slotpool.Handle[*particle, string, float64], 15)
	for i := range handles {
		handles[i], _ = pool.Checkout(&particle{})
	}
	fmt.Println("capacity:", pool.Capacity())

	for _, h := range handles {
		_ = pool.Release(h)
	}
	time.Sleep(100 * time.Millisecond)
	fmt.Println("capacity:", pool.Capacity())
	// Output:
	// capacity: 17
	// capacity: 1
}

// Example_fields demonstrates map-backed contexts.
func Example_fields() {
	acc := slotpool.AccessorFuncs[testutil.Fields[string, int], string, int]{
		GetFunc: testutil.GetField[string, int],
		SetFunc: testutil.SetField[string, int],
	}
	pool, err := slotpool.New[testutil.Fields[string, int], string, int](acc, slotpool.WithInitialSize(4))
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	_ = pool.With(testutil.Fields[string, int]{"hits": 1}, func(h *slotpool.Handle[testutil.Fields[string, int], string, int]) error {
		h.Set("hits", h.Get("hits")+1)
		fmt.Println("hits:", h.Get("hits"))
		return nil
	})
	// Output: hits: 2
}
