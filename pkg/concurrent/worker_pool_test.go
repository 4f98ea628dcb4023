package concurrent

import (
	"sort"
	"testing"
)

func TestWorkerPool(t *testing.T) {
	const jobs = 100

	pool := NewWorkerPool[int, int](4, jobs)
	pool.Start(func(job int) int {
		return job * job
	})
	for i := 0; i < jobs; i++ {
		pool.AddJob(i)
	}
	pool.Close()
	pool.Wait()

	var got []int
	for r := range pool.CollectResults() {
		got = append(got, r)
	}
	if len(got) != jobs {
		t.Fatalf("collected %d results, want %d", len(got), jobs)
	}
	sort.Ints(got)
	for i := 0; i < jobs; i++ {
		if got[i] != i*i {
			t.Fatalf("result[%d] = %d, want %d", i, got[i], i*i)
		}
	}
}
