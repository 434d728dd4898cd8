package jobs_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/watchair/watchair/internal/jobs"
)

var _ = Describe("GoScheduler", func() {
	It("returns before the task runs and keeps it alive after the caller is cancelled", func() {
		scheduler := jobs.NewGoScheduler(0)

		ctx, cancel := context.WithCancel(context.Background())
		release := make(chan struct{})
		var taskErr atomic.Value

		scheduler.Schedule(ctx, "detached", func(taskCtx context.Context) {
			<-release
			if taskCtx.Err() != nil {
				taskErr.Store(taskCtx.Err())
			}
		})

		cancel()
		close(release)
		scheduler.Wait()

		Expect(taskErr.Load()).To(BeNil())
	})

	It("bounds the number of running tasks", func() {
		scheduler := jobs.NewGoScheduler(2)

		var running, peak atomic.Int32
		for i := 0; i < 8; i++ {
			scheduler.Schedule(context.TODO(), "bounded", func(context.Context) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
			})
		}
		scheduler.Wait()

		Expect(peak.Load()).To(BeNumerically("<=", 2))
		Expect(peak.Load()).To(BeNumerically(">=", 1))
	})

	It("survives a panicking task", func() {
		scheduler := jobs.NewGoScheduler(0)
		var ran atomic.Bool

		scheduler.Schedule(context.TODO(), "panics", func(context.Context) {
			panic("boom")
		})
		scheduler.Schedule(context.TODO(), "runs", func(context.Context) {
			ran.Store(true)
		})
		scheduler.Wait()

		Expect(ran.Load()).To(BeTrue())
	})
})

var _ = Describe("SyncScheduler", func() {
	It("runs the task before returning", func() {
		ran := false
		jobs.SyncScheduler{}.Schedule(context.TODO(), "inline", func(context.Context) {
			ran = true
		})
		Expect(ran).To(BeTrue())
	})
})

var _ = Describe("FailureMessage", func() {
	It("keeps the error message", func() {
		Expect(jobs.FailureMessage(context.Canceled)).To(Equal("context canceled"))
	})

	It("falls back to an unknown error", func() {
		Expect(jobs.FailureMessage(nil)).To(Equal("Unknown error"))
		Expect(jobs.FailureMessage(jobs.Recovered(42))).To(Equal("Unknown error"))
	})
})
