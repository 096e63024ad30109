package withdrawal

import (
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("keyedMutex", func() {
	It("serializes holders of the same key", func() {
		k := newKeyedMutex()
		var active, peak int32
		var wg sync.WaitGroup

		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := k.Lock("NV001")
				defer unlock()

				n := atomic.AddInt32(&active, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
			}()
		}
		wg.Wait()

		Expect(peak).To(Equal(int32(1)))
	})

	It("lets different keys proceed independently", func() {
		k := newKeyedMutex()
		unlockA := k.Lock("NV001")
		defer unlockA()

		done := make(chan struct{})
		go func() {
			unlockB := k.Lock("NV002")
			unlockB()
			close(done)
		}()

		Eventually(done).Should(BeClosed())
	})

	It("forgets keys nobody holds", func() {
		k := newKeyedMutex()
		unlock := k.Lock("NV001")
		Expect(k.size()).To(Equal(1))
		unlock()
		Expect(k.size()).To(BeZero())
	})
})
