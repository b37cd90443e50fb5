package enrich

import "time"

// Statistics is a stopwatch that accumulates per-record lap times in nanoseconds.
type Statistics struct {
	start int64
	end   int64

	sum   int64
	count int64
}

func NewStopWatch() *Statistics {
	return &Statistics{}
}

func (sw *Statistics) Start() *Statistics {
	sw.start = time.Now().UnixNano()
	return sw
}

func (sw *Statistics) Stop() *Statistics {
	sw.end = time.Now().UnixNano()
	return sw
}

func (sw *Statistics) Elapsed() int64 {
	return sw.end - sw.start
}

// LapWith records an externally measured elapsed time.
func (sw *Statistics) LapWith(elapsed int64) {
	sw.sum += elapsed
	sw.count++
}

func (sw *Statistics) Avg() int64 {
	if sw.count == 0 {
		return 0
	}
	return sw.sum / sw.count
}

func (sw *Statistics) Sum() int64 {
	return sw.sum
}

func (sw *Statistics) Count() int64 {
	return sw.count
}
