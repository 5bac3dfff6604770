package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndCount(t *testing.T) {
	t.Parallel()

	var tm Timing
	tm.Record(Regular, 10*time.Millisecond)
	tm.Record(Regular, 20*time.Millisecond)
	tm.Record(State, 50*time.Millisecond)

	assert.Equal(t, 2, tm.Count(Regular))
	assert.Equal(t, 1, tm.Count(State))
}

func TestStopwatchRecordsElapsedTime(t *testing.T) {
	t.Parallel()

	var tm Timing
	stop := tm.Stopwatch(Regular)
	time.Sleep(5 * time.Millisecond)
	stop()

	require := tm.Count(Regular)
	assert.Equal(t, 1, require)
	mean := tm.Mean(Regular)
	assert.Greater(t, mean, float64(0))
}

func TestPercentilesWithNoSamplesAreZero(t *testing.T) {
	t.Parallel()

	var tm Timing
	p50, p85, p98 := tm.Percentiles(Regular)
	assert.Zero(t, p50)
	assert.Zero(t, p85)
	assert.Zero(t, p98)
	assert.Zero(t, tm.Mean(Regular))
}

func TestPercentilesOrdering(t *testing.T) {
	t.Parallel()

	var tm Timing
	for i := 1; i <= 100; i++ {
		tm.Record(Regular, time.Duration(i)*time.Microsecond)
	}

	p50, p85, p98 := tm.Percentiles(Regular)
	assert.LessOrEqual(t, p50, p85)
	assert.LessOrEqual(t, p85, p98)
	assert.Greater(t, p50, float64(0))
}

func TestMergeCombinesBothKinds(t *testing.T) {
	t.Parallel()

	var a, b Timing
	a.Record(Regular, 1*time.Millisecond)
	b.Record(Regular, 2*time.Millisecond)
	b.Record(State, 3*time.Millisecond)

	a.Merge(&b)

	assert.Equal(t, 2, a.Count(Regular))
	assert.Equal(t, 1, a.Count(State))
}

func TestReportIncludesBothKindsAndTotal(t *testing.T) {
	t.Parallel()

	var tm Timing
	tm.Record(Regular, 1*time.Millisecond)
	tm.Record(State, 2*time.Millisecond)

	report := tm.Report()
	assert.Contains(t, report, "Regular events:")
	assert.Contains(t, report, "State events:")
	assert.Contains(t, report, "Total updates:  2")
}
