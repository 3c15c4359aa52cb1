// Package log provides the file-backed application loggers and a debug mode
// that traces panel transitions and pointer input and profiles rendering.
// Set SIDEPANE_DEBUG=1 to turn it on.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	DebugEnabled bool
	DebugLog     *log.Logger
	debugLogFile *os.File
)

var debugLogFileName = filepath.Join(os.TempDir(), "sidepane-debug.log")

// InitDebug opens the debug log when SIDEPANE_DEBUG=1. Otherwise DebugLog
// discards everything. Call it after Initialize.
func InitDebug() {
	if os.Getenv("SIDEPANE_DEBUG") != "1" {
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		ErrorLog.Printf("could not open debug log file: %s", err)
		DebugLog = log.New(io.Discard, "", 0)
		return
	}

	DebugEnabled = true
	DebugLog = log.New(f, "DEBUG:", log.Ldate|log.Ltime|log.Lmicroseconds)
	debugLogFile = f
	profiler.Reset()

	DebugLog.Printf("debug log: %s", debugLogFileName)
}

// CloseDebug writes the render profile for this run and closes the debug log.
func CloseDebug() {
	if debugLogFile == nil {
		return
	}
	profiler.LogStats()
	_ = debugLogFile.Close()
	debugLogFile = nil
	fmt.Println("wrote debug logs to " + debugLogFileName)
}

// FrameBudget is the time one animation frame may take at 60fps. Spring
// steps slower than this make the sidebar stutter while it slides.
const FrameBudget = time.Second / 60

// recentFrames bounds the window used for the frame percentile.
const recentFrames = 100

// RenderProfiler collects view render times per component and the cost of
// each sidebar animation frame.
type RenderProfiler struct {
	mu         sync.RWMutex
	components map[string]*ComponentMetrics

	frames     int64
	frameTotal time.Duration
	slowFrames int64
	recent     []time.Duration
}

// ComponentMetrics are the accumulated render times of one component.
type ComponentMetrics struct {
	Name        string
	RenderCount int64
	TotalTime   time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
}

var profiler = &RenderProfiler{
	components: make(map[string]*ComponentMetrics),
	recent:     make([]time.Duration, 0, recentFrames),
}

// GetProfiler returns the global render profiler.
func GetProfiler() *RenderProfiler {
	return profiler
}

// StartRender starts timing a render of component. Call the returned func
// when the render is done.
func (p *RenderProfiler) StartRender(component string) func() {
	if !DebugEnabled {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.recordRender(component, time.Since(start))
	}
}

func (p *RenderProfiler) recordRender(component string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.components[component]
	if !ok {
		m = &ComponentMetrics{Name: component, MinTime: elapsed, MaxTime: elapsed}
		p.components[component] = m
	}
	m.RenderCount++
	m.TotalTime += elapsed
	m.MinTime = min(m.MinTime, elapsed)
	m.MaxTime = max(m.MaxTime, elapsed)
}

// RecordFrame records the time one animation frame took.
func (p *RenderProfiler) RecordFrame(elapsed time.Duration) {
	if !DebugEnabled {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.frames++
	p.frameTotal += elapsed
	if len(p.recent) == recentFrames {
		p.recent = p.recent[1:]
	}
	p.recent = append(p.recent, elapsed)

	if elapsed > FrameBudget {
		p.slowFrames++
		if DebugLog != nil {
			DebugLog.Printf("[RENDER:frame] over budget: %v > %v", elapsed, FrameBudget)
		}
	}
}

// percentile returns the q-th percentile of the recent frames. Callers hold
// the lock.
func (p *RenderProfiler) percentile(q float64) time.Duration {
	if len(p.recent) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), p.recent...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}

// GetStats summarizes the profile, or returns "" when debug is off.
func (p *RenderProfiler) GetStats() string {
	if !DebugEnabled {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\n=== Render Profile ===\n")
	fmt.Fprintf(&sb, "Animation frames: %d (slow frames: %d)\n", p.frames, p.slowFrames)
	if p.frames > 0 {
		fmt.Fprintf(&sb, "Avg frame: %v, p95 of last %d: %v\n",
			p.frameTotal/time.Duration(p.frames), len(p.recent), p.percentile(0.95))
	}

	names := make([]string, 0, len(p.components))
	for name := range p.components {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.components[names[i]].TotalTime > p.components[names[j]].TotalTime
	})

	sb.WriteString("\n--- Views ---\n")
	for _, name := range names {
		m := p.components[name]
		fmt.Fprintf(&sb, "  %s: count=%d total=%v avg=%v min=%v max=%v\n",
			m.Name, m.RenderCount, m.TotalTime, m.TotalTime/time.Duration(m.RenderCount), m.MinTime, m.MaxTime)
	}
	return sb.String()
}

// LogStats writes the profile to the debug log.
func (p *RenderProfiler) LogStats() {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Print(p.GetStats())
	}
}

// Reset clears all profiling data.
func (p *RenderProfiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.components = make(map[string]*ComponentMetrics)
	p.frames = 0
	p.frameTotal = 0
	p.slowFrames = 0
	p.recent = make([]time.Duration, 0, recentFrames)
}

func trace(tag, format string, v ...interface{}) {
	if DebugEnabled && DebugLog != nil {
		DebugLog.Printf("["+tag+"] "+format, v...)
	}
}

// LayoutTrace logs panel state transitions: mount, toggle, breakpoint and
// bound changes.
func LayoutTrace(format string, v ...interface{}) {
	trace("LAYOUT", format, v...)
}

// RenderTrace logs what component rendered and at which size.
func RenderTrace(component, format string, v ...interface{}) {
	trace("RENDER:"+component, format, v...)
}

// InputTrace logs pointer capture and drag gestures.
func InputTrace(format string, v ...interface{}) {
	trace("INPUT", format, v...)
}
