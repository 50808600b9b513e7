package speech

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/Zuo-Peng/chatcast/internal/narrate"
)

const listTimeout = 3 * time.Second

// Command speaks through a local binary, one process per sentence chunk.
type Command struct {
	engine Engine
	path   string
	rate   int
	logger *slog.Logger

	mu  sync.Mutex
	cur *job
}

var _ narrate.Synthesizer = (*Command)(nil)

// Detect finds a speech binary. With name set only that engine is tried.
// It returns nil when nothing usable is installed.
func Detect(name string, rate int, logger *slog.Logger) *Command {
	if logger == nil {
		logger = slog.Default()
	}
	candidates := Engines
	if name != "" {
		e, ok := EngineByName(name)
		if !ok {
			logger.Warn("unknown speech engine", "engine", name)
			return nil
		}
		candidates = []Engine{e}
	}
	for _, e := range candidates {
		path, err := exec.LookPath(e.Name)
		if err != nil {
			continue
		}
		logger.Debug("speech engine found", "engine", e.Name, "path", path)
		return NewCommand(e, path, rate, logger)
	}
	return nil
}

func NewCommand(e Engine, path string, rate int, logger *slog.Logger) *Command {
	if logger == nil {
		logger = slog.Default()
	}
	return &Command{engine: e, path: path, rate: rate, logger: logger}
}

// Name returns the engine name.
func (c *Command) Name() string {
	return c.engine.Name
}

// Path returns the resolved binary path.
func (c *Command) Path() string {
	return c.path
}

func (c *Command) Voices() []string {
	if c.engine.ListArgs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, c.path, c.engine.ListArgs...).Output()
	if err != nil {
		c.logger.Warn("list voices failed", "engine", c.engine.Name, "err", err)
		return nil
	}
	return c.engine.ParseVoices(string(out))
}

func (c *Command) Speak(u narrate.Utterance, l narrate.Listener) error {
	chunks := Split(u.Text)
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{cancel: cancel}

	c.mu.Lock()
	if c.cur != nil {
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("speech: %s is already speaking", c.engine.Name)
	}
	c.cur = j
	c.mu.Unlock()

	go c.run(ctx, j, u, chunks, l)
	return nil
}

func (c *Command) run(ctx context.Context, j *job, u narrate.Utterance, chunks []Chunk, l narrate.Listener) {
	ended, err := c.play(ctx, j, u, chunks, l)
	// release before Done so the listener may start the next utterance
	c.finish(j)
	if ended {
		l.Done(err)
	}
}

// play speaks the chunks in order. ended is false when the utterance was
// cancelled.
func (c *Command) play(ctx context.Context, j *job, u narrate.Utterance, chunks []Chunk, l narrate.Listener) (ended bool, err error) {
	for _, ch := range chunks {
		if ctx.Err() != nil {
			return false, nil
		}
		l.Progress(ch.Start)

		cmd := exec.CommandContext(ctx, c.path, c.engine.Args(u.Voice, c.rate)...)
		cmd.Stdin = strings.NewReader(ch.Text)
		if err := cmd.Start(); err != nil {
			return true, fmt.Errorf("start %s: %w", c.engine.Name, err)
		}
		j.attach(cmd.Process)
		err := cmd.Wait()
		j.attach(nil)

		if ctx.Err() != nil {
			return false, nil
		}
		if err != nil {
			return true, fmt.Errorf("%s: %w", c.engine.Name, err)
		}
	}
	l.Progress(len(u.Text))
	return true, nil
}

func (c *Command) finish(j *job) {
	c.mu.Lock()
	if c.cur == j {
		c.cur = nil
	}
	c.mu.Unlock()
}

func (c *Command) Cancel() {
	c.mu.Lock()
	j := c.cur
	c.cur = nil
	c.mu.Unlock()

	if j != nil {
		j.stop()
	}
}

func (c *Command) Pause() {
	if j := c.current(); j != nil {
		if err := j.pause(); err != nil {
			c.logger.Warn("pause failed", "err", err)
		}
	}
}

func (c *Command) Resume() {
	if j := c.current(); j != nil {
		if err := j.resume(); err != nil {
			c.logger.Warn("resume failed", "err", err)
		}
	}
}

func (c *Command) current() *job {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// job is one utterance in flight.
type job struct {
	cancel context.CancelFunc

	mu     sync.Mutex
	proc   *os.Process
	paused bool
}

// attach records the running chunk process; a chunk started while paused
// is stopped right away.
func (j *job) attach(p *os.Process) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.proc = p
	if p != nil && j.paused {
		_ = stopProcess(p)
	}
}

func (j *job) pause() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.paused = true
	if j.proc == nil {
		return nil
	}
	return stopProcess(j.proc)
}

func (j *job) resume() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.paused = false
	if j.proc == nil {
		return nil
	}
	return continueProcess(j.proc)
}

func (j *job) stop() {
	j.cancel()
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.proc != nil && j.paused {
		_ = continueProcess(j.proc)
	}
}
