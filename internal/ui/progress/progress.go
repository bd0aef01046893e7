// Package progress renders a determinate progress bar on stderr while
// a batch of repositories is processed. It is non-interactive: the
// caller advances it one repository at a time and the bar disappears
// on Stop.
package progress

import (
	"fmt"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/repometa/internal/ui/styles"
)

// barUpdate advances the bar position and label
type barUpdate struct {
	current int
	message string
}

// Bar is a batch progress bar with a fixed total, created running by
// Start.
type Bar struct {
	program *tea.Program
	updates chan barUpdate
	done    chan struct{}

	mu      sync.Mutex
	running bool
	total   int
}

// barModel is the internal Bubbletea model
type barModel struct {
	progress progress.Model
	total    int
	current  int
	message  string
	updates  chan barUpdate
	quit     bool
}

func (m barModel) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m barModel) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return tea.Quit()
		}
		return update
	}
}

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quit {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case barUpdate:
		m.current = msg.current
		m.message = msg.message
		return m, m.waitForUpdate()
	case tea.KeyPressMsg:
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}
}

func (m barModel) View() tea.View {
	if m.quit || m.message == "" {
		return tea.NewView("")
	}

	fraction := 0.0
	if m.total > 0 {
		fraction = float64(m.current) / float64(m.total)
	}

	// Format: [████████░░░░░░░░] 12/40 acme/widget
	bar := m.progress.ViewAs(fraction)
	return tea.NewView(fmt.Sprintf("%s %d/%d %s", bar, m.current, m.total, m.message))
}

// Start creates a progress bar for a batch of total repositories and
// begins rendering immediately with the given label.
func Start(total int, message string) *Bar {
	b := &Bar{
		updates: make(chan barUpdate, 10),
		done:    make(chan struct{}),
		running: true,
		total:   total,
	}

	prog := progress.New(
		progress.WithWidth(40),
		progress.WithoutPercentage(),
		progress.WithColors(styles.Primary, styles.Accent),
	)

	model := barModel{
		progress: prog,
		total:    total,
		message:  message,
		updates:  b.updates,
	}

	// Write to stderr so stdout remains clean for piping
	b.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(os.Stderr))

	go func() {
		_, _ = b.program.Run()
		close(b.done)
	}()

	return b
}

// Set advances the bar to current out of total, relabeling it with
// message. Safe to call after Stop.
func (b *Bar) Set(current int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}

	// Non-blocking send; dropped updates are fine for a UI
	select {
	case b.updates <- barUpdate{current: current, message: message}:
	default:
	}
}

// Stop stops the progress bar and clears its line. Idempotent.
func (b *Bar) Stop() {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return
	}
	b.running = false
	// Close the channel inside the mutex to prevent a race with Set
	close(b.updates)
	b.mu.Unlock()

	if b.program != nil {
		b.program.Quit()
	}

	// Wait for the program to finish with a timeout
	select {
	case <-b.done:
	case <-time.After(500 * time.Millisecond):
	}

	// Clear to stderr (UI output shouldn't pollute stdout for piping)
	fmt.Fprint(os.Stderr, "\r\033[K")
}
