package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/isosort/pkg/scene"
	"github.com/matzehuels/isosort/pkg/sorter"
)

// watchModel animates a world in the terminal, re-sorting every tick.
type watchModel struct {
	ctx      context.Context
	world    *scene.World
	interval time.Duration
	speed    float64
	paused   bool

	frame   int
	elapsed float64
	entries []scene.Entry
	stats   sorter.Stats
	changes int // draw order changes since start
}

type tickMsg time.Time

func newWatchModel(ctx context.Context, w *scene.World, fps int) watchModel {
	if fps <= 0 {
		fps = 10
	}
	m := watchModel{
		ctx:      ctx,
		world:    w,
		interval: time.Second / time.Duration(fps),
		speed:    1,
	}
	m.stats = w.Update(ctx)
	m.entries = w.Entries()
	return m
}

func (m watchModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return m.tick()
}

// advance steps the world by one tick and sorts it.
func (m watchModel) advance() watchModel {
	dt := m.interval.Seconds() * m.speed
	m.world.Step(dt)
	m.stats = m.world.Update(m.ctx)
	m.frame++
	m.elapsed += dt

	next := m.world.Entries()
	if !sameOrder(m.entries, next) {
		m.changes++
	}
	m.entries = next
	return m
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		case "n", "right":
			if m.paused {
				m = m.advance()
			}
		case "+", "=":
			if m.speed < 16 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1.0/16 {
				m.speed /= 2
			}
		}
	case tickMsg:
		if !m.paused {
			m = m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	title := m.world.Name()
	if title == "" {
		title = "scene"
	}
	b.WriteString(StyleTitle.Render(title))
	status := fmt.Sprintf("  frame %d · t=%.2fs · speed %gx · %d order change(s)", m.frame, m.elapsed, m.speed, m.changes)
	if m.paused {
		status += " · " + StyleWarning.Render("paused")
	}
	b.WriteString(StyleDim.Render(status))
	b.WriteString("\n\n")

	b.WriteString(orderTable(m.entries, nil))
	b.WriteString("\n")
	b.WriteString(statsLine(m.stats, false))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("space pause  n step  +/- speed  q quit"))
	return b.String()
}

func sameOrder(a, b []scene.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// watchCommand runs the interactive simulation.
func (c *CLI) watchCommand() *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "watch <scene>",
		Short: "Animate a scene and watch its draw order change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0])
			if err != nil {
				return err
			}
			w, err := s.Build(sorter.Options{
				CyclePasses: c.Config.Sort.CyclePasses,
				OrderStep:   c.Config.Sort.OrderStep,
				Logger:      c.Logger,
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			p := tea.NewProgram(newWatchModel(ctx, w, fps), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 10, "frames per second")
	return cmd
}
