package monitor

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"

	"github.com/ktsuji/cctimeline/internal/calculator"
	"github.com/ktsuji/cctimeline/internal/config"
	"github.com/ktsuji/cctimeline/internal/loader"
	"github.com/ktsuji/cctimeline/internal/types"
)

// Config controls the live current-window view.
type Config struct {
	FilePath string
	Interval time.Duration
	Limits   config.Limits
}

type watchModel struct {
	cfg      Config
	loader   *loader.Loader
	window   types.SessionWindow
	err      error
	lastLoad time.Time
	watcher  *fsnotify.Watcher
	width    int
	quitting bool
}

type tickMsg time.Time

type fileChangedMsg struct{}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// awaitChangeCmd blocks on the watcher until the report file is rewritten.
func awaitChangeCmd(w *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return fileChangedMsg{}
				}
			case _, ok := <-w.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.cfg.Interval),
		awaitChangeCmd(m.watcher),
		tea.WindowSize(),
	)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		m = m.reload()
		return m, tickCmd(m.cfg.Interval)

	case fileChangedMsg:
		m = m.reload()
		return m, awaitChangeCmd(m.watcher)
	}

	return m, nil
}

func (m watchModel) reload() watchModel {
	blocks, err := m.loader.LoadFromPath(m.cfg.FilePath)
	if err != nil {
		m.err = err
		return m
	}

	m.err = nil
	m.window = calculator.CurrentWindow(blocks, time.Now(), m.cfg.Limits.MaxWindowTokens)
	m.lastLoad = time.Now()
	return m
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress 'q' to quit.", m.err)
	}

	return m.renderWindow()
}

func (m watchModel) renderWindow() string {
	w := m.window

	titleStyle := lipgloss.NewStyle().Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("CCTIMELINE - CURRENT SESSION WINDOW"))
	sb.WriteString("\n\n")

	tokenColor := percentColor(w.UsagePercent)
	sb.WriteString(fmt.Sprintf("%s %s %5.1f%%\n",
		labelStyle.Render(fmt.Sprintf("%-8s", "Tokens")),
		renderProgressBar(w.UsagePercent, m.barWidth(), tokenColor),
		w.UsagePercent))

	costPercent := 0.0
	if m.cfg.Limits.MaxWindowCost > 0 {
		costPercent = w.TotalCost / m.cfg.Limits.MaxWindowCost * 100
	}
	sb.WriteString(fmt.Sprintf("%s %s %5.1f%%\n\n",
		labelStyle.Render(fmt.Sprintf("%-8s", "Cost")),
		renderProgressBar(costPercent, m.barWidth(), percentColor(costPercent)),
		costPercent))

	remaining := w.Remaining
	if remaining < 0 {
		remaining = 0
	}
	sb.WriteString(fmt.Sprintf("Model: %s  Tokens: %s/%s  Cost: $%.2f  Sessions: %d\n",
		w.PrimaryModel,
		formatNumberWithCommas(w.TotalTokens),
		formatNumberWithCommas(w.MaxTokens),
		w.TotalCost,
		w.SessionCount))
	sb.WriteString(fmt.Sprintf("Window: %s - %s  Resets in %dh %dm\n\n",
		w.Start.Format("15:04"),
		w.End.Format("15:04"),
		int(remaining.Hours()),
		int(remaining.Minutes())%60))

	sb.WriteString(footerStyle.Render(fmt.Sprintf(
		"↻ Refreshing every %ds and on file change  •  Last update %s  •  Press 'q' to quit",
		int(m.cfg.Interval.Seconds()),
		m.lastLoad.Format("15:04:05"))))
	sb.WriteString("\n")

	return sb.String()
}

func (m watchModel) barWidth() int {
	if m.width >= 100 {
		return 50
	}
	if m.width >= 80 {
		return 40
	}
	return 30
}

func percentColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 80:
		return lipgloss.Color("196")
	case percent >= 50:
		return lipgloss.Color("226")
	default:
		return lipgloss.Color("46")
	}
}

func renderProgressBar(percent float64, width int, color lipgloss.Color) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent * float64(width) / 100)
	if filled > width {
		filled = width
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	return "[" +
		filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		"]"
}

func formatNumberWithCommas(n int) string {
	if n < 0 {
		return "-" + formatNumberWithCommas(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumberWithCommas(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

// Start runs the live view until interrupted. It needs a real file to watch
// and an interactive terminal to draw on.
func Start(cfg Config) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("watch mode requires an interactive terminal (TTY)")
	}

	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.FilePath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.FilePath, err)
	}

	model := watchModel{
		cfg:     cfg,
		loader:  loader.New(),
		watcher: watcher,
	}
	model = model.reload()
	if model.err != nil {
		return model.err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Quit()
	}()

	_, err = p.Run()
	return err
}
