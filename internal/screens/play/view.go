package play

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/divvy/internal/rewards"
	"github.com/abhisek/divvy/internal/solver"
	"github.com/abhisek/divvy/internal/ui/components"
	"github.com/abhisek/divvy/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Something went wrong: %s", s.errMsg))
	}
	if !s.state.Active() {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Setting up your next problem...")
	}

	var b strings.Builder

	if s.toast != "" {
		b.WriteString(s.renderToast(width))
		b.WriteString("\n")
	}

	if s.celebration != nil {
		b.WriteString(s.renderCelebration(width))
		b.WriteString("\n")
	}

	p := s.state.ActiveProblem
	title := lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).
		Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%d ÷ %d", p.Dividend, p.Divisor))
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(s.renderWorking(width))
	b.WriteString("\n")

	b.WriteString(s.renderPrompt(width))
	b.WriteString("\n\n")

	answerLine := lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).
		Render("Answer: " + s.input.View())
	b.WriteString(answerLine)
	b.WriteString("\n\n")

	if s.hasFeedback {
		b.WriteString(s.renderFeedback(width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderMilestoneBar(width))

	return b.String()
}

// renderWorking lists the steps answered so far as readable working lines.
func (s *PlayScreen) renderWorking(width int) string {
	sol := s.state.Solution
	revealed := s.state.RevealedStepCount
	if revealed > len(sol.Steps) {
		revealed = len(sol.Steps)
	}

	var lines []string
	working := sol.InitialWorking
	divisor := sol.Problem.Divisor
	qd, product := 0, 0

	for _, step := range sol.Steps[:revealed] {
		v, _ := strconv.Atoi(step.Expected)
		switch step.Kind {
		case solver.StepQuotientDigit:
			qd = v
			lines = append(lines, fmt.Sprintf("%d's in %d → %d", divisor, working, qd))
		case solver.StepMultiply:
			product = v
			lines = append(lines, fmt.Sprintf("%d × %d = %d", qd, divisor, product))
		case solver.StepSubtract:
			lines = append(lines, fmt.Sprintf("%d − %d = %d", working, product, v))
			working = v
		case solver.StepBringDown:
			lines = append(lines, fmt.Sprintf("bring down %d → %d", step.BroughtDigit, step.WorkingNumber))
			working = step.WorkingNumber
		}
	}

	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("Start with %d.", sol.InitialWorking))
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(theme.WorkingCell.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.TrimRight(b.String(), "\n")) + "\n"
}

// renderPrompt phrases the step in focus as a question.
func (s *PlayScreen) renderPrompt(width int) string {
	step := s.state.CurrentStep()
	if step == nil {
		return ""
	}

	working, qd, product := s.workingContext()
	divisor := s.state.Solution.Problem.Divisor

	var prompt string
	switch step.Kind {
	case solver.StepQuotientDigit:
		prompt = fmt.Sprintf("How many times does %d go into %d?", divisor, working)
	case solver.StepMultiply:
		prompt = fmt.Sprintf("What is %d × %d?", qd, divisor)
	case solver.StepSubtract:
		prompt = fmt.Sprintf("What is %d − %d?", working, product)
	case solver.StepBringDown:
		prompt = fmt.Sprintf("Bring down the %d. What number do you get?", step.BroughtDigit)
	}

	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).
		Foreground(theme.Secondary).Bold(true).
		Render(prompt)
}

// workingContext replays the answered steps to recover the current working
// number, quotient digit, and product for prompt phrasing.
func (s *PlayScreen) workingContext() (working, qd, product int) {
	sol := s.state.Solution
	working = sol.InitialWorking
	idx := *s.state.ActiveStepIndex

	for _, step := range sol.Steps[:idx] {
		v, _ := strconv.Atoi(step.Expected)
		switch step.Kind {
		case solver.StepQuotientDigit:
			qd = v
		case solver.StepMultiply:
			product = v
		case solver.StepSubtract:
			working = v
		case solver.StepBringDown:
			working = step.WorkingNumber
		}
	}
	return working, qd, product
}

func (s *PlayScreen) renderFeedback(width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch s.feedback.Tone {
	case solver.ToneCelebration:
		style = style.Foreground(theme.Accent).Bold(true)
	case solver.ToneRetry:
		style = style.Foreground(theme.Error)
	default:
		style = style.Foreground(theme.Success)
	}
	return style.Render(s.feedback.Message)
}

func (s *PlayScreen) renderCelebration(width int) string {
	c := s.celebration
	p := c.Problem

	result := fmt.Sprintf("%d ÷ %d = %d", p.Dividend, p.Divisor, p.Quotient)
	if p.Remainder > 0 {
		result += fmt.Sprintf(" r %d", p.Remainder)
	}

	var b strings.Builder
	b.WriteString(theme.Celebrate.Render(result + "  — solved!"))
	for _, crossing := range c.Crossings {
		if crossing.PoolExhausted {
			continue
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("A new friend is being painted: %s", crossing.SubjectName)))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *PlayScreen) renderToast(width int) string {
	color := theme.Accent
	if !s.toastGood {
		color = theme.TextDim
	}
	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Foreground(color).
		Padding(0, 2).
		Render(s.toast)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, toast)
}

// renderMilestoneBar shows progress toward the next collectible.
func (s *PlayScreen) renderMilestoneBar(width int) string {
	solved := s.state.Progress.Lifetime.TotalProblemsSolved
	into := solved % rewards.Interval

	bar := components.NewProgressBar(
		fmt.Sprintf("Next reward in %d", rewards.Interval-into),
		float64(into)/float64(rewards.Interval),
		false,
		min(width-8, 48),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
