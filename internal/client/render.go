package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/anchal00/blackjack/internal/game"
	"github.com/anchal00/blackjack/internal/parser"
)

type Styles struct {
	Header    lipgloss.Style
	Label     lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Hidden    lipgloss.Style
	Win       lipgloss.Style
	Loss      lipgloss.Style
	Draw      lipgloss.Style
	Playing   lipgloss.Style
	Muted     lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1B5E20")).
			Padding(0, 2).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true).
			Width(8),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#DDDDDD")).
			Bold(true),
		Hidden: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Loss: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Draw: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Playing: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Italic(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

func (s *Styles) Card(c game.Card) string {
	if c.Suit == game.Hearts || c.Suit == game.Diamonds {
		return s.CardRed.Render(c.String())
	}
	return s.CardBlack.Render(c.String())
}

func (s *Styles) Hand(cards []game.Card) string {
	if len(cards) == 0 {
		return s.Hidden.Render("[hidden]")
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = s.Card(c)
	}
	return strings.Join(rendered, " ")
}

func (s *Styles) Status(status game.Status) string {
	switch status.Outcome() {
	case game.OutcomeWin:
		return s.Win.Render(string(status))
	case game.OutcomeLoss:
		return s.Loss.Render(string(status))
	case game.OutcomeDraw:
		return s.Draw.Render(string(status))
	}
	return s.Playing.Render(string(status))
}

func (s *Styles) RenderGame(g *parser.GameResponse) string {
	var b strings.Builder
	b.WriteString(s.Header.Render("Blackjack"))
	b.WriteString(" " + s.Muted.Render(g.Token) + "\n")
	fmt.Fprintf(&b, "%s%s  (%d)\n", s.Label.Render("You"), s.Hand(g.PlayerCards), g.PlayerValue)
	if len(g.DealerCards) == 0 {
		fmt.Fprintf(&b, "%s%s\n", s.Label.Render("Dealer"), s.Hand(nil))
	} else {
		fmt.Fprintf(&b, "%s%s  (%d)\n", s.Label.Render("Dealer"), s.Hand(g.DealerCards), g.DealerValue)
	}
	fmt.Fprintf(&b, "%s%s\n", s.Label.Render("Status"), s.Status(g.Status))
	return b.String()
}

func (s *Styles) RenderStats(st *parser.StatsResponse) string {
	return fmt.Sprintf("%s\n%s%s\n%s%s\n%s%s\n",
		s.Header.Render("Stats"),
		s.Label.Render("Wins"), s.Win.Render(fmt.Sprint(st.Wins)),
		s.Label.Render("Losses"), s.Loss.Render(fmt.Sprint(st.Losses)),
		s.Label.Render("Draws"), s.Draw.Render(fmt.Sprint(st.Draws)))
}

func (s *Styles) RenderHistory(history []parser.GameResponse) string {
	if len(history) == 0 {
		return s.Muted.Render("No finished games") + "\n"
	}
	var b strings.Builder
	b.WriteString(s.Header.Render("History") + "\n")
	for _, g := range history {
		started := time.UnixMilli(g.StartedOn).Format(time.DateTime)
		fmt.Fprintf(&b, "%s  %s (%d) vs %s (%d)  %s\n",
			s.Muted.Render(started),
			s.Hand(g.PlayerCards), g.PlayerValue,
			s.Hand(g.DealerCards), g.DealerValue,
			s.Status(g.Status))
	}
	return b.String()
}
