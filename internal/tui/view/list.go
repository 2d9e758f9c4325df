package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twdsco/hackertracker/internal/calendar"
)

// EmptyListText is shown when no event passes the filter.
const EmptyListText = calendar.LabelEmptyList

// ListStyles colors the chronological list.
type ListStyles struct {
	Group         lipgloss.Style
	Title         lipgloss.Style
	TitleSelected lipgloss.Style
	Badge         lipgloss.Style
	Label         lipgloss.Style
	Meta          lipgloss.Style
	Tag           lipgloss.Style
	Empty         lipgloss.Style
}

// ListContent is the rendered list with the first line of every card, in
// display order, so a viewport can keep the selected card visible.
type ListContent struct {
	Lines     []string
	CardLines []int
	Cards     []calendar.EventCard
}

// RenderList renders group headings and event cards. selected indexes the
// cards in display order.
func RenderList(lv calendar.ListView, selected, width int, styles ListStyles) ListContent {
	var out ListContent
	if lv.Total == 0 {
		out.Lines = []string{styles.Empty.Render(EmptyListText)}
		return out
	}

	for gi, group := range lv.Groups {
		if gi > 0 {
			out.Lines = append(out.Lines, "")
		}
		out.Lines = append(out.Lines, styles.Group.Render(group.Title))
		for _, card := range group.Cards {
			idx := len(out.Cards)
			out.CardLines = append(out.CardLines, len(out.Lines))
			out.Cards = append(out.Cards, card)
			out.Lines = append(out.Lines, renderCard(card, idx == selected, width, styles)...)
		}
	}
	return out
}

func renderCard(card calendar.EventCard, selected bool, width int, styles ListStyles) []string {
	marker, titleStyle := "  ", styles.Title
	if selected {
		marker, titleStyle = "▸ ", styles.TitleSelected
	}
	title := marker + titleStyle.Render(card.Title)
	if card.Tentative {
		title += " " + styles.Badge.Render(calendar.BadgeTentative)
	}

	lines := []string{Fit(title, width)}
	for _, f := range card.Fields() {
		if f.Label == calendar.LabelURL {
			continue
		}
		line := "    " + styles.Label.Render(f.Label) + " " + styles.Meta.Render(f.Value)
		lines = append(lines, Fit(line, width))
	}
	if len(card.Tags) > 0 {
		tags := make([]string, len(card.Tags))
		for i, tag := range card.Tags {
			tags[i] = styles.Tag.Render("#" + tag)
		}
		lines = append(lines, Fit("    "+strings.Join(tags, " "), width))
	}
	return lines
}
