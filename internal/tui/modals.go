package tui

import (
	"github.com/twdsco/hackertracker/internal/calendar"
	"github.com/twdsco/hackertracker/internal/tui/view"
)

// modalMaxWidth caps modal frames on wide terminals.
const modalMaxWidth = 72

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalDetail:
		return m.renderDetailModal()
	case ModalPicklist:
		return m.renderPicklistModal()
	case ModalFilter:
		return m.renderFilterModal()
	case ModalMonthPicker:
		return m.renderPickerModal(m.monthPicker.Title(), m.monthPicker.Options())
	case ModalYearPicker:
		return m.renderPickerModal(m.yearPicker.Title(), m.yearPicker.Options())
	case ModalCompose:
		return m.renderComposeModal()
	case ModalHelp:
		return m.renderHelpModal()
	default:
		return ""
	}
}

func (m Model) modalWidth() int {
	return max(0, min(m.width-2*overlayPadX, modalMaxWidth))
}

// renderDetailModal renders the event detail popup.
func (m Model) renderDetailModal() string {
	card, ok := m.state.Detail(m.detailID)
	if !ok {
		return ""
	}
	body := view.RenderDetailBody(card, m.styles.ModalSet.DetailStyles())
	footer := view.DetailFooter(card.URL != "", m.styles.Modal)
	return view.RenderModalFrame(view.DetailTitle(card), body, footer, m.modalWidth(), m.styles.Modal)
}

func (m Model) renderPicklistModal() string {
	body := view.RenderPicklistBody(m.picklist.Items, m.pickIndex, m.styles.ModalSet.ChoiceStyles())
	footer := view.PicklistFooter(m.styles.Modal)
	return view.RenderModalFrame(m.picklist.Title, body, footer, m.modalWidth(), m.styles.Modal)
}

func (m Model) renderFilterModal() string {
	filter := m.state.Filter()
	tags := filter.Vocabulary().Tags()
	items := make([]view.FilterItem, len(tags))
	for i, tag := range tags {
		items[i] = view.FilterItem{Tag: tag, Active: filter.IsActive(tag)}
	}
	body := view.RenderFilterBody(items, m.filterIndex, m.views.query, m.styles.ModalSet.ChoiceStyles())
	footer := view.FilterFooter(m.styles.Modal)
	return view.RenderModalFrame("標籤篩選", body, footer, m.modalWidth(), m.styles.Modal)
}

func (m Model) renderPickerModal(title string, options []calendar.PickerOption) string {
	body := view.RenderPickerBody(options, m.pickerIndex, pickerCols, m.styles.ModalSet.ChoiceStyles())
	footer := view.PickerFooter(m.styles.Modal)
	return view.RenderModalFrame(title, body, footer, m.modalWidth(), m.styles.Modal)
}

func (m Model) renderComposeModal() string {
	body := view.RenderComposeBody(m.form.model(), m.styles.ModalSet.ComposeStyles())
	footer := view.ComposeFooter(m.form.hasOutput(), m.styles.Modal)
	return view.RenderModalFrame("新增活動", body, footer, m.modalWidth(), m.styles.Modal)
}

func (m Model) renderHelpModal() string {
	var entries []view.HelpEntry
	for _, group := range m.keys.fullHelp() {
		for _, b := range group {
			h := b.Help()
			entries = append(entries, view.HelpEntry{Keys: h.Key, Desc: h.Desc})
		}
	}
	body := view.RenderHelpBody(entries, m.styles.ModalSet.ChoiceStyles())
	footer := view.HelpFooter(m.styles.Modal)
	return view.RenderModalFrame("快捷鍵", body, footer, m.modalWidth(), m.styles.Modal)
}
