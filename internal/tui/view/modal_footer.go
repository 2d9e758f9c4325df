// Package view provides rendering helpers for the TUI.
package view

// DetailFooter renders the footer for the event detail modal.
func DetailFooter(hasURL bool, styles ModalStyles) string {
	if hasURL {
		return RenderModalButtons(styles, "[Esc] 關閉", "[u] 複製網址")
	}
	return RenderModalButtons(styles, "[Esc] 關閉")
}

// PicklistFooter renders the footer for the per-day picklist.
func PicklistFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Enter] 開啟", "[Esc] 關閉")
}

// FilterFooter renders the footer for the tag filter modal.
func FilterFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[Space] 切換", "[c] 清除", "[s] 複製連結", "[Esc] 完成")
}

// PickerFooter renders the footer for the month and year pickers.
func PickerFooter(styles ModalStyles) string {
	return RenderModalButtonsCompact(styles, "[Enter] 選擇", "[[/]] 翻頁", "[Esc] 取消")
}

// ComposeFooter renders the footer for the compose form.
func ComposeFooter(hasOutput bool, styles ModalStyles) string {
	if hasOutput {
		return RenderModalButtonsCompact(styles, "[c] 複製 JSON", "[e] 編輯", "[Esc] 關閉")
	}
	return RenderModalButtonsCompact(styles, "[Enter] 產生 JSON", "[Tab] 下一欄", "[Space] 切換", "[Esc] 關閉")
}

// HelpFooter renders the footer for the help modal.
func HelpFooter(styles ModalStyles) string {
	return RenderModalButtons(styles, "[Esc] 關閉")
}
