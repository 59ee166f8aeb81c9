package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Keys ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc || isKey(msg, "esc", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

func isSpace(msg tea.KeyMsg) bool {
	return isKey(msg, " ")
}

func isSave(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+s")
}

func isBackspace(msg tea.KeyMsg) bool {
	return isKey(msg, "backspace", "delete")
}

// --- Page actions ---

func isConfirm(msg tea.KeyMsg) bool { return isKey(msg, "y") }

// isDecline answers no to a y/n prompt; esc counts as no.
func isDecline(msg tea.KeyMsg) bool { return isKey(msg, "n") || isBack(msg) }

func isSearch(msg tea.KeyMsg) bool { return isKey(msg, "/") }
func isReload(msg tea.KeyMsg) bool { return isKey(msg, "r") }
func isCreate(msg tea.KeyMsg) bool { return isKey(msg, "n") }
func isDelete(msg tea.KeyMsg) bool { return isKey(msg, "d") }
func isToggle(msg tea.KeyMsg) bool { return isSpace(msg) || isKey(msg, "t") }
func isLogout(msg tea.KeyMsg) bool { return isKey(msg, "o") }
