package ui

import "github.com/uartium/uartium/internal/ui/panels"

// Type aliases to panels message types so callers import one package.

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// YankMsg carries yanked text to the app for the clipboard.
type YankMsg = panels.YankMsg
