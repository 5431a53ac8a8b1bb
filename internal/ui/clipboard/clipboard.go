package clipboard

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// Copy writes text to the system clipboard. It tries the native
// clipboard first (wl-copy, xclip, pbcopy, etc.) then falls back to
// OSC 52 for SSH and tmux environments where no native tool exists.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	return copyOSC52(text)
}

// copyOSC52 emits the OSC 52 escape sequence on stderr so the terminal
// itself handles the clipboard write.
func copyOSC52(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	_, err := os.Stderr.Write([]byte(seq))
	return err
}
