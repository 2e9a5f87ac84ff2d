package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// tempPath derives the temporary sibling path for a candidate file. It
// stays in the same directory so the final os.Rename is a same-volume
// atomic replace, keeps the original extension so ffmpeg picks the right
// container, and embeds a random component so it cannot collide with the
// original or with leftovers from earlier runs.
func tempPath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.tmp-%s%s", stem, uuid.NewString()[:8], ext))
}
