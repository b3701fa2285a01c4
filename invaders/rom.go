package invaders

import (
	"os"

	"github.com/pkg/errors"
)

// LoadROM reads the file at path and copies it into mem at offset. It
// returns ErrInvalidRomSize (wrapped) if the image does not fit in the
// address space; a plain wrapped I/O error is the host's concern, not a core
// error kind (spec §7).
func LoadROM(mem *Memory, path string, offset int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading rom %q", path)
	}
	return mem.LoadImage(data, offset)
}
