package filesystem

import (
	"github.com/spf13/afero"

	"github.com/arthur-debert/organizer/pkg/types"
)

// NewOS returns the real filesystem, backed by afero's OsFs
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}
