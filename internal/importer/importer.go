package importer

import (
	"io"

	"github.com/ashwinvk/spendlens/internal/ledger"
)

// Source names a supported statement export format.
type Source string

const (
	SourceGeneric Source = "generic"
	SourceHDFC    Source = "hdfc"
)

type Importer interface {
	Parse(r io.Reader) ([]ledger.CreateParams, error)
}
